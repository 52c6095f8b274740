package storage

// SavedOptimizationDocument is the persisted saved-optimisation format
// (spec §6.4): a versioned document mapping an id to a saved run. Unknown
// top-level and per-optimisation fields must survive a parse/serialize
// round trip, so both layers carry an Extra side-map of the JSON keys this
// package does not itself model.
type SavedOptimizationDocument struct {
	Version       int                          `json:"version"`
	Optimizations map[string]SavedOptimization `json:"optimizations"`
	Extra         map[string]RawField          `json:"-"`
}

// SavedOptimization is one entry of the optimizations map.
type SavedOptimization struct {
	Name      string              `json:"name"`
	Mode      string              `json:"mode"`
	Teams     [][]int64           `json:"teams"`
	Timestamp string              `json:"timestamp"`
	Results   []SavedResult       `json:"results"`
	Extra     map[string]RawField `json:"-"`
}

// SavedResult is one monster's persisted assignment.
type SavedResult struct {
	UnitID          int64            `json:"unit_id"`
	RunesBySlot     map[string]int64 `json:"runes_by_slot"`
	ArtifactsByType map[string]int64 `json:"artifacts_by_type"`
	FinalSpeed      int              `json:"final_speed"`
}
