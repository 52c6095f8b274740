package solver

import (
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// Request bundles everything the per-monster solve needs beyond the
// monster itself and its pruned candidate pool (spec §4.3).
type Request struct {
	Mode      domain.Mode
	Archetype domain.Archetype

	External   External
	SpeedFirst bool // opener-priority objective mode; false runs quality/efficiency-first
	SpeedSlack int
	EffVariant scoring.EfficiencyVariant

	BaselineRunesBySlot     map[int]int64
	BaselineArtifactsByType map[int]int64
	BaselineWeight          int

	PreviousRunesBySlot     map[int]int64
	PreviousArtifactsByType map[int]int64

	SetOptionPreferenceIndex int // rotating preferred index, refine passes (spec §4.3.2)
	NodeBudget               int // 0 = package default

	// BuildPriorityPenaltyOverride, AvoidSameRunePenaltyOverride and
	// AvoidSameArtifactPenaltyOverride retune the objective's
	// churn-discouraging constants away from the internal.config defaults
	// (0 = use the default). A quality-profile search over pass variants
	// (pkg/swop/variant) evolves these per candidate the way the reference
	// engine's gpu_search profiles vary build_penalty/avoid_rune_penalty/
	// avoid_art_penalty across generations.
	BuildPriorityPenaltyOverride     int
	AvoidSameRunePenaltyOverride     int
	AvoidSameArtifactPenaltyOverride int
}

// Result is one monster's solve outcome.
type Result struct {
	OK              bool
	Message         string
	ChosenBuildID   int
	ChosenBuildName string
	RunesBySlot     map[int]int64
	ArtifactsByType map[int]int64
	FinalSpeed      int

	// Score is the raw objective value `search` maximised: summed item
	// quality/efficiency/baseline terms plus the build-priority penalty and
	// set-option preference bonus. The greedy engine folds it into PassScore
	// without recomputing per-item scoring.
	Score int
}

// DefaultNodeBudget bounds a single search's explored leaves when the
// caller does not set Request.NodeBudget; this is the solver's stand-in
// for CP-SAT's own internal time/node limit (spec §9).
const DefaultNodeBudget = 4000
