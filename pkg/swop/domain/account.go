package domain

// AccountData is the full, read-only account snapshot the optimiser draws
// candidates from (spec §3). It is built once by an importer and shared,
// read-only, across every pass and every Arena Rush candidate.
type AccountData struct {
	Monsters  map[int64]Monster  `json:"monsters"`
	Runes     map[int64]Rune     `json:"runes"`
	Artifacts map[int64]Artifact `json:"artifacts"`

	// Builds holds every configured build per monster; a monster may have
	// several builds per mode, the engine picks among them via the CP
	// solver's ub[b_idx] build-choice variable.
	Builds map[int64][]Build `json:"builds"`

	GuildRuneEquip   map[int64][]int64 `json:"guild_rune_equip"`   // unit_id -> rune_id currently equipped (siege/guild)
	RTARuneEquip     map[int64][]int64 `json:"rta_rune_equip"`     // unit_id -> rune_id currently equipped (RTA)
	RTAArtifactEquip map[int64][]int64 `json:"rta_artifact_equip"` // unit_id -> artifact_id currently equipped (RTA)

	ArenaDefenseUnitIDs []int64   `json:"arena_defense_unit_ids"`
	ArenaOffenseDecks   [][]int64 `json:"arena_offense_decks"`

	SkyTribeTotemLevel  int `json:"sky_tribe_totem_level"`
	SkyTribeTotemSPDPct int `json:"sky_tribe_totem_spd_pct"`
}

// BuildsForUnit returns the configured builds for a monster restricted to
// one mode, in declaration order.
func (a AccountData) BuildsForUnit(unitID int64, mode Mode) []Build {
	var out []Build
	for _, b := range a.Builds[unitID] {
		if b.Mode == mode {
			out = append(out, b)
		}
	}
	return out
}

// IsCurrentlyEquipped reports whether runeID is the account's recorded
// current equip for unitID, in RTA if mode == ModeRTA, otherwise in the
// guild/siege equip map (spec §4.1.1's +45 "currently equipped" bonus).
func (a AccountData) IsCurrentlyEquipped(unitID, runeID int64, mode Mode) bool {
	ids := a.GuildRuneEquip[unitID]
	if mode == ModeRTA {
		ids = a.RTARuneEquip[unitID]
	}
	for _, id := range ids {
		if id == runeID {
			return true
		}
	}
	return false
}
