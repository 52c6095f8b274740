package domain

import "github.com/klauer/swop/internal/config"

// Mode selects the game mode a build and an optimisation request target;
// it also drives the candidate pruner's mode-specific rune exclusions.
type Mode string

const (
	ModeSiege     Mode = "siege"
	ModeWGB       Mode = "wgb"
	ModeRTA       Mode = "rta"
	ModeArenaRush Mode = "arena_rush"
	ModeTeam      Mode = "team"
)

// SetOption is one alternative set combination a build will accept, e.g.
// {Swift} or {Violent, Will}. The required piece counts across the ids
// must total at most 6 (spec §3).
type SetOption struct {
	SetIDs []config.SetID `json:"set_ids"`
}

// RequiredPieces sums the piece requirement across the option's set ids.
func (o SetOption) RequiredPieces() int {
	total := 0
	for _, id := range o.SetIDs {
		total += config.SetRequiredPieces[id]
	}
	return total
}

// ArtifactFilter restricts a build's preferred artifact main-stat focus and
// required sub-effects for one artifact type.
type ArtifactFilter struct {
	Focus    []config.MainStatKey `json:"focus"`
	Substats []config.EffectID    `json:"substats"`
}

// MinStats are per-build stat floors. A nil field means "no floor". SPD and
// the primary stats (HP/ATK/DEF) each have a with-base and without-base
// variant (spec §3); the no-base variants exclude the monster's own base
// contribution from the threshold comparison.
type MinStats struct {
	HP        *int `json:"hp,omitempty"`
	HPNoBase  *int `json:"hp_no_base,omitempty"`
	ATK       *int `json:"atk,omitempty"`
	ATKNoBase *int `json:"atk_no_base,omitempty"`
	DEF       *int `json:"def,omitempty"`
	DEFNoBase *int `json:"def_no_base,omitempty"`
	SPD       *int `json:"spd,omitempty"`
	SPDNoBase *int `json:"spd_no_base,omitempty"`
	CritRate  *int `json:"crit_rate,omitempty"`
	CritDmg   *int `json:"crit_dmg,omitempty"`
	Resist    *int `json:"resist,omitempty"`
	Accuracy  *int `json:"accuracy,omitempty"`
}

// Build is a per-monster, per-mode target configuration (spec §3).
type Build struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Mode Mode   `json:"mode"`

	SetOptions      []SetOption                     `json:"set_options"`
	Mainstats       map[int][]config.MainStatKey    `json:"mainstats"` // slot (2,4,6) -> allowed main-stat keys
	ArtifactFilters map[ArtifactType]ArtifactFilter `json:"artifact_filters"`
	MinStats        MinStats                        `json:"min_stats"`

	SPDTick int `json:"spd_tick"` // tick bucket; 0 = unconstrained

	Priority      int `json:"priority"`
	TurnOrder     int `json:"turn_order"`
	OptimizeOrder int `json:"optimize_order"`
}
