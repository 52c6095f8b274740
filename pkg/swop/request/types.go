// Package request implements the optimiser's wire-level request/result
// translation layer: the external OptimizerRequest/ArenaRushRequest
// documents of spec §6.1-§6.3, resolved through a quality_profile onto a
// greedy/global/variant engine and mapped back onto the ordered
// UnitResult/ArenaRushResult wire shapes.
package request

import (
	"github.com/klauer/swop/pkg/swop/arenarush"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/opening"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// ArtifactHints models the optional unit_artifact_hints_by_uid wire field
// (spec §6.1). The reference engine derives these from a SWARFARM/SWDB web
// lookup and a local preference-file cache, both absent from this
// architecture; accepted here for wire-compatibility and deliberately left
// unconsumed by scoring/solving (see DESIGN.md — the engine "does not
// negotiate with the game server").
type ArtifactHints struct {
	BombSlots           []int
	GuaranteedCritSlots []int
	RecoverySlots       []int
	DebuffSlots         []int
}

// OptimizerRequest is the sequential-engine request document of spec §6.1.
type OptimizerRequest struct {
	Mode domain.Mode

	// Account and Builds are not part of the wire document itself but are
	// required to actually run a solve; populating them from a persisted
	// account snapshot (spec §6.4) and a build configuration is the
	// caller's responsibility (cmd/swop-cli's job).
	Account domain.AccountData

	UnitIDsInOrder   []int64
	TimeLimitPerUnit float64
	Workers          int

	MultiPassEnabled    bool
	MultiPassCount      int
	MultiPassStrategy   string
	MultiPassTimeFactor float64

	RuneTopPerSet int

	QualityProfile       string
	SpeedSlackForQuality int

	EnforceTurnOrder bool

	UnitTeamIndex          map[int64]int
	UnitTeamTurnOrder      map[int64]int
	UnitSPDLeaderBonusFlat map[int64]int

	UnitArchetypeByUID      map[int64]domain.Archetype
	UnitArtifactHintsByUID  map[int64]ArtifactHints
	UnitTeamHasSPDBuffByUID map[int64]bool

	BaselineRunesByUnit           map[int64]map[int]int64
	BaselineArtifactsByUnit       map[int64]map[int]int64
	BaselineRegressionGuardWeight int

	ProgressCallback func(done, total int)
	IsCancelled      func() bool
	RegisterSolver   func(unitID int64)
}

// OptimizerResult is the sequential-engine result document of spec §6.2.
type OptimizerResult struct {
	OK      bool
	Message string
	Results []domain.UnitResult
}

// ArenaRushOffenseTeam mirrors spec §6.3's ArenaRushOffenseTeam.
type ArenaRushOffenseTeam struct {
	UnitIDs                []int64
	ExpectedOpeningOrder   []int64
	UnitTurnOrder          map[int64]int
	UnitSPDLeaderBonusFlat map[int64]int
	TurnEffectsByUnit      map[int64]opening.OpeningTurnEffect
}

// ArenaRushRequest extends the base request with spec §6.3's Arena Rush
// fields.
type ArenaRushRequest struct {
	OptimizerRequest

	DefenseUnitIDs                []int64
	DefenseUnitTeamTurnOrder      map[int64]int
	DefenseUnitSPDLeaderBonusFlat map[int64]int

	OffenseTeams []ArenaRushOffenseTeam

	DefenseCandidateCount int
	MaxRuntimeS           float64
}

// ArenaRushOffenseResult is one offence team's outcome in the wire result
// shape of spec §6.3.
type ArenaRushOffenseResult struct {
	TeamIndex             int
	TeamUnitIDs           []int64
	SharedUnitIDs         []int64
	SwappedInUnitIDs      []int64
	Optimization          domain.UnitResults
	ExpectedOpeningOrder  []int64
	SimulatedOpeningOrder []int64
	OpeningPenalty        int
}

// ArenaRushResult is the Arena Rush wire result document of spec §6.3.
type ArenaRushResult struct {
	OK       bool
	Message  string
	Defense  domain.UnitResults
	Offenses []ArenaRushOffenseResult
}

// effVariantFor resolves a request's efficiency framing; requests don't
// carry their own EfficiencyVariant knob (that's a gpu_search_* internal
// evolved over Variant.ObjectiveMode), so the base fast/balanced/max_quality
// tiers all use the account-relative framing.
func effVariantFor(profile string) scoring.EfficiencyVariant {
	return scoring.EfficiencyCurrent
}

// unitResultsFrom converts a greedy.Result's per-unit map into the ordered
// domain.UnitResults wire shape, walking order so the output preserves
// unit_ids_in_order (spec §6.2).
func unitResultsFrom(order []int64, res greedy.Result) []domain.UnitResult {
	out := make([]domain.UnitResult, 0, len(order))
	for _, uid := range order {
		r, ok := res.Best.Results[uid]
		if !ok {
			out = append(out, domain.UnitResult{UnitID: uid, OK: false, Message: "not solved"})
			continue
		}
		out = append(out, domain.UnitResult{
			UnitID:          uid,
			OK:              r.OK,
			Message:         r.Message,
			ChosenBuildID:   r.ChosenBuildID,
			ChosenBuildName: r.ChosenBuildName,
			RunesBySlot:     r.RunesBySlot,
			ArtifactsByType: r.ArtifactsByType,
			FinalSpeed:      r.FinalSpeed,
		})
	}
	return out
}

func unitResultsFromArena(order []int64, res greedy.Result) domain.UnitResults {
	results := unitResultsFrom(order, res)
	okAll := len(order) > 0
	for _, r := range results {
		if !r.OK {
			okAll = false
		}
	}
	return domain.UnitResults{OK: okAll, Results: results}
}

func offenseTeamsToArenaRush(teams []ArenaRushOffenseTeam, buildsByUnit map[int64][]domain.Build) []arenarush.OffenseTeam {
	out := make([]arenarush.OffenseTeam, 0, len(teams))
	for _, t := range teams {
		builds := make(map[int64][]domain.Build, len(t.UnitIDs))
		for _, uid := range t.UnitIDs {
			builds[uid] = buildsByUnit[uid]
		}
		out = append(out, arenarush.OffenseTeam{
			UnitIDs:                  t.UnitIDs,
			Builds:                   builds,
			ExpectedOpeningOrder:     t.ExpectedOpeningOrder,
			UnitTurnOrder:            t.UnitTurnOrder,
			UnitSpeedLeaderBonusFlat: t.UnitSPDLeaderBonusFlat,
			TurnEffectsByUnit:        t.TurnEffectsByUnit,
		})
	}
	return out
}

func offenseResultsFromArena(results []arenarush.OffenseResult) []ArenaRushOffenseResult {
	out := make([]ArenaRushOffenseResult, 0, len(results))
	for _, r := range results {
		out = append(out, ArenaRushOffenseResult{
			TeamIndex:             r.TeamIndex,
			TeamUnitIDs:           r.TeamUnitIDs,
			SharedUnitIDs:         r.SharedUnitIDs,
			SwappedInUnitIDs:      r.SwappedInUnitIDs,
			Optimization:          unitResultsFromArena(r.TeamUnitIDs, r.Optimization),
			ExpectedOpeningOrder:  r.ExpectedOpeningOrder,
			SimulatedOpeningOrder: r.SimulatedOpeningOrder,
			OpeningPenalty:        r.OpeningPenalty,
		})
	}
	return out
}
