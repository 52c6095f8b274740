// Package arenarush implements the Arena Rush Coordinator: one defence
// team solved first, then each offence team solved against the remaining
// inventory with shared monsters pinned to their defence (or earlier
// offence team's) assignment, followed by an opening-turn simulation and
// bounded speed-floor repair passes (spec §4.6).
package arenarush

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/opening"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// Engine runs one greedy.Request to completion. Callers pass the engine
// their quality profile resolves to (greedy.Run for fast, a closure over
// global.Run for balanced and max_quality, a variant search for
// gpu_search_*), keeping this package free of a dependency on
// pkg/swop/global.
type Engine func(greedy.Request) greedy.Result

// OffenseTeam is one Arena Rush offence team (spec §6.3's
// ArenaRushOffenseTeam).
type OffenseTeam struct {
	UnitIDs                  []int64
	Builds                   map[int64][]domain.Build
	ExpectedOpeningOrder     []int64
	UnitTurnOrder            map[int64]int
	UnitSpeedLeaderBonusFlat map[int64]int
	TurnEffectsByUnit        map[int64]opening.OpeningTurnEffect
}

// Request bundles one Arena Rush run's configuration.
type Request struct {
	Mode    domain.Mode
	Account domain.AccountData

	DefenseUnitIDs              []int64
	DefenseBuilds               map[int64][]domain.Build
	DefenseTurnOrder            map[int64]int
	DefenseSpeedLeaderBonusFlat map[int64]int
	DefenseEngine               Engine // nil -> greedy.Run
	DefenseCandidateCount       int    // >1 fans out defence seeds in parallel (spec §4.6 step 3)

	OffenseTeams  []OffenseTeam
	OffenseEngine Engine // nil -> greedy.Run
	RescueEngine  Engine // nil -> OffenseEngine; used when an offence team fails outright

	TopPerSet      int
	SpeedFirst     bool
	SpeedSlack     int
	EffVariant     scoring.EfficiencyVariant
	BaselineWeight int

	MultiPassCount int // applied to both defence and offence requests

	// MaxOpeningRefineAttempts bounds the per-team repair loop of spec
	// §4.6 step 2g. 0 defaults to 2.
	MaxOpeningRefineAttempts int

	Workers    int           // bounds parallel defence candidates; 0 = 1
	MaxRuntime time.Duration // 0 = unbounded
	Clock      clock.Clock   // nil -> clock.New()

	Progress greedy.ProgressFunc

	// IsCancelled is forwarded into every defence/offence greedy.Request
	// and additionally polled between offence teams (spec §5's "between
	// teams" cancellation point).
	IsCancelled func() bool

	// RegisterSolver is forwarded into every defence/offence greedy.Request
	// verbatim (spec §6.1).
	RegisterSolver func(unitID int64)
}

// OffenseResult is one offence team's outcome (spec §6.3).
type OffenseResult struct {
	TeamIndex             int
	TeamUnitIDs           []int64
	SharedUnitIDs         []int64
	SwappedInUnitIDs      []int64
	Optimization          greedy.Result
	ExpectedOpeningOrder  []int64
	SimulatedOpeningOrder []int64
	OpeningPenalty        int
}

// Result is the coordinator's overall outcome (spec §6.3).
type Result struct {
	OK       bool
	Message  string
	Defense  greedy.Result
	Offenses []OffenseResult
}

// cancelledResult reports the best-partial outcome demanded by spec §5
// when IsCancelled fires between the defence solve and an offence team, or
// between two offence teams.
func cancelledResult(defense greedy.Result, offenses []OffenseResult) Result {
	return Result{OK: false, Message: "cancelled", Defense: defense, Offenses: offenses}
}
