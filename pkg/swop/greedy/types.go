// Package greedy implements the sequential greedy optimiser: monsters are
// processed one at a time in priority order, each solved by the per-monster
// CP solver against a shrinking candidate pool, with optional multi-pass
// refinement across priority-order variants (spec §4.4).
package greedy

import (
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/scoring"
	"github.com/klauer/swop/pkg/swop/solver"
)

// MonsterSpec is one monster entered into a greedy run: its record, its
// configured builds for the run's mode, and the sequencing fields the spec
// keys ordering and turn-order caps off of.
type MonsterSpec struct {
	Monster       domain.Monster
	Builds        []domain.Build
	TeamID        int
	TurnOrder     int // 0 = unconstrained
	OptimizeOrder int // 0 = unconstrained, otherwise ascending priority
}

// ProgressFunc reports (monsters processed, monsters total) after each unit;
// cheap and non-reentrant per spec §5's suspension-point contract.
type ProgressFunc func(done, total int)

// Request bundles one greedy run's configuration (spec §4.4, §6.2's
// enforce_turn_order / multi_pass_* fields).
type Request struct {
	Mode     domain.Mode
	Account  domain.AccountData
	Monsters []MonsterSpec

	EnforceTurnOrder bool

	TopPerSet           int
	ExcludedRuneIDs     map[int64]bool
	ExcludedArtifactIDs map[int64]bool

	BaselineRunesByUnit     map[int64]map[int]int64
	BaselineArtifactsByUnit map[int64]map[int]int64
	BaselineWeight          int

	// FixedResults pins a monster's outcome instead of solving it: Arena
	// Rush reuses a shared monster's defence (or earlier offence team's)
	// assignment verbatim and only locks its runes/artifacts out of the
	// pool for everyone else (spec §4.6 step 2a).
	FixedResults map[int64]solver.Result

	// LeaderBonusFlatByUnit and MinFinalSPDByUnit carry Arena Rush's
	// per-unit speed leader bonus and opening-order speed floor (spec
	// §4.6 steps c-d) into the per-monster solve's External bounds.
	LeaderBonusFlatByUnit map[int64]int
	MinFinalSPDByUnit     map[int64]int

	SpeedFirst bool
	SpeedSlack int
	EffVariant scoring.EfficiencyVariant

	// NodeBudget forwards a per-monster search-depth budget to every solve
	// (0 = package default; see solver.DefaultNodeBudget). The request
	// layer derives this from quality_profile/time_limit_per_unit_s, our
	// analogue of an external CP solver's wall-clock time limit (spec
	// §6.1, §9).
	NodeBudget int

	// SetOptionPreferenceIndex pins the rotating set-option preference for
	// a single-pass run (MultiPassEnabled false); multi-pass runs ignore it
	// and rotate the index across passes instead (spec §4.3.2). A quality-
	// profile search over pass variants (pkg/swop/variant) sets this per
	// candidate.
	SetOptionPreferenceIndex int

	// AvoidResultsByUnit discourages the solver from repeating a known
	// assignment for a unit, independent of MultiPassStrategy's own
	// refine-against-previous-pass mechanism; a quality-profile search
	// supplies the current best-known pick here to keep candidate passes
	// diverse (ported from gpu_search's avoid_solution_by_unit).
	AvoidResultsByUnit map[int64]solver.Result

	// BuildPriorityPenaltyOverride, AvoidSameRunePenaltyOverride and
	// AvoidSameArtifactPenaltyOverride forward a quality-profile search's
	// evolved churn-discouraging constants to every per-monster solve
	// (0 = package default, see solver.Request).
	BuildPriorityPenaltyOverride     int
	AvoidSameRunePenaltyOverride     int
	AvoidSameArtifactPenaltyOverride int

	MultiPassEnabled  bool
	MultiPassCount    int
	MultiPassStrategy string // "greedy_only" | "greedy_refine"
	Patience          int

	Progress ProgressFunc

	// IsCancelled is polled before each per-monster solve and between
	// passes (spec §5's cancellation_token contract); cheap and
	// non-reentrant, like Progress. Nil means never cancelled.
	IsCancelled func() bool

	// RegisterSolver is invoked immediately before each per-monster solve
	// begins, naming the unit about to be solved (spec §6.1's
	// register_solver hook). Nil disables it.
	RegisterSolver func(unitID int64)
}

const (
	StrategyGreedyOnly   = "greedy_only"
	StrategyGreedyRefine = "greedy_refine"
)

// PassResult is one completed pass: every monster's solver outcome plus the
// pass-level score it was ranked by.
type PassResult struct {
	Results map[int64]solver.Result
	Score   scoring.PassScore
	Order   []int64 // monster processing order used for this pass

	// Cancelled reports whether this pass stopped partway through its
	// order because Request.IsCancelled fired (spec §5).
	Cancelled bool
}

// Result is the greedy engine's overall outcome: the winning pass plus how
// many passes were attempted before stopping.
type Result struct {
	Best        PassResult
	PassesTried int

	// Cancelled reports whether IsCancelled stopped the run before it
	// could finish every monster in the winning pass (spec §5).
	Cancelled bool
}
