package request

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/global"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/variant"
)

// Engine runs one greedy.Request to completion. Base profiles resolve to
// greedy.Run/global.Run directly; gpu_search_* profiles resolve to a
// closure over a variant.Optimizer, falling back to greedy.Run on any
// construction or search error so a profile resolution failure never
// aborts the run outright.
type Engine func(greedy.Request) greedy.Result

// nodesPerSecond is this engine's rough per-monster search-rate estimate,
// used to translate time_limit_per_unit_s (meaningful for an external CP
// solver with a real wall clock) into solver.Request.NodeBudget, which has
// no wall clock of its own. It is a documented heuristic, not a calibrated
// equivalence — see DESIGN.md.
const nodesPerSecond = 800

// nodeBudgetFor derives a per-monster node budget from the request's
// time_limit_per_unit_s scaled by the resolved quality tier's
// TimeLimitScale (spec §5, §6.1, §9). 0 (the request default) resolves to
// 0, which solver.Solve treats as "use the package default".
func nodeBudgetFor(timeLimitPerUnitS float64, tier config.SolverWorkerTier) int {
	if timeLimitPerUnitS <= 0 {
		return 0
	}
	budget := int(timeLimitPerUnitS * tier.TimeLimitScale * nodesPerSecond)
	if budget <= 0 {
		return 0
	}
	return budget
}

// workersFor translates a tier's WorkersFraction into a concrete worker
// count (spec §5: "num_workers, tuned by profile: fast ≈ 1, balanced ≈
// cpu/2, max ≈ cpu"). This engine's solves run single-threaded per
// monster (pkg/swop/solver has no internal worker pool to size), so the
// resolved count only bounds how many parallel candidates
// (max_quality's 3-way fan-out, Arena Rush's defence-candidate fan-out)
// may run at once.
func workersFor(tier config.SolverWorkerTier, requestedWorkers int) int {
	if requestedWorkers > 0 {
		return requestedWorkers
	}
	cpu := runtime.NumCPU()
	if tier.WorkersFraction <= 0 {
		return 1
	}
	w := cpu / tier.WorkersFraction
	if w < 1 {
		w = 1
	}
	return w
}

// resolveEngine maps a quality_profile string onto an Engine plus the
// node budget and worker count to apply, per spec §6.1's quality_profile
// enum and the tuning tables of spec §5.
func resolveEngine(profile string, timeLimitPerUnitS float64, requestedWorkers, speedSlackForQuality int) (Engine, int, int) {
	switch profile {
	case variant.ProfileFast, variant.ProfileBalanced, variant.ProfileMax:
		return gpuSearchEngine(profile, speedSlackForQuality), 0, 1
	case "balanced":
		tier := config.SolverWorkerTiers["balanced"]
		return globalEngine(), nodeBudgetFor(timeLimitPerUnitS, tier), workersFor(tier, requestedWorkers)
	case "max_quality":
		tier := config.SolverWorkerTiers["max_quality"]
		return maxQualityEngine(), nodeBudgetFor(timeLimitPerUnitS, tier), workersFor(tier, requestedWorkers)
	default: // "fast" and any unrecognised profile
		tier := config.SolverWorkerTiers["fast"]
		return greedy.Run, nodeBudgetFor(timeLimitPerUnitS, tier), workersFor(tier, requestedWorkers)
	}
}

// globalEngine adapts global.Run's func(greedy.Request) global.Result
// signature to the plain Engine signature, discarding the UsedFallback
// flag (the wire result has no field for it).
func globalEngine() Engine {
	return func(req greedy.Request) greedy.Result {
		return global.Run(req).Result
	}
}

// gpuSearchEngine wraps a variant.Optimizer for one of the gpu_search_*
// profiles into an Engine, falling back to greedy.Run on any construction
// or search failure.
func gpuSearchEngine(profile string, speedSlackForQuality int) Engine {
	cfg := variant.PresetFor(profile)
	if speedSlackForQuality > 0 {
		cfg.SpeedSlackBase = speedSlackForQuality
	}
	return func(base greedy.Request) greedy.Result {
		template := variant.NewTemplate(base, cfg.SpeedSlackBase)
		opt, err := variant.NewOptimizer(template, cfg)
		if err != nil {
			return greedy.Run(base)
		}
		result, err := opt.Run()
		if err != nil {
			return greedy.Run(base)
		}
		return result.Best
	}
}

// maxQualityParallelism is how many independent global.Run candidates
// max_quality's base (non gpu_search) profile fans out, per spec §5
// ("The max-quality profile launches up to three independent global
// solves in parallel with differing seeds and keeps the best").
const maxQualityParallelism = 3

// maxQualityEngine runs up to maxQualityParallelism independent global.Run
// passes concurrently, each over a rotated monster ordering standing in
// for a distinct seed (this engine's solves are deterministic given an
// ordering, so "differing seeds" is approximated by diversifying priority
// order the same way arenarush's defence-candidate search does), and
// keeps the best by greedy's own pass-score ordering.
func maxQualityEngine() Engine {
	return func(base greedy.Request) greedy.Result {
		n := maxQualityParallelism
		if n > len(base.Monsters) {
			n = len(base.Monsters)
		}
		if n < 1 {
			n = 1
		}

		results := make([]greedy.Result, n)
		var g errgroup.Group
		for i := 0; i < n; i++ {
			idx := i
			g.Go(func() error {
				req := base
				req.Monsters = rotateMonsters(base.Monsters, idx)
				results[idx] = global.Run(req).Result
				return nil
			})
		}
		_ = g.Wait()

		best := results[0]
		for _, r := range results[1:] {
			if r.Best.Score.Compare(best.Best.Score) > 0 {
				best = r
			}
		}
		return best
	}
}

// rotateMonsters cyclically shifts order's starting point by shift
// positions, the same priority-diversity trick arenarush.rotateUnitIDs
// uses for its defence-candidate seeds.
func rotateMonsters(order []greedy.MonsterSpec, shift int) []greedy.MonsterSpec {
	if len(order) == 0 {
		return order
	}
	shift = shift % len(order)
	out := make([]greedy.MonsterSpec, len(order))
	copy(out, order[shift:])
	copy(out[len(order)-shift:], order[:shift])
	return out
}
