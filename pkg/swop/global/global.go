// Package global implements the max-quality profile's global model: a
// Swift-opener pre-optimisation pass followed by a sequential solve over
// the rest of the roster, falling back to the plain greedy engine on any
// infeasibility (spec §4.5).
//
// The reference design encodes every monster in one CP-SAT model with a
// Σx[uid][slot][rid] ≤ 1 global uniqueness constraint; this package gets
// the same uniqueness property for free from the sequential claim-and-lock
// discipline pkg/swop/greedy already provides (every rune/artifact id is
// assigned to at most one monster because each solve excludes everything
// already locked), without requiring an external constraint solver absent
// from the example pack.
package global

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/pruner"
	"github.com/klauer/swop/pkg/swop/solver"
)

// Result is the global engine's outcome, flagging whether it had to demote
// to a full greedy run because the opener pre-pass or the remainder solve
// hit an infeasibility (spec §4.5 "fall back to greedy").
type Result struct {
	greedy.Result
	UsedFallback bool
}

// Run executes the global model for req.
func Run(req greedy.Request) Result {
	openers := identifySwiftOpeners(req.Monsters)
	if len(openers) == 0 {
		return Result{Result: greedy.Run(req)}
	}

	lockedRunes := copyBoolMap(req.ExcludedRuneIDs)
	lockedArtifacts := copyBoolMap(req.ExcludedArtifactIDs)
	openerResults := make(map[int64]solver.Result, len(openers))
	openerIDs := make(map[int64]bool, len(openers))
	allOpenersOK := true

	// Three-stage lexicographic pre-optimisation (spec §4.5): processing
	// each opener speed-first, restricted to its Swift set option, forces
	// swift_active wherever inventory allows it (stage 1) while
	// maximising combat SPD (stages 2-3, approximated jointly since each
	// solve already picks the fastest feasible Swift assignment for that
	// monster within the pool remaining after its predecessors).
	for _, spec := range openers {
		openerIDs[spec.Monster.UnitID] = true

		pool, err := pruner.Prune(req.Account, req.TopPerSet, lockedRunes, lockedArtifacts)
		if err != nil {
			openerResults[spec.Monster.UnitID] = solver.Result{OK: false, Message: err.Error()}
			allOpenersOK = false
			continue
		}

		swiftBuilds := swiftOnlyBuilds(spec.Builds)
		if len(swiftBuilds) == 0 {
			openerResults[spec.Monster.UnitID] = solver.Result{OK: false, Message: "no swift-eligible build for opener"}
			allOpenersOK = false
			continue
		}

		res := solver.Solve(spec.Monster.UnitID, spec.Monster, swiftBuilds, pool, req.Account, req.Mode, solver.Request{
			Mode:       req.Mode,
			Archetype:  spec.Monster.Archetype,
			SpeedFirst: true,
			SpeedSlack: req.SpeedSlack,
			EffVariant: req.EffVariant,
		})
		openerResults[spec.Monster.UnitID] = res
		if !res.OK {
			allOpenersOK = false
			continue
		}
		for _, rid := range res.RunesBySlot {
			lockedRunes[rid] = true
		}
		for _, aid := range res.ArtifactsByType {
			lockedArtifacts[aid] = true
		}
	}

	if !allOpenersOK {
		return Result{Result: greedy.Run(req), UsedFallback: true}
	}

	remaining := make([]greedy.MonsterSpec, 0, len(req.Monsters))
	for _, spec := range req.Monsters {
		if !openerIDs[spec.Monster.UnitID] {
			remaining = append(remaining, spec)
		}
	}

	restReq := req
	restReq.Monsters = remaining
	restReq.ExcludedRuneIDs = lockedRunes
	restReq.ExcludedArtifactIDs = lockedArtifacts
	restResult := greedy.Run(restReq)

	for _, spec := range remaining {
		if res, ok := restResult.Best.Results[spec.Monster.UnitID]; !ok || !res.OK {
			return Result{Result: greedy.Run(req), UsedFallback: true}
		}
	}

	merged := make(map[int64]solver.Result, len(req.Monsters))
	for uid, r := range openerResults {
		merged[uid] = r
	}
	for uid, r := range restResult.Best.Results {
		merged[uid] = r
	}

	order := append(append([]greedy.MonsterSpec(nil), openers...), remaining...)
	score := greedy.ScorePass(req, order, merged)

	return Result{
		Result: greedy.Result{
			Best: greedy.PassResult{
				Results: merged,
				Score:   score,
				Order:   unitIDsOf(order),
			},
			PassesTried: 1 + restResult.PassesTried,
		},
	}
}

// identifySwiftOpeners selects monsters eligible for the Swift-opener
// pre-pass: first in their team's turn order, with at least one build
// offering a Swift set option and no min-stat floor beyond SPD (spec
// §4.5's "first in their team, Swift allowed, no extra min-stat constraint
// beyond SPD").
func identifySwiftOpeners(monsters []greedy.MonsterSpec) []greedy.MonsterSpec {
	var out []greedy.MonsterSpec
	for _, m := range monsters {
		if m.TurnOrder != 1 {
			continue
		}
		if len(swiftOnlyBuilds(m.Builds)) == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

// swiftOnlyBuilds returns a copy of builds restricted to their Swift set
// options, keeping only builds whose min-stat floors are SPD-only.
func swiftOnlyBuilds(builds []domain.Build) []domain.Build {
	var out []domain.Build
	for _, b := range builds {
		if !minStatsOnlySPD(b.MinStats) {
			continue
		}
		var swiftOptions []domain.SetOption
		for _, opt := range b.SetOptions {
			if containsSwift(opt) {
				swiftOptions = append(swiftOptions, opt)
			}
		}
		if len(swiftOptions) == 0 {
			continue
		}
		restricted := b
		restricted.SetOptions = swiftOptions
		out = append(out, restricted)
	}
	return out
}

func containsSwift(opt domain.SetOption) bool {
	for _, sid := range opt.SetIDs {
		if sid == config.SetSwift {
			return true
		}
	}
	return false
}

func minStatsOnlySPD(m domain.MinStats) bool {
	return m.HP == nil && m.HPNoBase == nil &&
		m.ATK == nil && m.ATKNoBase == nil &&
		m.DEF == nil && m.DEFNoBase == nil &&
		m.CritRate == nil && m.CritDmg == nil &&
		m.Resist == nil && m.Accuracy == nil
}

func copyBoolMap(m map[int64]bool) map[int64]bool {
	out := make(map[int64]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func unitIDsOf(specs []greedy.MonsterSpec) []int64 {
	out := make([]int64, len(specs))
	for i, s := range specs {
		out[i] = s.Monster.UnitID
	}
	return out
}
