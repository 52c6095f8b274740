package arenarush

import (
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/solver"
)

// uniqueUnitIDs drops non-positive and duplicate ids, preserving order.
func uniqueUnitIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := map[int64]bool{}
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// defaultTurnOrder assigns sequential turn_order 1..n by position.
func defaultTurnOrder(ids []int64) map[int64]int {
	out := make(map[int64]int, len(ids))
	for i, id := range ids {
		out[id] = i + 1
	}
	return out
}

// rotateUnitIDs cyclically shifts ids left by k, for defence-candidate
// diversity (spec §4.6 step 3's "differing global_seed_offset").
func rotateUnitIDs(ids []int64, k int) []int64 {
	n := len(ids)
	if n == 0 {
		return ids
	}
	k = ((k % n) + n) % n
	out := make([]int64, n)
	for i := range ids {
		out[i] = ids[(i+k)%n]
	}
	return out
}

// buildMonsterSpecs assembles greedy.MonsterSpec values for an ordered
// unit-id list, one team, with the given turn-order map.
func buildMonsterSpecs(ids []int64, acc domain.AccountData, builds map[int64][]domain.Build, teamID int, turnOrder map[int64]int) []greedy.MonsterSpec {
	out := make([]greedy.MonsterSpec, 0, len(ids))
	for _, id := range ids {
		monster := acc.Monsters[id]
		out = append(out, greedy.MonsterSpec{
			Monster:   monster,
			Builds:    builds[id],
			TeamID:    teamID,
			TurnOrder: turnOrder[id],
		})
	}
	return out
}

// lockedIDsFromResults collects the rune and artifact ids every ok result
// assigns, the running exclusion set the coordinator carries forward.
func lockedIDsFromResults(results map[int64]solver.Result) (runes, artifacts map[int64]bool) {
	runes = map[int64]bool{}
	artifacts = map[int64]bool{}
	for _, res := range results {
		if !res.OK {
			continue
		}
		for _, rid := range res.RunesBySlot {
			runes[rid] = true
		}
		for _, aid := range res.ArtifactsByType {
			artifacts[aid] = true
		}
	}
	return runes, artifacts
}

func mergeBoolSets(a, b map[int64]bool) map[int64]bool {
	out := make(map[int64]bool, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// excludeExcept returns excluded minus the ids in keep, the "exclude all
// defence runes/artifacts except those pinned" rule of spec §4.6 step 2b.
func excludeExcept(excluded, keep map[int64]bool) map[int64]bool {
	out := make(map[int64]bool, len(excluded))
	for id, v := range excluded {
		if keep[id] {
			continue
		}
		out[id] = v
	}
	return out
}

func okCount(results map[int64]solver.Result) int {
	n := 0
	for _, res := range results {
		if res.OK {
			n++
		}
	}
	return n
}

func totalQuality(results map[int64]solver.Result) int {
	total := 0
	for _, res := range results {
		if res.OK {
			total += res.Score
		}
	}
	return total
}

func totalCombatSPD(results map[int64]solver.Result) int {
	total := 0
	for _, res := range results {
		if res.OK {
			total += res.FinalSpeed
		}
	}
	return total
}
