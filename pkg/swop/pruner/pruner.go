// Package pruner builds the per-monster candidate pool the CP solver
// searches over: runes partitioned by slot and artifacts partitioned by
// type, optionally capped to the top-N runes per set (spec §4.2).
package pruner

import (
	"math"
	"sort"

	"github.com/klauer/swop/internal/errors"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// Pool is the pruned candidate set a single CP solve draws from.
type Pool struct {
	RunesBySlot     map[int][]domain.Rune
	ArtifactsByType map[int][]domain.Artifact
}

// Prune builds a Pool from the account's full rune and artifact inventory.
//
// excludedRuneIDs and excludedArtifactIDs drop items already locked by a
// prior stage of the run — a previous greedy step, a defence solve an
// Arena Rush offence team must not touch, and so on; this is the pruner's
// "mode exclusion" (spec §4.2), driven by the caller rather than a static
// per-mode rule table, mirroring how the reference engine threads a locked
// id set through every candidate-pool call.
//
// topPerSet caps each rune set to its best topPerSet candidates by a
// unit-agnostic pre-score; 0 disables pruning entirely.
func Prune(acc domain.AccountData, topPerSet int, excludedRuneIDs, excludedArtifactIDs map[int64]bool) (Pool, error) {
	runes := eligibleRunes(acc, excludedRuneIDs)
	if topPerSet > 0 {
		runes = topNPerSet(runes, topPerSet)
	}

	pool := Pool{
		RunesBySlot:     map[int][]domain.Rune{1: {}, 2: {}, 3: {}, 4: {}, 5: {}, 6: {}},
		ArtifactsByType: map[int][]domain.Artifact{1: {}, 2: {}},
	}
	for _, r := range runes {
		pool.RunesBySlot[r.SlotNo] = append(pool.RunesBySlot[r.SlotNo], r)
	}
	for _, a := range acc.Artifacts {
		if excludedArtifactIDs[a.ArtifactID] {
			continue
		}
		t := int(a.Type)
		if t == 1 || t == 2 {
			pool.ArtifactsByType[t] = append(pool.ArtifactsByType[t], a)
		}
	}

	for slot := 1; slot <= 6; slot++ {
		if len(pool.RunesBySlot[slot]) == 0 {
			return pool, errors.SlotHasNoCandidates(slot)
		}
	}
	return pool, nil
}

func eligibleRunes(acc domain.AccountData, excluded map[int64]bool) []domain.Rune {
	var out []domain.Rune
	for _, r := range acc.Runes {
		if excluded[r.RuneID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// preScore is the unit-agnostic pre-ranking used to pick the top-N runes
// per set: efficiency plus upgrade/rank/class progress (spec §4.2).
func preScore(r domain.Rune) int {
	eff := scoring.RuneEfficiency(r, scoring.EfficiencyCurrent)
	return int(math.RoundToEven(eff*100)) + r.UpgradeLevel*40 + r.Rank*30 + r.RuneClass*25
}

func topNPerSet(runes []domain.Rune, topN int) []domain.Rune {
	bySet := map[int][]domain.Rune{}
	for _, r := range runes {
		bySet[int(r.SetID)] = append(bySet[int(r.SetID)], r)
	}

	var out []domain.Rune
	for _, set := range bySet {
		ranked := append([]domain.Rune(nil), set...)
		sort.Slice(ranked, func(i, j int) bool {
			si, sj := preScore(ranked[i]), preScore(ranked[j])
			if si != sj {
				return si > sj
			}
			if ranked[i].SlotNo != ranked[j].SlotNo {
				return ranked[i].SlotNo > ranked[j].SlotNo
			}
			return ranked[i].RuneID < ranked[j].RuneID
		})
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}
		out = append(out, ranked...)
	}
	return out
}
