package solver

import (
	"fmt"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/internal/errors"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/pruner"
)

// Solve searches every configured build and set option for unitID and
// returns the best feasible assignment found, or a structural diagnostic
// if none exists (spec §4.3, §4.3.3).
func Solve(unitID int64, monster domain.Monster, builds []domain.Build, pool pruner.Pool, acc domain.AccountData, mode domain.Mode, req Request) Result {
	if len(builds) == 0 {
		return Result{OK: false, Message: "monster has no configured build for this mode"}
	}

	nodeBudget := req.NodeBudget
	if nodeBudget == 0 {
		nodeBudget = DefaultNodeBudget
	}

	buildPenalty := req.BuildPriorityPenaltyOverride
	if buildPenalty == 0 {
		buildPenalty = config.BuildPriorityPenalty
	}
	avoidRunePenalty := req.AvoidSameRunePenaltyOverride
	if avoidRunePenalty == 0 {
		avoidRunePenalty = config.SameRunePenalty
	}
	avoidArtifactPenalty := req.AvoidSameArtifactPenaltyOverride
	if avoidArtifactPenalty == 0 {
		avoidArtifactPenalty = config.SameArtifactPenalty
	}

	var best assignment
	var bestBuild domain.Build
	found := false
	var lastDiagnostic error

	for _, build := range builds {
		options := build.SetOptions
		if len(options) == 0 {
			options = []domain.SetOption{{}}
		}
		for i, option := range options {
			ctx := &searchContext{
				monster:                  monster,
				unitID:                   unitID,
				mode:                     mode,
				acc:                      acc,
				build:                    build,
				option:                   option,
				ext:                      req.External,
				archetype:                req.Archetype,
				effVariant:               req.EffVariant,
				speedSlack:               req.SpeedSlack,
				baselineRunesBySlot:      req.BaselineRunesBySlot,
				baselineArtifactsByType:  req.BaselineArtifactsByType,
				baselineWeight:           req.BaselineWeight,
				previousRunesBySlot:      req.PreviousRunesBySlot,
				previousArtifactsByType:  req.PreviousArtifactsByType,
				setOptionPreferenceBonus: setOptionDistanceBonus(i, req.SetOptionPreferenceIndex),
				nodeBudget:               nodeBudget,
				buildPriorityPenalty:     buildPenalty,
				avoidSameRunePenalty:     avoidRunePenalty,
				avoidSameArtifactPenalty: avoidArtifactPenalty,
			}

			var candidate assignment
			var ok bool
			if req.SpeedFirst {
				ctx.speedFirst = true
				speedBest, speedOK := search(ctx, pool.RunesBySlot, pool.ArtifactsByType)
				if !speedOK {
					lastDiagnostic = diagnose(ctx, pool)
					continue
				}
				bestSpeed := speedBest.stats.CombatSPD
				ctx.speedFirst = false
				ctx.minSpeed = &bestSpeed
				ctx.nodesVisited = 0
				candidate, ok = search(ctx, pool.RunesBySlot, pool.ArtifactsByType)
			} else {
				ctx.speedFirst = false
				candidate, ok = search(ctx, pool.RunesBySlot, pool.ArtifactsByType)
			}

			if !ok {
				lastDiagnostic = diagnose(ctx, pool)
				continue
			}
			if !found || candidate.score > best.score {
				best = candidate
				bestBuild = build
				found = true
			}
		}
	}

	if !found {
		msg := "no feasible assignment found"
		if lastDiagnostic != nil {
			msg = lastDiagnostic.Error()
		}
		return Result{OK: false, Message: msg}
	}

	runesBySlot := make(map[int]int64, 6)
	for slot, r := range best.runes {
		runesBySlot[slot] = r.RuneID
	}
	artifactsByType := make(map[int]int64, 2)
	for t, a := range best.artifacts {
		artifactsByType[t] = a.ArtifactID
	}

	return Result{
		OK:              true,
		ChosenBuildID:   bestBuild.ID,
		ChosenBuildName: bestBuild.Name,
		RunesBySlot:     runesBySlot,
		ArtifactsByType: artifactsByType,
		FinalSpeed:      best.stats.CombatSPD,
		Score:           best.score,
	}
}

// setOptionDistanceBonus is the distance-decayed preference bonus centred
// on a rotating preferred set-option index, used to diversify multi-pass
// refinement (spec §4.3.2).
func setOptionDistanceBonus(index, preferred int) int {
	distance := index - preferred
	if distance < 0 {
		distance = -distance
	}
	const centre = 20
	const decay = 5
	bonus := centre - distance*decay
	if bonus < 0 {
		return 0
	}
	return bonus
}

// diagnose reports the first structural cause of an infeasible (build,
// set option) pair: an empty slot after main-stat filtering, an empty
// artifact type after focus/substat filtering, or a set requirement no
// inventory subset (with intangible replacement accounted for) can cover
// (spec §4.3.3).
func diagnose(ctx *searchContext, pool pruner.Pool) error {
	for _, slot := range runeSlots {
		filtered := filterRunesForSlot(ctx, slot, pool.RunesBySlot[slot])
		if len(filtered) == 0 {
			allowed := ctx.build.Mainstats[slot]
			keys := make([]string, len(allowed))
			for i, k := range allowed {
				keys[i] = string(k)
			}
			return errors.MainstatUnavailable(slot, keys)
		}
	}
	for _, t := range artifactTypes {
		pooled := pool.ArtifactsByType[t]
		if len(pooled) == 0 {
			if t == 1 {
				return errors.NoAttributeArtifact()
			}
			return errors.NoTypeArtifact()
		}
		filtered := filterArtifactsForType(ctx, t, pooled)
		if len(filtered) == 0 {
			filter := ctx.build.ArtifactFilters[domain.ArtifactType(t)]
			focus := ""
			if len(filter.Focus) > 0 {
				focus = string(filter.Focus[0])
			}
			subs := make([]string, len(filter.Substats))
			for i, s := range filter.Substats {
				subs[i] = fmt.Sprint(int(s))
			}
			return errors.ArtifactFilterUnsatisfiable(fmt.Sprintf("type_%d", t), focus, subs)
		}
	}
	if cause := diagnoseSetOption(ctx, pool); cause != nil {
		return cause
	}
	return errors.MinStatUnreachable("build", 0)
}

// diagnoseSetOption checks whether the option's set requirements can ever
// be covered by the pruned pool, independent of slot assignment, by
// counting available pieces per named set id (plus available intangible
// replacements).
func diagnoseSetOption(ctx *searchContext, pool pruner.Pool) error {
	counts := map[int]int{}
	intangibleAvailable := 0
	for _, runes := range pool.RunesBySlot {
		for _, r := range runes {
			counts[int(r.SetID)]++
		}
	}
	intangibleAvailable = counts[0]

	replacementBudget := 1
	for _, sid := range ctx.option.SetIDs {
		have := counts[int(sid)]
		needed := config.SetRequiredPieces[sid]
		if have >= needed {
			continue
		}
		if sid != config.SetIntangible && needed-have == 1 && replacementBudget > 0 && intangibleAvailable > 0 {
			replacementBudget--
			continue
		}
		return errors.SetOptionUnsatisfiable(int(sid), needed, have)
	}
	return nil
}
