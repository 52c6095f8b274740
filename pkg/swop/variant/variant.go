// Package variant implements the gpu_search_* quality profiles: a
// population-based search over greedy-pass parameters (unit priority
// order, objective weighting, churn penalties) rather than over rune
// assignments directly. Each candidate in the population picks a full
// pass configuration; pkg/swop/greedy.Run evaluates it (spec §4.5's
// "search over pass variants" tier, ported from the reference engine's
// gpu_search_optimizer _Variant/_spawn_variant/_mutate_order).
package variant

import (
	"math/rand"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// Variant is one candidate greedy-pass configuration: a priority ordering
// plus the objective knobs that shape how the pass's per-monster solves
// score candidates (ported from the reference engine's _Variant
// dataclass). set_pref_bonus's separate magnitude knob is folded into
// greedy/solver's existing distance-decayed bonus curve rather than
// exposed as its own evolved scalar — see DESIGN.md.
type Variant struct {
	Order           []int64
	SpeedHard       bool
	ObjectiveMode   string // "efficiency" | "balanced"
	BuildPenalty    int
	SetPrefIndex    int
	RunePenalty     int
	ArtifactPenalty int
	SpeedSlack      int
}

const (
	ObjectiveEfficiency = "efficiency"
	ObjectiveBalanced   = "balanced"

	minBuildPenalty = 1
)

// defaultBuildPenalty anchors the spawned BuildPenalty range on the
// solver's own default multiplier (internal/config.BuildPriorityPenalty)
// rather than the reference engine's literal constant, since our
// objective's score scale differs from the Python port's (spec §9).
var defaultBuildPenalty = config.BuildPriorityPenalty

// EffVariantFor maps a Variant's objective mode onto the shared scoring
// package's efficiency-denominator choice: "efficiency" rewards headroom
// to the legendary-max roll ceiling (the most aggressive efficiency
// framing available), "balanced" uses the account-relative current-max
// framing. Our scoring model has no separate quality/efficiency weight
// scalar to port the reference's objective_mode onto, so this is the
// closest available knob (see DESIGN.md).
func EffVariantFor(mode string) scoring.EfficiencyVariant {
	if mode == ObjectiveEfficiency {
		return scoring.EfficiencyLegendMax
	}
	return scoring.EfficiencyCurrent
}

// spawnVariant builds a fresh root variant (parent nil) or a mutated child
// of parent, following _spawn_variant's randomized-but-parent-anchored
// field perturbations.
func spawnVariant(order []int64, rng *rand.Rand, speedSlackBase int, parent *Variant) Variant {
	maxOffset := len(order) - 1
	if maxOffset < 0 {
		maxOffset = 0
	}

	if parent == nil {
		return Variant{
			Order:           append([]int64(nil), order...),
			SpeedHard:       rng.Float64() < 0.30,
			ObjectiveMode:   pick(rng, 0.75, ObjectiveEfficiency, ObjectiveBalanced),
			BuildPenalty:    clampMin(minBuildPenalty, defaultBuildPenalty+rng.Intn(9)-4),
			SetPrefIndex:    rng.Intn(maxOffset + 1),
			RunePenalty:     60 + rng.Intn(261),
			ArtifactPenalty: 40 + rng.Intn(221),
			SpeedSlack:      clampMin(0, speedSlackBase+rng.Intn(4)-1),
		}
	}

	return Variant{
		Order:           append([]int64(nil), order...),
		SpeedHard:       flipWithProb(rng, parent.SpeedHard, 0.7),
		ObjectiveMode:   pick(rng, 0.7, parent.ObjectiveMode, pick(rng, 0.8, ObjectiveEfficiency, ObjectiveBalanced)),
		BuildPenalty:    clampMin(minBuildPenalty, parent.BuildPenalty+jitter(rng, 3)),
		SetPrefIndex:    clampRange(0, maxOffset, parent.SetPrefIndex+jitter(rng, 2)),
		RunePenalty:     clampMin(0, parent.RunePenalty+jitter(rng, 80)),
		ArtifactPenalty: clampMin(0, parent.ArtifactPenalty+jitter(rng, 60)),
		SpeedSlack:      clampMin(0, parent.SpeedSlack+jitter(rng, 1)),
	}
}

// mutateOrder perturbs a unit-priority ordering by either swapping two
// random positions or moving a short segment elsewhere, mirroring
// _mutate_order's two operators.
func mutateOrder(order []int64, rng *rand.Rand) []int64 {
	out := append([]int64(nil), order...)
	if len(out) < 2 {
		return out
	}
	if rng.Float64() < 0.5 {
		i, j := rng.Intn(len(out)), rng.Intn(len(out))
		out[i], out[j] = out[j], out[i]
		return out
	}

	segLen := 1 + rng.Intn(minInt(3, len(out)))
	start := rng.Intn(len(out))
	end := start + segLen
	if end > len(out) {
		end = len(out)
	}
	seg := append([]int64(nil), out[start:end]...)
	rest := append([]int64(nil), out[:start]...)
	rest = append(rest, out[end:]...)
	insertAt := rng.Intn(len(rest) + 1)
	result := append([]int64(nil), rest[:insertAt]...)
	result = append(result, seg...)
	result = append(result, rest[insertAt:]...)
	return result
}

func pick(rng *rand.Rand, probFirst float64, a, b string) string {
	if rng.Float64() < probFirst {
		return a
	}
	return b
}

func flipWithProb(rng *rand.Rand, v bool, keepProb float64) bool {
	if rng.Float64() < keepProb {
		return v
	}
	return !v
}

func jitter(rng *rand.Rand, span int) int {
	if span <= 0 {
		return 0
	}
	return rng.Intn(2*span+1) - span
}

func clampMin(min, v int) int {
	if v < min {
		return min
	}
	return v
}

func clampRange(min, max, v int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
