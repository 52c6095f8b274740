package variant

import (
	"fmt"
	"math/rand"

	"github.com/MaxHalford/eaopt"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/solver"
)

// Template is the fixed, per-run part of a greedy request a PassVariantGenome
// fills a Variant's evolved knobs into: every field except Monsters'
// ordering and the variant-controlled objective parameters, which Evaluate
// overwrites per candidate.
type Template struct {
	Base greedy.Request

	// UnitIDs is the set of monster unit ids a Variant.Order permutes.
	// MonsterByUnit looks each one back up to rebuild Base.Monsters in the
	// candidate's order.
	UnitIDs       []int64
	MonsterByUnit map[int64]greedy.MonsterSpec

	SpeedSlackBase int
}

// NewTemplate builds a Template from a fully-configured greedy.Request:
// base.Monsters supplies both the unit set a Variant.Order permutes and
// the per-monster build/team/turn-order data Evaluate looks back up by
// unit id every candidate.
func NewTemplate(base greedy.Request, speedSlackBase int) *Template {
	unitIDs := make([]int64, 0, len(base.Monsters))
	byUnit := make(map[int64]greedy.MonsterSpec, len(base.Monsters))
	for _, spec := range base.Monsters {
		unitIDs = append(unitIDs, spec.Monster.UnitID)
		byUnit[spec.Monster.UnitID] = spec
	}
	return &Template{Base: base, UnitIDs: unitIDs, MonsterByUnit: byUnit, SpeedSlackBase: speedSlackBase}
}

// PassVariantGenome is one candidate in the gpu_search_* population: a
// Variant plus the template it evaluates against. It implements
// eaopt.Genome directly (no extra wrapper type — unlike a full deck
// genome, a pass variant has no role/synergy repair step that would
// benefit from being tested independently of eaopt's rng-threading
// signatures).
type PassVariantGenome struct {
	Variant Variant
	Fitness float64

	template *Template

	// avoidBest is the running best-known per-unit assignment, refreshed
	// by the optimizer after every generation; Evaluate forwards it as
	// greedy.Request.AvoidResultsByUnit so later candidates are
	// discouraged from repeating it verbatim (ported from gpu_search's
	// avoid_solution_by_unit).
	avoidBest map[int64]solver.Result

	lastResult greedy.Result
}

// LastResult returns the greedy outcome from this genome's most recent
// Evaluate call, or the zero value if Evaluate has not run yet.
func (g *PassVariantGenome) LastResult() greedy.Result {
	return g.lastResult
}

func newPassVariantGenome(template *Template, v Variant, avoidBest map[int64]solver.Result) *PassVariantGenome {
	return &PassVariantGenome{Variant: v, template: template, avoidBest: avoidBest}
}

// Evaluate runs one full greedy pass under this genome's Variant and scores
// it with a scalarization of scoring.PassScore (spec §4.4 step 3): eaopt
// requires a single float64 fitness, so the lexicographic tuple's leading
// fields are weighted far enough apart that no lower-priority field can
// outweigh a higher one within realistic score ranges (see DESIGN.md).
func (g *PassVariantGenome) Evaluate() (float64, error) {
	if g.template == nil {
		return 0, fmt.Errorf("variant genome: nil template")
	}

	req := g.template.Base
	req.Monsters = monstersInOrder(g.template.MonsterByUnit, g.Variant.Order)
	req.SpeedFirst = g.Variant.SpeedHard
	req.EffVariant = EffVariantFor(g.Variant.ObjectiveMode)
	req.SpeedSlack = g.Variant.SpeedSlack
	req.SetOptionPreferenceIndex = g.Variant.SetPrefIndex
	req.BuildPriorityPenaltyOverride = g.Variant.BuildPenalty
	req.AvoidSameRunePenaltyOverride = g.Variant.RunePenalty
	req.AvoidSameArtifactPenaltyOverride = g.Variant.ArtifactPenalty
	req.AvoidResultsByUnit = g.avoidBest
	req.MultiPassEnabled = false

	result := greedy.Run(req)
	g.lastResult = result
	g.Fitness = fitnessOf(result)
	// eaopt.GA.Minimize expects lower-is-better; Fitness is kept
	// higher-is-better for human-facing reporting, so negate here only.
	return -g.Fitness, nil
}

// fitnessOf scalarizes a greedy result's PassScore into a single float64
// eaopt can maximize, preserving the tuple's lexicographic priority via
// widely separated weights.
func fitnessOf(result greedy.Result) float64 {
	s := result.Best.Score
	return float64(s.OKCount)*1e15 +
		float64(s.EffectiveQuality)*1e9 +
		float64(s.MinUnitQuality)*1e3 +
		float64(s.TotalCombatSPD)
}

func monstersInOrder(byUnit map[int64]greedy.MonsterSpec, order []int64) []greedy.MonsterSpec {
	out := make([]greedy.MonsterSpec, 0, len(order))
	for _, uid := range order {
		if spec, ok := byUnit[uid]; ok {
			out = append(out, spec)
		}
	}
	return out
}

// Mutate perturbs this genome's Variant in place: its priority order via
// mutateOrder and its objective knobs via spawnVariant(parent=self),
// mirroring the reference engine's elite-guided variant regeneration.
func (g *PassVariantGenome) Mutate(rng *rand.Rand) {
	order := mutateOrder(g.Variant.Order, rng)
	g.Variant = spawnVariant(order, rng, g.template.SpeedSlackBase, &g.Variant)
}

// Crossover combines this genome with other by taking an order-preserving
// (OX-style) splice of the two priority orders and averaging the numeric
// objective knobs, picking each boolean/string field from one parent at
// random — a simpler analogue of the reference deck genome's uniform
// crossover, since a pass variant has no role/synergy constraints to repair.
func (g *PassVariantGenome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	peer, ok := other.(*PassVariantGenome)
	if !ok || peer == nil {
		return
	}

	g.Variant.Order = orderCrossover(g.Variant.Order, peer.Variant.Order, rng)
	if rng.Float64() < 0.5 {
		g.Variant.SpeedHard = peer.Variant.SpeedHard
	}
	if rng.Float64() < 0.5 {
		g.Variant.ObjectiveMode = peer.Variant.ObjectiveMode
	}
	g.Variant.BuildPenalty = avgInt(g.Variant.BuildPenalty, peer.Variant.BuildPenalty)
	g.Variant.SetPrefIndex = avgInt(g.Variant.SetPrefIndex, peer.Variant.SetPrefIndex)
	g.Variant.RunePenalty = avgInt(g.Variant.RunePenalty, peer.Variant.RunePenalty)
	g.Variant.ArtifactPenalty = avgInt(g.Variant.ArtifactPenalty, peer.Variant.ArtifactPenalty)
	g.Variant.SpeedSlack = avgInt(g.Variant.SpeedSlack, peer.Variant.SpeedSlack)
}

// Clone returns a deep copy, as eaopt retains hall-of-fame individuals
// beyond the generation that produced them.
func (g *PassVariantGenome) Clone() eaopt.Genome {
	clone := *g
	clone.Variant.Order = append([]int64(nil), g.Variant.Order...)
	return &clone
}

// orderCrossover splices a's prefix with b's remaining units in b's
// relative order, the standard order-crossover operator for permutation
// genomes (there is no reference-engine equivalent to ground this on: the
// Python port only ever mutates elites, it never crosses two variants'
// orders — this is a from-scratch adaptation to satisfy eaopt.Genome's
// Crossover requirement).
func orderCrossover(a, b []int64, rng *rand.Rand) []int64 {
	n := len(a)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return append([]int64(nil), a...)
	}
	cut := 1 + rng.Intn(n-1)
	head := append([]int64(nil), a[:cut]...)
	taken := make(map[int64]bool, cut)
	for _, uid := range head {
		taken[uid] = true
	}
	out := head
	for _, uid := range b {
		if !taken[uid] {
			out = append(out, uid)
			taken[uid] = true
		}
	}
	return out
}

func avgInt(a, b int) int {
	return (a + b) / 2
}
