package variant

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/MaxHalford/eaopt"
	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/solver"
)

// Progress captures one generation's aggregate fitness, reported through
// Optimizer.Progress the way the greedy engine reports per-monster
// progress (spec §5's suspension-point contract).
type Progress struct {
	Generation  uint
	BestFitness float64
	AvgFitness  float64
	Populations int
}

// Result is a finished search's outcome: the best-scoring candidate's
// greedy result plus the population's evolution statistics.
type Result struct {
	Best        greedy.Result
	BestVariant Variant
	Scores      []float64
	Generations uint
	Duration    time.Duration
}

// Optimizer runs one gpu_search_* population search over greedy-pass
// variants for a fixed set of units (spec §4.5).
type Optimizer struct {
	Config   Config
	Template *Template
	Progress func(Progress)
	RNG      *rand.Rand
}

// NewOptimizer validates cfg and constructs an Optimizer for the given
// unit set and base request template.
func NewOptimizer(template *Template, cfg Config) (*Optimizer, error) {
	if template == nil || len(template.UnitIDs) == 0 {
		return nil, fmt.Errorf("variant: template must name at least one unit")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{Config: cfg, Template: template}, nil
}

// Run executes the search and returns the best variant's greedy result.
func (o *Optimizer) Run() (*Result, error) {
	if o == nil || o.Template == nil {
		return nil, fmt.Errorf("variant: optimizer or template is nil")
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	rng := o.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	popSize, nPops := o.populationConfig()
	hofSize := uint(1)
	if o.Config.EliteCount > 1 {
		hofSize = uint(o.Config.EliteCount)
	}

	model := elitismModel{
		Selector:  eaopt.SelTournament{NContestants: uint(o.Config.TournamentSize)},
		Elite:     uint(o.Config.EliteCount),
		MutRate:   o.Config.MutationRate,
		CrossRate: o.Config.CrossoverRate,
	}

	avoidBest := map[int64]solver.Result{}

	var (
		bestScore          = math.Inf(-1)
		lastImprovementGen uint
	)

	gaConfig := eaopt.GAConfig{
		NPops:        nPops,
		PopSize:      popSize,
		NGenerations: uint(o.Config.Generations),
		HofSize:      hofSize,
		Model:        model,
		ParallelEval: o.Config.ParallelEvaluations,
		RNG:          rng,
		Callback: func(ga *eaopt.GA) {
			updateAvoidBest(avoidBest, ga)
			if o.Progress == nil || ga == nil {
				return
			}
			best, avg := aggregateFitness(ga)
			o.Progress(Progress{
				Generation:  ga.Generations,
				BestFitness: best,
				AvgFitness:  avg,
				Populations: len(ga.Populations),
			})
		},
		EarlyStop: func(ga *eaopt.GA) bool {
			if ga == nil || len(ga.HallOfFame) == 0 {
				return false
			}
			currentBest := -ga.HallOfFame[0].Fitness
			if currentBest > bestScore {
				bestScore = currentBest
				lastImprovementGen = ga.Generations
			}
			if o.Config.TargetFitness > 0 && currentBest >= o.Config.TargetFitness {
				return true
			}
			if o.Config.ConvergenceGenerations > 0 {
				if ga.Generations >= lastImprovementGen+uint(o.Config.ConvergenceGenerations) {
					return true
				}
			}
			return false
		},
	}

	if o.Config.IslandModel {
		gaConfig.Migrator = eaopt.MigRing{NMigrants: uint(o.Config.MigrationSize)}
		gaConfig.MigFrequency = uint(o.Config.MigrationInterval)
	}

	ga, err := gaConfig.NewGA()
	if err != nil {
		return nil, err
	}

	newGenome := o.genomeFactory(avoidBest)
	if err := ga.Minimize(newGenome); err != nil {
		return nil, err
	}

	best, scores := extractBest(ga)
	if best == nil {
		return nil, fmt.Errorf("variant: search produced no candidate")
	}

	return &Result{
		Best:        best.lastResult,
		BestVariant: best.Variant,
		Scores:      scores,
		Generations: ga.Generations,
		Duration:    ga.Age,
	}, nil
}

func (o *Optimizer) populationConfig() (uint, uint) {
	if o.Config.IslandModel && o.Config.IslandCount > 0 {
		perPop := o.Config.PopulationSize / o.Config.IslandCount
		if perPop < 1 {
			perPop = 1
		}
		return uint(perPop), uint(o.Config.IslandCount)
	}
	return uint(o.Config.PopulationSize), 1
}

func (o *Optimizer) genomeFactory(avoidBest map[int64]solver.Result) func(rng *rand.Rand) eaopt.Genome {
	return func(rng *rand.Rand) eaopt.Genome {
		order := append([]int64(nil), o.Template.UnitIDs...)
		if rng.Float64() < 0.5 {
			order = mutateOrder(order, rng)
		} else {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		v := spawnVariant(order, rng, o.Template.SpeedSlackBase, nil)
		return newPassVariantGenome(o.Template, v, avoidBest)
	}
}

// updateAvoidBest refreshes the shared avoid-map from the generation's
// fittest individual, so the next generation's candidates are nudged away
// from repeating it verbatim (ported from gpu_search's avoid_solution_by_unit,
// refreshed once per GPU-batch cycle in the reference engine).
func updateAvoidBest(avoidBest map[int64]solver.Result, ga *eaopt.GA) {
	if ga == nil || len(ga.HallOfFame) == 0 {
		return
	}
	top, ok := ga.HallOfFame[0].Genome.(*PassVariantGenome)
	if !ok || top == nil {
		return
	}
	for k := range avoidBest {
		delete(avoidBest, k)
	}
	for uid, res := range top.lastResult.Best.Results {
		if res.OK {
			avoidBest[uid] = res
		}
	}
}

type elitismModel struct {
	Selector  eaopt.Selector
	Elite     uint
	MutRate   float64
	CrossRate float64
}

func (mod elitismModel) Apply(pop *eaopt.Population) error {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if mod.Elite > uint(len(pop.Individuals)) {
		mod.Elite = uint(len(pop.Individuals))
	}

	pop.Individuals.SortByFitness()

	var elites eaopt.Individuals
	if mod.Elite > 0 {
		elites = pop.Individuals[:mod.Elite].Clone(pop.RNG)
	}

	offspringCount := uint(len(pop.Individuals)) - mod.Elite
	if offspringCount > 0 {
		offsprings, err := generateOffsprings(offspringCount, pop.Individuals, mod.Selector, mod.CrossRate, pop.RNG)
		if err != nil {
			return err
		}
		if mod.MutRate > 0 {
			offsprings.Mutate(mod.MutRate, pop.RNG)
		}
		copy(pop.Individuals, elites)
		copy(pop.Individuals[mod.Elite:], offsprings)
		return nil
	}

	copy(pop.Individuals, elites)
	return nil
}

func (mod elitismModel) Validate() error {
	if mod.Selector == nil {
		return fmt.Errorf("variant: selector cannot be nil")
	}
	if err := mod.Selector.Validate(); err != nil {
		return err
	}
	if mod.MutRate < 0 || mod.MutRate > 1 {
		return fmt.Errorf("variant: mutation rate must be between 0 and 1, got %f", mod.MutRate)
	}
	if mod.CrossRate < 0 || mod.CrossRate > 1 {
		return fmt.Errorf("variant: crossover rate must be between 0 and 1, got %f", mod.CrossRate)
	}
	return nil
}

func generateOffsprings(n uint, indis eaopt.Individuals, sel eaopt.Selector, crossRate float64, rng *rand.Rand) (eaopt.Individuals, error) {
	offsprings := make(eaopt.Individuals, n)
	i := 0
	for i < len(offsprings) {
		selected, _, err := sel.Apply(2, indis, rng)
		if err != nil {
			return nil, err
		}
		if rng.Float64() < crossRate {
			selected[0].Crossover(selected[1], rng)
		}
		if i < len(offsprings) {
			offsprings[i] = selected[0]
			i++
		}
		if i < len(offsprings) {
			offsprings[i] = selected[1]
			i++
		}
	}
	return offsprings, nil
}

func aggregateFitness(ga *eaopt.GA) (float64, float64) {
	if ga == nil || len(ga.Populations) == 0 {
		return 0, 0
	}
	best := -ga.HallOfFame[0].Fitness
	sum := 0.0
	count := 0
	for _, pop := range ga.Populations {
		sum += -pop.Individuals.FitAvg()
		count++
	}
	if count == 0 {
		return best, 0
	}
	return best, sum / float64(count)
}

func extractBest(ga *eaopt.GA) (*PassVariantGenome, []float64) {
	if ga == nil || len(ga.HallOfFame) == 0 {
		return nil, nil
	}
	scores := make([]float64, 0, len(ga.HallOfFame))
	for _, indi := range ga.HallOfFame {
		scores = append(scores, -indi.Fitness)
	}
	top, ok := ga.HallOfFame[0].Genome.(*PassVariantGenome)
	if !ok {
		return nil, scores
	}
	return top, scores
}
