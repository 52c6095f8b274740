package variant

import "fmt"

// Config controls one gpu_search_* population search. Unlike the reference
// engine's batch_size/eval_factor/time_factor knobs (which scale a torch
// tensor's candidate count), our search is eaopt population/generation
// sized — PresetFor maps the three profile names onto the same intuition:
// fast trades breadth for low latency, max spends far more evaluation
// budget, balanced sits between them (spec §4.5, §9).
type Config struct {
	PopulationSize int
	Generations    int

	MutationRate  float64
	CrossoverRate float64

	EliteCount     int
	TournamentSize int

	ParallelEvaluations bool

	ConvergenceGenerations int
	TargetFitness          float64

	IslandModel       bool
	IslandCount       int
	MigrationInterval int
	MigrationSize     int

	// SpeedSlackBase seeds spawned variants' SpeedSlack field (spec §4.3's
	// speed_slack_for_quality knob).
	SpeedSlackBase int
}

const (
	ProfileFast     = "gpu_search_fast"
	ProfileBalanced = "gpu_search_balanced"
	ProfileMax      = "gpu_search_max"
)

// PresetFor returns the Config for a named quality profile, defaulting to
// the balanced tier for an unrecognised or empty name (mirrors
// optimize_gpu_search's own profile normalisation).
func PresetFor(profile string) Config {
	switch profile {
	case ProfileFast:
		return Config{
			PopulationSize: 40, Generations: 12,
			MutationRate: 0.25, CrossoverRate: 0.6,
			EliteCount: 3, TournamentSize: 3,
			ParallelEvaluations: true, ConvergenceGenerations: 5,
		}
	case ProfileMax:
		return Config{
			PopulationSize: 160, Generations: 60,
			MutationRate: 0.18, CrossoverRate: 0.75,
			EliteCount: 8, TournamentSize: 5,
			ParallelEvaluations: true, ConvergenceGenerations: 18,
			IslandModel: true, IslandCount: 4, MigrationInterval: 10, MigrationSize: 2,
		}
	default:
		return Config{
			PopulationSize: 80, Generations: 30,
			MutationRate: 0.2, CrossoverRate: 0.7,
			EliteCount: 5, TournamentSize: 4,
			ParallelEvaluations: true, ConvergenceGenerations: 10,
		}
	}
}

// Validate reports whether the configuration is usable by eaopt.GAConfig.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("variant: population_size must be positive, got %d", c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("variant: generations must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("variant: mutation_rate must be in [0,1], got %f", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("variant: crossover_rate must be in [0,1], got %f", c.CrossoverRate)
	}
	if c.EliteCount < 0 {
		return fmt.Errorf("variant: elite_count cannot be negative, got %d", c.EliteCount)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("variant: tournament_size must be positive, got %d", c.TournamentSize)
	}
	if c.IslandModel && c.IslandCount <= 0 {
		return fmt.Errorf("variant: island_count must be positive when island_model is enabled, got %d", c.IslandCount)
	}
	return nil
}
