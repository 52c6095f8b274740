package config

// Genetic-search parameter tiers named after the gpu_search_* quality
// profiles, scaled by profile tier. Mirrors the teacher's
// DefaultGeneticConfig() in shape: population/generation counts tuned for
// a "fast/balanced/max" spread instead of a single default. pkg/swop/variant
// does not read this table: its searches take their settings from
// variant.PresetFor, whose values differ.
type GASearchTier struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteCount     int
	TournamentSize int
	IslandCount    int
}

var GASearchTiers = map[string]GASearchTier{
	"gpu_search_fast": {
		PopulationSize: 24, Generations: 40, MutationRate: 0.15,
		CrossoverRate: 0.7, EliteCount: 2, TournamentSize: 3, IslandCount: 1,
	},
	"gpu_search_balanced": {
		PopulationSize: 64, Generations: 120, MutationRate: 0.12,
		CrossoverRate: 0.75, EliteCount: 3, TournamentSize: 4, IslandCount: 2,
	},
	"gpu_search_max": {
		PopulationSize: 160, Generations: 300, MutationRate: 0.1,
		CrossoverRate: 0.8, EliteCount: 4, TournamentSize: 5, IslandCount: 4,
	},
}

// SolverWorkerTiers maps the fast/balanced/max quality profiles onto the
// CP solver's worker count, per spec §5 ("num_workers, tuned by profile:
// fast ≈ 1, balanced ≈ cpu/2, max ≈ cpu").
type SolverWorkerTier struct {
	// WorkersFraction divides runtime.NumCPU() to derive worker count; 0 means
	// "always 1".
	WorkersFraction int
	TimeLimitScale  float64
}

var SolverWorkerTiers = map[string]SolverWorkerTier{
	"fast":        {WorkersFraction: 0, TimeLimitScale: 0.4},
	"balanced":    {WorkersFraction: 2, TimeLimitScale: 1.0},
	"max_quality": {WorkersFraction: 1, TimeLimitScale: 2.5},
}
