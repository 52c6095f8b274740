package arenarush

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"
)

// candidateScore is the defence-candidate ranking tuple of spec §4.6 step
// 3: (sum ok counts, −Σ opening_penalty, total_quality, total_combat_spd).
type candidateScore struct {
	okCount        int
	negPenalty     int
	totalQuality   int
	totalCombatSPD int
}

func (s candidateScore) better(other candidateScore) bool {
	if s.okCount != other.okCount {
		return s.okCount > other.okCount
	}
	if s.negPenalty != other.negPenalty {
		return s.negPenalty > other.negPenalty
	}
	if s.totalQuality != other.totalQuality {
		return s.totalQuality > other.totalQuality
	}
	return s.totalCombatSPD > other.totalCombatSPD
}

func scoreResult(res Result) candidateScore {
	okN := okCount(res.Defense.Best.Results)
	totalQ := totalQuality(res.Defense.Best.Results)
	totalSPD := totalCombatSPD(res.Defense.Best.Results)
	penalty := 0
	for _, off := range res.Offenses {
		okN += okCount(off.Optimization.Best.Results)
		totalQ += totalQuality(off.Optimization.Best.Results)
		totalSPD += totalCombatSPD(off.Optimization.Best.Results)
		penalty += off.OpeningPenalty
	}
	return candidateScore{okCount: okN, negPenalty: -penalty, totalQuality: totalQ, totalCombatSPD: totalSPD}
}

// runCandidates fans defence seeds 0..DefenseCandidateCount-1 out across up
// to Workers goroutines, each running the full defence+offence pipeline
// with its own rotation of the defence unit order, and returns the
// highest-scoring candidate (spec §4.6 step 3). Once MaxRuntime elapses, no
// further candidates are launched; the best among whichever candidates had
// already finished or were in flight is returned, matching the
// max_runtime_s contract of spec §6's cancellation & timeouts section.
func runCandidates(req Request) Result {
	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}
	clk := req.Clock
	if clk == nil {
		clk = clock.New()
	}

	var deadline <-chan time.Time
	if req.MaxRuntime > 0 {
		timer := clk.Timer(req.MaxRuntime)
		defer timer.Stop()
		deadline = timer.C
	}

	tokens := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		tokens <- struct{}{}
	}

	results := make([]Result, 0, req.DefenseCandidateCount)
	var mu sync.Mutex
	var g errgroup.Group

launchLoop:
	for i := 0; i < req.DefenseCandidateCount; i++ {
		select {
		case <-deadline:
			break launchLoop
		case <-tokens:
		}
		idx := i
		g.Go(func() error {
			defer func() { tokens <- struct{}{} }()
			res := runOnce(req, idx)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(results) == 0 {
		return Result{OK: false, Message: "arena rush: no defense candidate completed"}
	}
	best := results[0]
	bestScore := scoreResult(best)
	for _, res := range results[1:] {
		if score := scoreResult(res); score.better(bestScore) {
			best = res
			bestScore = score
		}
	}
	return best
}
