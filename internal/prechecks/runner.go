package prechecks

import (
	"sync"

	"github.com/isavita/sugai/internal/models"
)

type StageRunner struct {
	Checkers []Checker
}

func NewStageRunner(checkers []Checker) *StageRunner {
	return &StageRunner{
		Checkers: checkers,
	}
}

func (r *StageRunner) Run(request models.AnalysisRequest) []models.CheckResult {
	results := make(chan models.CheckResult, len(r.Checkers))
	var wg sync.WaitGroup

	for _, checker := range r.Checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			results <- c.Check(request)
		}(checker)
	}

	wg.Wait()
	close(results)

	var checkResults []models.CheckResult
	for res := range results {
		checkResults = append(checkResults, res)
	}

	return checkResults
}
