package advisor

import (
	"context"
	"sync"

	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
)

// AdvisorRunner fans one prompt input out to every advisor concurrently.
type AdvisorRunner struct {
	Advisors []Advisor
	logger   *zerolog.Logger
}

func NewAdvisorRunner(advisors []Advisor, logger *zerolog.Logger) *AdvisorRunner {
	return &AdvisorRunner{
		Advisors: advisors,
		logger:   logger,
	}
}

func (r *AdvisorRunner) Run(ctx context.Context, input prompt.Input) []models.AdvisorSection {
	results := make(chan models.AdvisorSection, len(r.Advisors))
	var wg sync.WaitGroup

	for _, adv := range r.Advisors {
		wg.Add(1)
		go func(a Advisor) {
			defer wg.Done()
			results <- a.Advise(ctx, input)
		}(adv)
	}

	wg.Wait()
	close(results)

	var sections []models.AdvisorSection
	for section := range results {
		sections = append(sections, section)
	}

	return sections
}
