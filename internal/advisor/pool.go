package advisor

import (
	"fmt"

	"github.com/isavita/sugai/internal/config"
	"github.com/isavita/sugai/internal/llm"
	"github.com/rs/zerolog"
)

// AdvisorPool builds a collection of advisors from configuration.
type AdvisorPool struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewAdvisorPool(llmClient llm.LLMClient, logger *zerolog.Logger) *AdvisorPool {
	return &AdvisorPool{
		llmClient: llmClient,
		logger:    logger,
	}
}

func (p *AdvisorPool) BuildFromConfig(cfg *config.AdvisorsConfig) ([]Advisor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("advisors config is nil")
	}

	var advisors []Advisor

	for _, advisorCfg := range cfg.Advisors.Profiles {
		if !advisorCfg.Enabled {
			p.logger.Info().
				Str("advisor", advisorCfg.Name).
				Msg("advisor disabled in config, skipping")
			continue
		}

		adv, err := NewLLMAdvisor(advisorCfg, p.llmClient, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create advisor %s: %w", advisorCfg.Name, err)
		}

		advisors = append(advisors, adv)

		p.logger.Info().
			Str("advisor", advisorCfg.Name).
			Int("max_tokens", advisorCfg.Model.MaxTokens).
			Float64("temperature", advisorCfg.Model.Temperature).
			Bool("retry", advisorCfg.Model.Retry).
			Msg("advisor created successfully")
	}

	if len(advisors) == 0 {
		return nil, fmt.Errorf("no enabled advisors found in config")
	}

	p.logger.Info().
		Int("total_advisors", len(advisors)).
		Msg("advisor pool built successfully")

	return advisors, nil
}
