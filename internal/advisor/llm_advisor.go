package advisor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/isavita/sugai/internal/config"
	"github.com/isavita/sugai/internal/llm"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
)

// LLMAdvisor is a generic advisor driven by a configurable prompt template.
type LLMAdvisor struct {
	name           string
	system         string
	promptTemplate *template.Template
	modelConfig    config.ModelConfig
	llmClient      llm.LLMClient
	logger         *zerolog.Logger
}

func NewLLMAdvisor(
	advisorCfg config.AdvisorConfiguration,
	llmClient llm.LLMClient,
	logger *zerolog.Logger,
) (*LLMAdvisor, error) {
	tmpl, err := template.New(advisorCfg.Name).Parse(advisorCfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for advisor %s: %w", advisorCfg.Name, err)
	}

	if advisorCfg.Model == nil {
		return nil, fmt.Errorf("advisor %s has nil model config (should be populated by config loader)", advisorCfg.Name)
	}

	return &LLMAdvisor{
		name:           advisorCfg.Name,
		system:         advisorCfg.System,
		promptTemplate: tmpl,
		modelConfig:    *advisorCfg.Model,
		llmClient:      llmClient,
		logger:         logger,
	}, nil
}

// Advise builds the prompt, invokes the model and returns the markdown
// recommendation. Errors never propagate; they land in the section so one
// failed advisor cannot sink the whole report.
func (a *LLMAdvisor) Advise(ctx context.Context, input prompt.Input) models.AdvisorSection {
	now := time.Now()

	section := models.AdvisorSection{
		Name: fmt.Sprintf("%s-advisor", a.name),
	}

	userPrompt, err := a.buildPrompt(input)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("advisor", a.name).
			Msg("failed to build prompt from template")
		section.Error = fmt.Sprintf("Failed to build prompt: %v", err)
		section.Duration = time.Since(now)
		return section
	}

	request := llm.LLMRequest{
		System:      a.system,
		Prompt:      userPrompt,
		MaxTokens:   a.modelConfig.MaxTokens,
		Temperature: a.modelConfig.Temperature,
	}

	var resp *llm.LLMResponse
	if a.modelConfig.Retry {
		resp, err = a.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = a.llmClient.InvokeModel(ctx, request)
	}

	if err != nil {
		a.logger.Error().
			Err(err).
			Str("advisor", a.name).
			Msg("LLM call failed")
		section.Error = "Failed to call LLM"
		section.Duration = time.Since(now)
		return section
	}

	recommendation := stripMarkdownCodeBlock(resp.Content)
	if recommendation == "" {
		a.logger.Error().
			Str("advisor", a.name).
			Msg("LLM returned empty recommendation")
		section.Error = "Invalid LLM response: empty recommendation"
		section.Duration = time.Since(now)
		return section
	}

	section.Recommendation = recommendation
	section.Duration = time.Since(now)

	a.logger.Info().
		Str("advisor", a.name).
		Int("chars", len(recommendation)).
		Dur("duration", section.Duration).
		Msg("advisor completed")

	return section
}

// Name returns the advisor's name.
func (a *LLMAdvisor) Name() string {
	return a.name
}

func (a *LLMAdvisor) buildPrompt(input prompt.Input) (string, error) {
	var buf bytes.Buffer
	if err := a.promptTemplate.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// stripMarkdownCodeBlock removes a wrapping ```markdown fence if the model
// echoed one around its answer.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			// Opening fence only: assistant prefill style, drop the first line.
			return strings.TrimSpace(content[firstNewline+1:])
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
