package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/isavita/sugai/internal/config"
	"github.com/isavita/sugai/internal/llm"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
)

func testAdvisorConfig() config.AdvisorConfiguration {
	return config.AdvisorConfiguration{
		Name:        "basal",
		Enabled:     true,
		Description: "Basal rate review",
		System:      "You are a medical assistant.",
		Prompt:      "Settings: {{.SettingsJSON}}\nHourly: {{.HourlyTable}}",
		Model: &config.ModelConfig{
			MaxTokens:   512,
			Temperature: 0.2,
			Retry:       false,
		},
	}
}

func TestNewLLMAdvisor_Success(t *testing.T) {
	logger := zerolog.Nop()

	adv, err := NewLLMAdvisor(testAdvisorConfig(), &MockLLMClient{}, &logger)
	if err != nil {
		t.Fatalf("NewLLMAdvisor failed: %v", err)
	}

	if adv.name != "basal" {
		t.Errorf("Expected name 'basal', got '%s'", adv.name)
	}
	if adv.modelConfig.MaxTokens != 512 {
		t.Errorf("Expected MaxTokens=512, got %d", adv.modelConfig.MaxTokens)
	}
}

func TestNewLLMAdvisor_InvalidTemplate(t *testing.T) {
	logger := zerolog.Nop()

	cfg := testAdvisorConfig()
	cfg.Prompt = "{{.Invalid"

	if _, err := NewLLMAdvisor(cfg, &MockLLMClient{}, &logger); err == nil {
		t.Error("Expected error for invalid template")
	}
}

func TestNewLLMAdvisor_NilModelConfig(t *testing.T) {
	logger := zerolog.Nop()

	cfg := testAdvisorConfig()
	cfg.Model = nil

	if _, err := NewLLMAdvisor(cfg, &MockLLMClient{}, &logger); err == nil {
		t.Error("Expected error for nil model config")
	}
}

func TestLLMAdvisor_Advise_Success(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content:    "### Pattern Identified\nBetween 2-5 AM glucose drops from 7.0 to 3.8 mmol/L.",
			StopReason: "end_turn",
		},
	}

	adv, err := NewLLMAdvisor(testAdvisorConfig(), mockClient, &logger)
	if err != nil {
		t.Fatalf("NewLLMAdvisor failed: %v", err)
	}

	input := prompt.Input{
		SettingsJSON: `{"timed_settings":[]}`,
		HourlyTable:  "02:00 | 12 | 5.1 | 3.8 | 7.0",
	}

	section := adv.Advise(context.Background(), input)

	if section.Error != "" {
		t.Fatalf("Unexpected section error: %s", section.Error)
	}
	if !strings.Contains(section.Recommendation, "Pattern Identified") {
		t.Errorf("Unexpected recommendation: %s", section.Recommendation)
	}
	if section.Name != "basal-advisor" {
		t.Errorf("Expected section name 'basal-advisor', got '%s'", section.Name)
	}

	// The template input must reach the model
	if !strings.Contains(mockClient.LastRequest.Prompt, "02:00 | 12") {
		t.Errorf("Prompt missing hourly table: %s", mockClient.LastRequest.Prompt)
	}
	if mockClient.LastRequest.System != "You are a medical assistant." {
		t.Errorf("System message not forwarded: %s", mockClient.LastRequest.System)
	}
	if mockClient.LastRequest.MaxTokens != 512 {
		t.Errorf("Expected MaxTokens=512, got %d", mockClient.LastRequest.MaxTokens)
	}
}

func TestLLMAdvisor_Advise_LLMError(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{ErrorToReturn: errors.New("throttled")}

	adv, err := NewLLMAdvisor(testAdvisorConfig(), mockClient, &logger)
	if err != nil {
		t.Fatalf("NewLLMAdvisor failed: %v", err)
	}

	section := adv.Advise(context.Background(), prompt.Input{})

	if section.Error == "" {
		t.Error("Expected section error for failed LLM call")
	}
	if section.Recommendation != "" {
		t.Errorf("Expected empty recommendation, got: %s", section.Recommendation)
	}
}

func TestLLMAdvisor_Advise_EmptyResponse(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: "   ", StopReason: "end_turn"},
	}

	adv, err := NewLLMAdvisor(testAdvisorConfig(), mockClient, &logger)
	if err != nil {
		t.Fatalf("NewLLMAdvisor failed: %v", err)
	}

	section := adv.Advise(context.Background(), prompt.Input{})
	if section.Error == "" {
		t.Error("Expected section error for empty recommendation")
	}
}

func TestStripMarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "### Heading\ntext", "### Heading\ntext"},
		{"fenced", "```markdown\n### Heading\ntext\n```", "### Heading\ntext"},
		{"opening fence only", "```markdown\n### Heading\ntext", "### Heading\ntext"},
		{"fence no newline", "```", "```"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripMarkdownCodeBlock(tc.input); got != tc.want {
				t.Errorf("stripMarkdownCodeBlock(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
