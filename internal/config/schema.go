package config

// AdvisorsConfig is the root of configs/advisors.yaml.
type AdvisorsConfig struct {
	Advisors Advisors `yaml:"advisors"`
}

type Advisors struct {
	DefaultModel ModelConfig            `yaml:"default_model"`
	Profiles     []AdvisorConfiguration `yaml:"profiles"`
}

// AdvisorConfiguration defines one LLM advisor: its system message and the
// prompt template executed against prompt.Input.
type AdvisorConfiguration struct {
	Name        string       `yaml:"name"`
	Enabled     bool         `yaml:"enabled"`
	Description string       `yaml:"description"`
	System      string       `yaml:"system"`
	Prompt      string       `yaml:"prompt"`
	Model       *ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}
