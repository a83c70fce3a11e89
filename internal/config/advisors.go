package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadAdvisorsConfig() (*AdvisorsConfig, error) {

	path := os.Getenv("ADVISORS_CONFIG_PATH")
	if path == "" {
		path = "configs/advisors.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AdvisorsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *AdvisorsConfig) {
	if cfg.Advisors.DefaultModel.MaxTokens == 0 {
		cfg.Advisors.DefaultModel.MaxTokens = 1024
	}

	for i := range cfg.Advisors.Profiles {
		profile := &cfg.Advisors.Profiles[i]
		if profile.Model == nil {
			model := cfg.Advisors.DefaultModel
			profile.Model = &model
			continue
		}
		if profile.Model.MaxTokens == 0 {
			profile.Model.MaxTokens = cfg.Advisors.DefaultModel.MaxTokens
		}
		if profile.Model.Temperature == 0 {
			profile.Model.Temperature = cfg.Advisors.DefaultModel.Temperature
		}
	}
}

func (c *AdvisorsConfig) Validate() error {
	if len(c.Advisors.Profiles) == 0 {
		return fmt.Errorf("advisors config has no profiles")
	}

	seen := make(map[string]bool, len(c.Advisors.Profiles))
	for _, profile := range c.Advisors.Profiles {
		if profile.Name == "" {
			return fmt.Errorf("advisor with empty name")
		}
		if seen[profile.Name] {
			return fmt.Errorf("duplicate advisor name %q", profile.Name)
		}
		seen[profile.Name] = true

		if profile.Prompt == "" {
			return fmt.Errorf("advisor %q has an empty prompt", profile.Name)
		}
	}

	return nil
}
