package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artem13815/mockinterview/pkg/interview"
)

// Prompts is the shape of PROMPTS_FILE. Keys left out keep their defaults.
type Prompts struct {
	Interview interview.Prompts `yaml:",inline"`
	Resume    string            `yaml:"resume"`
}

// LoadPrompts reads the YAML override file. An empty path yields zero overrides.
func LoadPrompts(path string) (Prompts, error) {
	var p Prompts
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read prompts file: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	return p, nil
}
