package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"vmolist/internal"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rules is the tunable data behind make classification.
type Rules struct {
	MajorMakes     []string `yaml:"majorMakes"`
	NoiseMarkers   []string `yaml:"noiseMarkers"`
	HeaderCaptions []string `yaml:"headerCaptions"`
}

// DefaultRules returns the rules shipped with the binary.
func DefaultRules() Rules {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules: %v", err))
	}
	return rules
}

// LoadRules reads rules from path, or the embedded defaults when path is empty.
func LoadRules(path string) (Rules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules(), nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("%w: %v", internal.ErrInvalidRules, err)
	}
	return ParseRules(blob)
}

func ParseRules(blob []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(blob, &rules); err != nil {
		return Rules{}, fmt.Errorf("%w: %v", internal.ErrInvalidRules, err)
	}

	// Markers keep their surrounding spaces; they are part of the boundary.
	// They are matched against uppercased names, so they are uppercased here.
	rules.MajorMakes = cleanList(rules.MajorMakes, true)
	rules.NoiseMarkers = cleanList(rules.NoiseMarkers, false)
	for i, m := range rules.NoiseMarkers {
		rules.NoiseMarkers[i] = strings.ToUpper(m)
	}
	rules.HeaderCaptions = cleanList(rules.HeaderCaptions, true)

	if len(rules.MajorMakes) == 0 {
		return Rules{}, fmt.Errorf("%w: majorMakes is empty", internal.ErrInvalidRules)
	}
	return rules, nil
}

func cleanList(values []string, trim bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trim {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
