package config

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/aimreport/internal/location"
	"gopkg.in/yaml.v3"
)

// Rules are the site-specific tables used by the location normalizer.
type Rules struct {
	Buildings []location.Building `yaml:"buildings"`
	// TwoDigitFloors enables floors "10"-"12" inferred from four-character rooms.
	TwoDigitFloors bool `yaml:"two_digit_floors"`
}

// DefaultRules returns the built-in building table with two-digit floors enabled.
func DefaultRules() Rules {
	return Rules{
		Buildings:      location.DefaultBuildings(),
		TwoDigitFloors: true,
	}
}

// LoadRules reads a YAML rules file. An empty path returns DefaultRules.
// Keys missing from the file keep their default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	for i, b := range rules.Buildings {
		if b.Code == "" {
			return Rules{}, fmt.Errorf("parse rules file %s: building %d has no code", path, i+1)
		}
	}
	return rules, nil
}
