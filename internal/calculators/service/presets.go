package service

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type sprinklerPreset struct {
	SpacingAlong   float64 `yaml:"spacing_along_m"`
	SpacingBetween float64 `yaml:"spacing_between_m"`
	MaxAreaPerHead float64 `yaml:"max_area_per_head_m2"`
	Note           string  `yaml:"note"`
}

type hydrantRule struct {
	MaxSpacing               float64 `yaml:"max_spacing_m"`
	MaxDistanceToRemotePoint float64 `yaml:"max_distance_to_remote_point_m"`
}

type presets struct {
	Extinguishers struct {
		CoverageM2 map[string]float64 `yaml:"coverage_m2"`
	} `yaml:"extinguishers"`

	CleanAgent struct {
		DefaultTempC            float64 `yaml:"default_temp_c"`
		DefaultConcentrationPct float64 `yaml:"default_concentration_pct"`
		DefaultSafetyFactor     float64 `yaml:"default_safety_factor"`
	} `yaml:"clean_agent"`

	Sprinklers struct {
		DefaultHazard string                     `yaml:"default_hazard"`
		MinSpacing    float64                    `yaml:"min_spacing_m"`
		Presets       map[string]sprinklerPreset `yaml:"presets"`
	} `yaml:"sprinklers"`

	HoseReels struct {
		DefaultHoseLength  float64 `yaml:"default_hose_length_m"`
		DefaultUtilization float64 `yaml:"default_utilization"`
		MinUtilization     float64 `yaml:"min_utilization"`
		MaxUtilization     float64 `yaml:"max_utilization"`
	} `yaml:"hose_reels"`

	Hydrants map[string]hydrantRule `yaml:"hydrants"`
}

func loadPresets() (*presets, error) {
	var p presets
	if err := yaml.Unmarshal(presetsYAML, &p); err != nil {
		return nil, fmt.Errorf("parse embedded presets: %w", err)
	}
	if len(p.Extinguishers.CoverageM2) == 0 {
		return nil, fmt.Errorf("embedded presets missing extinguisher coverage table")
	}
	if len(p.Sprinklers.Presets) == 0 {
		return nil, fmt.Errorf("embedded presets missing sprinkler hazard table")
	}
	if len(p.Hydrants) == 0 {
		return nil, fmt.Errorf("embedded presets missing hydrant rules")
	}
	return &p, nil
}
