package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scheme selects the automatic split-orientation algorithm used by
// bsp.Insert when the anchor carries no preselection.
type Scheme string

const (
	SchemeLongestSide Scheme = "longest_side"
	SchemeAlternate   Scheme = "alternate"
	SchemeSpiral      Scheme = "spiral"
)

// Polarity selects which side a newly inserted leaf lands on when no
// preselection or scheme-derived placement applies.
type Polarity string

const (
	PolarityFirstChild  Polarity = "first_child"
	PolaritySecondChild Polarity = "second_child"
)

// Config holds every tunable referenced by the layout, stacking and
// pointer algorithms. It is loaded from YAML the way termtile's
// internal/config package loads its workspace file, but flattened to a
// single document since the core has no per-layout override concept.
type Config struct {
	WindowGap       int32   `yaml:"window_gap"`
	BorderWidth     uint16  `yaml:"border_width"`
	SplitRatio      float64 `yaml:"split_ratio"`
	InitialPolarity string  `yaml:"initial_polarity"`
	AutomaticScheme string  `yaml:"automatic_scheme"`

	RemovalAdjustment bool `yaml:"removal_adjustment"`
	SingleMonocle     bool `yaml:"single_monocle"`
	BorderlessMonocle bool `yaml:"borderless_monocle"`
	BorderlessSingleton bool `yaml:"borderless_singleton"`
	GaplessMonocle    bool `yaml:"gapless_monocle"`
	CenterPseudoTiled bool `yaml:"center_pseudo_tiled"`

	DirectionalFocusTightness string `yaml:"directional_focus_tightness"`

	PointerModifier       string `yaml:"pointer_modifier"`
	PointerMotionInterval int    `yaml:"pointer_motion_interval_ms"`
	ClickToFocus          string `yaml:"click_to_focus"`
	FocusFollowsPointer   bool   `yaml:"focus_follows_pointer"`
	EdgeSnapEnabled       bool   `yaml:"edge_snap_enabled"`
	EdgeSnapThreshold     int32  `yaml:"edge_snap_threshold"`

	RemoveUnpluggedMonitors  bool `yaml:"remove_unplugged_monitors"`
	RemoveDisabledMonitors   bool `yaml:"remove_disabled_monitors"`
	MergeOverlappingMonitors bool `yaml:"merge_overlapping_monitors"`

	AnimationEnabled    bool `yaml:"animation_enabled"`
	AnimationDurationMs int  `yaml:"animation_duration_ms"`

	AutoRaise bool `yaml:"auto_raise"`

	SocketPath string `yaml:"socket_path"`
}

// Default returns the configuration the packaged defaults ship with,
// chosen so that a fresh install reproduces the spec's literal
// scenarios (S1-S6) out of the box.
func Default() *Config {
	return &Config{
		WindowGap:                 0,
		BorderWidth:               1,
		SplitRatio:                0.5,
		InitialPolarity:           string(PolaritySecondChild),
		AutomaticScheme:           string(SchemeLongestSide),
		RemovalAdjustment:         true,
		SingleMonocle:             false,
		BorderlessMonocle:         true,
		BorderlessSingleton:       true,
		GaplessMonocle:            false,
		CenterPseudoTiled:         true,
		DirectionalFocusTightness: "high",
		PointerModifier:           "mod4",
		PointerMotionInterval:     17,
		ClickToFocus:              "button1",
		FocusFollowsPointer:       false,
		EdgeSnapEnabled:           true,
		EdgeSnapThreshold:         20,
		RemoveUnpluggedMonitors:   false,
		RemoveDisabledMonitors:    false,
		MergeOverlappingMonitors:  false,
		AnimationEnabled:          false,
		AnimationDurationMs:       150,
		AutoRaise:                 true,
	}
}

// DefaultConfigPath returns $HOME/.config/bspwm1/bspwm1.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "bspwm1", "bspwm1.yaml"), nil
}

// Load reads and merges the YAML config at path over the packaged
// defaults. A missing file is not an error: the defaults are returned
// unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
