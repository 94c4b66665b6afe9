package config

import (
	"fmt"

	"github.com/mvp-joe/jgrab/internal/dependency"
	"github.com/mvp-joe/jgrab/internal/javacode"
)

// Config represents the complete jgrab configuration.
// It can be loaded from .jgrab/config.yml with environment variable overrides.
type Config struct {
	Directives DirectivesConfig `yaml:"directives" mapstructure:"directives"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Scan       ScanConfig       `yaml:"scan" mapstructure:"scan"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DirectivesConfig defines how dependency directives are recognized.
type DirectivesConfig struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"` // regexp; group 1 holds the coordinates
}

// ExtractionConfig selects the class name extraction strategy.
type ExtractionConfig struct {
	ClassName string `yaml:"class_name" mapstructure:"class_name"` // "lexical" or "syntax"
}

// ScanConfig defines which files `jgrab scan` inspects.
type ScanConfig struct {
	Include   []string `yaml:"include" mapstructure:"include"`     // glob patterns for Java files
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to skip
	Gitignore bool     `yaml:"gitignore" mapstructure:"gitignore"` // also skip paths in the root .gitignore
	Workers   int      `yaml:"workers" mapstructure:"workers"`     // files inspected concurrently
}

// WatchConfig configures `jgrab watch`.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LogConfig configures the hclog logger.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Directives: DirectivesConfig{
			Pattern: dependency.DefaultDirectivePattern,
		},
		Extraction: ExtractionConfig{
			ClassName: javacode.StrategyLexical,
		},
		Scan: ScanConfig{
			Include: []string{"**/*.java"},
			Ignore: []string{
				".git/**",
				".jgrab/**",
				"target/**",
				"build/**",
				"out/**",
				"node_modules/**",
			},
			Gitignore: true,
			Workers:   4,
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewExtractor builds the configured class name extractor.
func (c *Config) NewExtractor() (javacode.Extractor, error) {
	return javacode.NewExtractor(c.Extraction.ClassName)
}

// NewDirectiveParser builds the configured directive parser.
func (c *Config) NewDirectiveParser() (*dependency.Parser, error) {
	p, err := dependency.NewParser(c.Directives.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return p, nil
}
