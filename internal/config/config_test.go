package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/jgrab/internal/dependency"
	"github.com/mvp-joe/jgrab/internal/javacode"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .jgrab/config.yml and .jgrab/config.yaml
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - Validate() rejects bad directive patterns, strategies, globs, debounce, log level
// - Validate() returns multiple errors for multiple invalid fields
// - NewExtractor() / NewDirectiveParser() build the configured helpers

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	jgrabDir := filepath.Join(dir, ".jgrab")
	require.NoError(t, os.MkdirAll(jgrabDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(jgrabDir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, dependency.DefaultDirectivePattern, cfg.Directives.Pattern)
	assert.Equal(t, javacode.StrategyLexical, cfg.Extraction.ClassName)
	assert.Equal(t, []string{"**/*.java"}, cfg.Scan.Include)
	assert.Contains(t, cfg.Scan.Ignore, "target/**")
	assert.True(t, cfg.Scan.Gitignore)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 300, cfg.Watch.DebounceMS)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
directives:
  pattern: '^\s*//\s*@Grab\s+(.*)$'

extraction:
  class_name: syntax

scan:
  include:
    - "src/**/*.java"
  ignore:
    - "src/generated/**"
  gitignore: false
  workers: 2

watch:
  debounce_ms: 50

log:
  level: debug
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, `^\s*//\s*@Grab\s+(.*)$`, cfg.Directives.Pattern)
	assert.Equal(t, "syntax", cfg.Extraction.ClassName)
	assert.Equal(t, []string{"src/**/*.java"}, cfg.Scan.Include)
	assert.Equal(t, []string{"src/generated/**"}, cfg.Scan.Ignore)
	assert.False(t, cfg.Scan.Gitignore)
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, 50, cfg.Watch.DebounceMS)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", `
extraction:
  class_name: syntax
`)

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "syntax", cfg.Extraction.ClassName)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
watch:
  debounce_ms: 1000
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, 1000, cfg.Watch.DebounceMS)
	assert.Equal(t, defaults.Directives, cfg.Directives)
	assert.Equal(t, defaults.Extraction, cfg.Extraction)
	assert.Equal(t, defaults.Scan, cfg.Scan)
	assert.Equal(t, defaults.Log, cfg.Log)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
extraction:
  class_name: lexical
log:
  level: warn
`)

	t.Setenv("JGRAB_EXTRACTION_CLASS_NAME", "syntax")
	t.Setenv("JGRAB_WATCH_DEBOUNCE_MS", "10")
	t.Setenv("JGRAB_SCAN_WORKERS", "8")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "syntax", cfg.Extraction.ClassName)
	assert.Equal(t, 10, cfg.Watch.DebounceMS)
	assert.Equal(t, 8, cfg.Scan.Workers)

	// Not overridden, should come from config file
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "extraction: [unclosed\n")

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
extraction:
  class_name: ast
`)

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStrategy)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"uncompilable pattern", func(c *Config) { c.Directives.Pattern = "(" }, ErrInvalidPattern},
		{"pattern without group", func(c *Config) { c.Directives.Pattern = "^// DEP .*$" }, ErrInvalidPattern},
		{"unknown strategy", func(c *Config) { c.Extraction.ClassName = "regex" }, ErrInvalidStrategy},
		{"empty include", func(c *Config) { c.Scan.Include = nil }, ErrEmptyInclude},
		{"bad include glob", func(c *Config) { c.Scan.Include = []string{"src/[*.java"} }, ErrInvalidGlob},
		{"bad ignore glob", func(c *Config) { c.Scan.Ignore = []string{"{a,b"} }, ErrInvalidGlob},
		{"zero workers", func(c *Config) { c.Scan.Workers = 0 }, ErrInvalidWorkers},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidDebounce},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Extraction.ClassName = "nope"
	cfg.Watch.DebounceMS = -5
	cfg.Log.Level = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrInvalidStrategy)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestConfig_BuildsHelpers(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Extraction.ClassName = javacode.StrategySyntax

	extractor, err := cfg.NewExtractor()
	require.NoError(t, err)
	assert.IsType(t, &javacode.SyntaxExtractor{}, extractor)

	parser, err := cfg.NewDirectiveParser()
	require.NoError(t, err)
	assert.Equal(t, dependency.DefaultDirectivePattern, parser.Pattern())

	cfg.Directives.Pattern = "no group"
	_, err = cfg.NewDirectiveParser()
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
