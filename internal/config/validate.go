package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-hclog"

	"github.com/mvp-joe/jgrab/internal/dependency"
	"github.com/mvp-joe/jgrab/internal/javacode"
)

var (
	// ErrInvalidPattern indicates a directive pattern that does not compile or lacks a capture group
	ErrInvalidPattern = errors.New("invalid directive pattern")

	// ErrInvalidStrategy indicates an unknown class name extraction strategy
	ErrInvalidStrategy = errors.New("invalid class name strategy")

	// ErrEmptyInclude indicates no scan include patterns
	ErrEmptyInclude = errors.New("empty scan include patterns")

	// ErrInvalidGlob indicates a scan pattern that does not compile
	ErrInvalidGlob = errors.New("invalid glob pattern")

	// ErrInvalidWorkers indicates a scan worker count below one
	ErrInvalidWorkers = errors.New("invalid scan workers")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := dependency.NewParser(cfg.Directives.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}

	strategy := strings.ToLower(cfg.Extraction.ClassName)
	if strategy != javacode.StrategyLexical && strategy != javacode.StrategySyntax {
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidStrategy, javacode.StrategyLexical, javacode.StrategySyntax, cfg.Extraction.ClassName))
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	if hclog.LevelFromString(cfg.Log.Level) == hclog.NoLevel {
		errs = append(errs, fmt.Errorf("%w: %q (valid: trace, debug, info, warn, error)", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one pattern required", ErrEmptyInclude))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidGlob, pattern, err))
		}
	}

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The individual errors stay reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{msg: fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")), errs: errs}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
