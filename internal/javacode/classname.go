// Package javacode locates the top-level type declared by a Java compilation unit.
package javacode

import (
	"fmt"
	"strings"
)

// NoneFound is what ClassName.String returns when no declaration was found.
const NoneFound = "none found"

// ClassName is the optional fully-qualified name of a declared type.
// The zero value means no declaration was found.
type ClassName struct {
	Package string
	Simple  string
}

// IsZero reports whether no type declaration was found.
func (c ClassName) IsZero() bool {
	return c.Simple == ""
}

// String returns the fully-qualified name, or NoneFound.
func (c ClassName) String() string {
	switch {
	case c.IsZero():
		return NoneFound
	case c.Package == "":
		return c.Simple
	default:
		return c.Package + "." + c.Simple
	}
}

// MarshalText encodes absent names as an empty string rather than NoneFound.
func (c ClassName) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText splits a fully-qualified name at its last dot.
func (c *ClassName) UnmarshalText(text []byte) error {
	name := string(text)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		*c = ClassName{Package: name[:i], Simple: name[i+1:]}
		return nil
	}
	*c = ClassName{Simple: name}
	return nil
}

// Extractor finds the first externally visible top-level type in a sequence of lines.
// Implementations never fail: unrecognizable input yields the zero ClassName.
type Extractor interface {
	ExtractClassName(lines []string) ClassName
}

const (
	// StrategyLexical selects LexicalExtractor.
	StrategyLexical = "lexical"
	// StrategySyntax selects SyntaxExtractor.
	StrategySyntax = "syntax"
)

// NewExtractor returns the extractor for a strategy name.
func NewExtractor(strategy string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyLexical:
		return LexicalExtractor{}, nil
	case StrategySyntax:
		return NewSyntaxExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown class name strategy %q (valid: %s, %s)", strategy, StrategyLexical, StrategySyntax)
	}
}
