// Package dependency extracts external library declarations from directive
// comments embedded in Java source.
//
// A directive is a line comment starting with a marker token followed by one
// or more whitespace-separated coordinates:
//
//	// DEP com.acme:widget:1.2.0
//	// #jgrab org.slf4j:slf4j-api:2.0.9 org.slf4j:slf4j-simple:2.0.9
//
// Directives never continue across lines.
package dependency

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultDirectivePattern recognizes directive lines. Capture group 1 holds the
// coordinate list and may be empty, which is reported as a fault.
const DefaultDirectivePattern = `^\s*//\s*(?:DEP|#jgrab)(?:\s+(.*?))?\s*$`

// DirectiveError reports a directive line that carried the marker but could
// not be parsed. Line is 1-based.
type DirectiveError struct {
	Line       int
	Content    string
	Coordinate string
	Err        error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("invalid dependency directive at line %d: %q: %v", e.Line, e.Content, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Parser scans source lines for dependency directives.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	pattern *regexp.Regexp
}

// NewParser compiles a directive pattern. The pattern must have at least one
// capture group; the first group is taken as the coordinate list.
func NewParser(pattern string) (*Parser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile directive pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, errors.New("directive pattern must have a capture group for coordinates")
	}
	return &Parser{pattern: re}, nil
}

// DefaultParser returns a parser for DefaultDirectivePattern.
func DefaultParser() *Parser {
	return defaultParser
}

var defaultParser = &Parser{pattern: regexp.MustCompile(DefaultDirectivePattern)}

// Pattern returns the directive pattern source.
func (p *Parser) Pattern() string {
	return p.pattern.String()
}

// Parse returns the dependencies declared in lines, in order of appearance.
// Duplicates are kept. If any directive is malformed, Parse returns nil and a
// *DirectiveError for the first offending line.
func (p *Parser) Parse(lines []string) ([]Dependency, error) {
	deps := []Dependency{}

	for i, line := range lines {
		m := p.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		coords := strings.Fields(m[1])
		if len(coords) == 0 {
			return nil, &DirectiveError{Line: i + 1, Content: line, Err: ErrEmptyDirective}
		}

		for _, coord := range coords {
			dep, err := ParseCoordinate(coord)
			if err != nil {
				return nil, &DirectiveError{Line: i + 1, Content: line, Coordinate: coord, Err: err}
			}
			deps = append(deps, dep)
		}
	}

	return deps, nil
}
