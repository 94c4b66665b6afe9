// Package source captures Java source text from an origin (stdin, a file, or
// a literal snippet) and exposes the metadata the execution pipeline needs.
//
// Every provider reads its input exactly once at construction and shares the
// same extraction helpers, so results never depend on where the text came from.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/mvp-joe/jgrab/internal/dependency"
	"github.com/mvp-joe/jgrab/internal/javacode"
)

// Source is the metadata contract consumed by the execution pipeline.
type Source interface {
	// IsSnippet reports whether the text declares no public top-level type
	// and must be wrapped before compilation.
	IsSnippet() bool

	// ExtractDependencies returns the declared dependencies in source order.
	// A malformed directive yields a *dependency.DirectiveError and no dependencies.
	ExtractDependencies() ([]dependency.Dependency, error)

	// ClassName returns the declared type, or the zero ClassName for snippets.
	ClassName() javacode.ClassName

	// Code returns the captured lines joined with "\n".
	Code() string

	// Origin describes where the text came from, for diagnostics.
	Origin() string
}

const (
	// OriginStdin is the Origin of sources read from standard input.
	OriginStdin = "stdin"
	// OriginSnippet is the Origin of literal snippets.
	OriginSnippet = "snippet"
)

// Option configures a provider.
type Option func(*options)

type options struct {
	logger    hclog.Logger
	extractor javacode.Extractor
	parser    *dependency.Parser
}

// WithLogger sets the logger that receives extraction diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExtractor overrides the class name extractor.
func WithExtractor(e javacode.Extractor) Option {
	return func(o *options) {
		if e != nil {
			o.extractor = e
		}
	}
}

// WithDirectiveParser overrides the dependency directive parser.
func WithDirectiveParser(p *dependency.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		logger:    hclog.NewNullLogger(),
		extractor: javacode.LexicalExtractor{},
		parser:    dependency.DefaultParser(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// code is the provider-independent implementation of Source.
type code struct {
	origin    string
	lines     []string
	className javacode.ClassName
	parser    *dependency.Parser

	depsOnce sync.Once
	deps     []dependency.Dependency
	depsErr  error
}

func newCode(origin string, lines []string, o *options) *code {
	c := &code{
		origin: origin,
		lines:  slices.Clone(lines),
		parser: o.parser,
	}
	c.className = o.extractor.ExtractClassName(c.lines)
	o.logger.Debug("extracted class name", "origin", origin, "class", c.className.String(), "lines", len(c.lines))
	return c
}

func (c *code) IsSnippet() bool {
	return c.className.IsZero()
}

func (c *code) ExtractDependencies() ([]dependency.Dependency, error) {
	c.depsOnce.Do(func() {
		c.deps, c.depsErr = c.parser.Parse(c.lines)
	})
	if c.depsErr != nil {
		return nil, c.depsErr
	}
	return slices.Clone(c.deps), nil
}

func (c *code) ClassName() javacode.ClassName {
	return c.className
}

func (c *code) Code() string {
	return strings.Join(c.lines, "\n")
}

func (c *code) Origin() string {
	return c.origin
}

// StdinSource is Java code piped through standard input.
type StdinSource struct {
	*code
}

// NewStdin reads r to EOF. The CLI passes os.Stdin; construction blocks until
// the stream closes.
func NewStdin(r io.Reader, opts ...Option) (*StdinSource, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, &IngestionError{Origin: OriginStdin, Err: err}
	}
	return &StdinSource{code: newCode(OriginStdin, lines, buildOptions(opts))}, nil
}

// FileSource is a Java file on disk.
type FileSource struct {
	*code
	path string
}

// NewFile reads the file at path.
func NewFile(path string, opts ...Option) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IngestionError{Origin: path, Err: err}
	}
	return NewFileContent(path, data, opts...), nil
}

// NewFileContent captures content already read from path.
func NewFileContent(path string, data []byte, opts ...Option) *FileSource {
	lines, _ := ReadLines(bytes.NewReader(data))
	return &FileSource{code: newCode(path, lines, buildOptions(opts)), path: path}
}

// Path returns the file path the source was read from.
func (s *FileSource) Path() string {
	return s.path
}

// SnippetSource is literal code given on the command line.
type SnippetSource struct {
	*code
}

// NewSnippet captures text. It cannot fail.
func NewSnippet(text string, opts ...Option) *SnippetSource {
	lines, _ := ReadLines(strings.NewReader(text))
	return &SnippetSource{code: newCode(OriginSnippet, lines, buildOptions(opts))}
}

// Summary is a snapshot of a Source's metadata.
type Summary struct {
	Origin       string                  `json:"origin"`
	Snippet      bool                    `json:"snippet"`
	ClassName    javacode.ClassName      `json:"class_name"`
	Dependencies []dependency.Dependency `json:"dependencies"`
}

// Summarize collects all metadata of src. Directive faults are returned unchanged.
func Summarize(src Source) (*Summary, error) {
	deps, err := src.ExtractDependencies()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Origin:       src.Origin(),
		Snippet:      src.IsSnippet(),
		ClassName:    src.ClassName(),
		Dependencies: deps,
	}, nil
}

// String renders the summary as the human readable block printed by the CLI.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "origin:     %s\n", s.Origin)
	fmt.Fprintf(&b, "snippet:    %t\n", s.Snippet)
	fmt.Fprintf(&b, "class:      %s\n", s.ClassName)
	if len(s.Dependencies) == 0 {
		b.WriteString("deps:       (none)\n")
		return b.String()
	}
	for i, dep := range s.Dependencies {
		label := ""
		if i == 0 {
			label = "deps:"
		}
		fmt.Fprintf(&b, "%-11s %s\n", label, dep)
	}
	return b.String()
}

var (
	_ Source = (*StdinSource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*SnippetSource)(nil)
)
