package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/jgrab/internal/dependency"
	"github.com/mvp-joe/jgrab/internal/javacode"
)

// Test Plan for Source providers:
// - ReadLines strips \n and \r\n, keeps whitespace, handles empty input and a missing final terminator
// - ReadLines surfaces I/O faults with no partial result
// - Stdin full compilation unit: class name, not a snippet, dependencies
// - Stdin snippet: "none found", snippet, no dependencies
// - Code() round-trips the input modulo terminators
// - Malformed directive faults name the line and are stable across calls
// - Repeated queries return identical results and callers cannot mutate internal state
// - File and snippet providers agree with stdin on the same text
// - Missing file is an IngestionError
// - Custom extractor / parser options are honored
// - The logger receives the extracted class name
// - Summarize and its JSON encoding

func TestReadLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single line no terminator", "abc", []string{"abc"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"whitespace kept", "  lead\ttrail  \n", []string{"  lead\ttrail  "}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLines_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 1<<20)
	got, err := ReadLines(strings.NewReader(long + "\nend"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], 1<<20)
}

func TestNewStdin_IngestionFault(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("public class A {}\n"), iotest.ErrReader(boom))

	src, err := NewStdin(r)
	assert.Nil(t, src)
	require.Error(t, err)

	var ingestErr *IngestionError
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, OriginStdin, ingestErr.Origin)
	assert.ErrorIs(t, err, boom)
}

func TestNewStdin_CompilationUnit(t *testing.T) {
	t.Parallel()

	input := "package com.example;\n// DEP com.acme:widget:1.2.0\npublic class Foo {\n}\n"

	src, err := NewStdin(strings.NewReader(input))
	require.NoError(t, err)

	assert.False(t, src.IsSnippet())
	assert.Equal(t, "com.example.Foo", src.ClassName().String())
	assert.Equal(t, OriginStdin, src.Origin())

	deps, err := src.ExtractDependencies()
	require.NoError(t, err)
	assert.Equal(t, []dependency.Dependency{{Group: "com.acme", Artifact: "widget", Version: "1.2.0"}}, deps)
}

func TestNewStdin_Snippet(t *testing.T) {
	t.Parallel()

	src, err := NewStdin(strings.NewReader("System.out.println(\"hi\");\n"))
	require.NoError(t, err)

	assert.True(t, src.IsSnippet())
	assert.Equal(t, javacode.NoneFound, src.ClassName().String())

	deps, err := src.ExtractDependencies()
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestNewStdin_EmptyInput(t *testing.T) {
	t.Parallel()

	src, err := NewStdin(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, src.IsSnippet())
	assert.Equal(t, "", src.Code())
}

func TestCode_RoundTrip(t *testing.T) {
	t.Parallel()

	original := "package p;\r\n\r\n  public class X {\t\n}"
	src, err := NewStdin(strings.NewReader(original))
	require.NoError(t, err)

	assert.Equal(t, strings.ReplaceAll(original, "\r\n", "\n"), src.Code())
}

func TestExtractDependencies_MalformedDirective(t *testing.T) {
	t.Parallel()

	src := NewSnippet("int x = 1;\n// DEP com.acme:widget\n")
	assert.True(t, src.IsSnippet())

	for range 2 {
		deps, err := src.ExtractDependencies()
		assert.Nil(t, deps)

		var dirErr *dependency.DirectiveError
		require.True(t, errors.As(err, &dirErr))
		assert.Equal(t, 2, dirErr.Line)
		assert.Equal(t, "// DEP com.acme:widget", dirErr.Content)
	}
}

func TestQueries_AreIdempotent(t *testing.T) {
	t.Parallel()

	src := NewSnippet("package q;\n// DEP a:b:1 c:d:2\npublic interface I {}\n")

	first, err := src.ExtractDependencies()
	require.NoError(t, err)

	// Mutating a returned slice must not leak into later calls.
	first[0].Version = "mutated"

	second, err := src.ExtractDependencies()
	require.NoError(t, err)
	assert.Equal(t, "1", second[0].Version)
	assert.Len(t, second, 2)

	assert.Equal(t, src.ClassName(), src.ClassName())
	assert.Equal(t, src.Code(), src.Code())
}

func TestProviders_AgreeOnSameText(t *testing.T) {
	t.Parallel()

	text := "package com.example;\n// #jgrab org.slf4j:slf4j-api:2.0.9\npublic class Foo {}\n"

	path := filepath.Join(t.TempDir(), "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	stdinSrc, err := NewStdin(strings.NewReader(text))
	require.NoError(t, err)
	fileSrc, err := NewFile(path)
	require.NoError(t, err)
	snippetSrc := NewSnippet(text)

	want, err := Summarize(stdinSrc)
	require.NoError(t, err)

	for _, src := range []Source{fileSrc, snippetSrc} {
		got, err := Summarize(src)
		require.NoError(t, err)
		assert.Equal(t, want.Snippet, got.Snippet)
		assert.Equal(t, want.ClassName, got.ClassName)
		assert.Equal(t, want.Dependencies, got.Dependencies)
		assert.Equal(t, stdinSrc.Code(), src.Code())
	}

	assert.Equal(t, path, fileSrc.Path())
	assert.Equal(t, path, fileSrc.Origin())
	assert.Equal(t, OriginSnippet, snippetSrc.Origin())
}

func TestNewFile_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Missing.java")
	_, err := NewFile(path)

	var ingestErr *IngestionError
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, path, ingestErr.Origin)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_CustomHelpers(t *testing.T) {
	t.Parallel()

	parser, err := dependency.NewParser(`^\s*//\s*@Grab\s+(.*)$`)
	require.NoError(t, err)

	text := "/*\npublic class Decoy {}\n*/\npublic class Real {}\n// @Grab x:y:1\n"
	src := NewSnippet(text,
		WithExtractor(javacode.NewSyntaxExtractor()),
		WithDirectiveParser(parser),
	)

	assert.Equal(t, "Real", src.ClassName().String())
	deps, err := src.ExtractDependencies()
	require.NoError(t, err)
	assert.Equal(t, []dependency.Dependency{{Group: "x", Artifact: "y", Version: "1"}}, deps)
}

func TestWithLogger_LogsClassName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Debug,
		Output: &buf,
	})

	NewSnippet("package a;\npublic class B {}", WithLogger(logger))
	assert.Contains(t, buf.String(), "extracted class name")
	assert.Contains(t, buf.String(), "a.B")
}

func TestSummarize_JSON(t *testing.T) {
	t.Parallel()

	summary, err := Summarize(NewSnippet("System.exit(0);"))
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"snippet","snippet":true,"class_name":"","dependencies":[]}`, string(data))

	summary, err = Summarize(NewSnippet("package a;\n// DEP g:a:1:jdk8\npublic class B {}"))
	require.NoError(t, err)
	data, err = json.Marshal(summary)
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"snippet","snippet":false,"class_name":"a.B",
		"dependencies":[{"group":"g","artifact":"a","version":"1","classifier":"jdk8"}]}`, string(data))
}

func TestSummary_String(t *testing.T) {
	t.Parallel()

	summary, err := Summarize(NewSnippet("// DEP a:b:1\n// DEP c:d:2\n"))
	require.NoError(t, err)

	out := summary.String()
	assert.Contains(t, out, "snippet:    true")
	assert.Contains(t, out, "class:      none found")
	assert.Contains(t, out, "deps:       a:b:1\n")
	assert.Contains(t, out, "            c:d:2\n")
}
