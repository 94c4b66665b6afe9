package javacode

import "regexp"

var (
	packageRe = regexp.MustCompile(`^\s*package\s+([A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*)*)\s*;`)

	// Only public types are visible outside the compilation unit.
	typeRe = regexp.MustCompile(`^\s*public\s+(?:(?:abstract|final|static|sealed|non-sealed|strictfp)\s+)*(?:class|interface|enum|record|@\s*interface)\s+([A-Za-z_$][\w$]*)`)

	spaceRe = regexp.MustCompile(`\s+`)
)

// LexicalExtractor matches declarations line by line without parsing.
// Declarations split across lines, or hidden inside block comments and text
// blocks, can be missed or misreported.
type LexicalExtractor struct{}

// ExtractClassName implements Extractor.
func (LexicalExtractor) ExtractClassName(lines []string) ClassName {
	var pkg string
	for _, line := range lines {
		if m := packageRe.FindStringSubmatch(line); m != nil {
			pkg = spaceRe.ReplaceAllString(m[1], "")
			continue
		}
		if m := typeRe.FindStringSubmatch(line); m != nil {
			return ClassName{Package: pkg, Simple: m[1]}
		}
	}
	return ClassName{}
}

