package javacode

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var typeDeclarationKinds = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// SyntaxExtractor uses the tree-sitter Java grammar so that declarations inside
// comments and string literals are not mistaken for the real one. Only the
// package declaration and the direct children of the compilation unit are read.
type SyntaxExtractor struct {
	language *sitter.Language
	fallback Extractor
}

// NewSyntaxExtractor creates a SyntaxExtractor. Input tree-sitter cannot parse
// at all is handed to LexicalExtractor.
func NewSyntaxExtractor() *SyntaxExtractor {
	return &SyntaxExtractor{
		language: sitter.NewLanguage(java.Language()),
		fallback: LexicalExtractor{},
	}
}

// ExtractClassName implements Extractor.
func (e *SyntaxExtractor) ExtractClassName(lines []string) ClassName {
	source := []byte(strings.Join(lines, "\n"))

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return e.fallback.ExtractClassName(lines)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return e.fallback.ExtractClassName(lines)
	}
	defer tree.Close()

	root := tree.RootNode()

	var pkg string
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}

		switch kind := child.Kind(); {
		case kind == "package_declaration":
			pkg = packageName(child, source)
		case typeDeclarationKinds[kind]:
			if !isPublic(child) {
				continue
			}
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			return ClassName{Package: pkg, Simple: nodeText(nameNode, source)}
		}
	}

	return ClassName{}
}

// packageName extracts the dotted name from a package_declaration.
func packageName(node *sitter.Node, source []byte) string {
	nameNode := findChildByKind(node, "scoped_identifier")
	if nameNode == nil {
		nameNode = findChildByKind(node, "identifier")
	}
	if nameNode == nil {
		return ""
	}
	return spaceRe.ReplaceAllString(nodeText(nameNode, source), "")
}

// isPublic reports whether a declaration carries the public modifier.
func isPublic(decl *sitter.Node) bool {
	mods := findChildByKind(decl, "modifiers")
	if mods == nil {
		return false
	}
	return findChildByKind(mods, "public") != nil
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
