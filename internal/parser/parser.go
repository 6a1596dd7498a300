package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// Parser wraps the tree-sitter parser for Ruby
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new Ruby parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := ruby.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses a Ruby file into its definition tree
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	return p.ParseFileCtx(context.Background(), filename, source)
}

// ParseFileCtx parses a Ruby file, stopping early if ctx is cancelled.
// A tree with syntax errors yields an *UnparseableSourceError.
func (p *Parser) ParseFileCtx(ctx context.Context, filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}
	if rootNode.HasError() {
		return nil, &UnparseableSourceError{File: filename, Line: firstErrorLine(rootNode)}
	}

	builder := NewASTBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Parse parses Ruby source code
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses Ruby source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// templateExtensions are rendered views, not Ruby sources
var templateExtensions = map[string]bool{
	".erb":  true,
	".html": true,
	".haml": true,
}

// Resolvable reports whether path may be handed to the line resolver.
// Template files are never parsed.
func Resolvable(path string) bool {
	return !templateExtensions[strings.ToLower(filepath.Ext(path))]
}

func firstErrorLine(root *sitter.Node) int {
	var line int
	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		if n.IsError() || n.IsMissing() {
			line = int(n.StartPoint().Row) + 1
			return true
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child != nil && child.HasError() && walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return line
}
