// Package testutil provides helper functions for testing rbscan components
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rbscan/internal/parser"
)

// CreateTestAST creates a definition tree from Ruby source code
func CreateTestAST(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// FindMethodInAST finds a method node by qualified name, e.g. "Foo#bar"
func FindMethodInAST(ast *parser.Node, qualifiedName string) *parser.Node {
	var found *parser.Node
	ast.Walk(func(n *parser.Node) bool {
		if n.IsMethod() && n.QualifiedName() == qualifiedName {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountMethodsInAST counts the number of method definitions in a tree
func CountMethodsInAST(ast *parser.Node) int {
	count := 0
	ast.Walk(func(n *parser.Node) bool {
		if n.IsMethod() {
			count++
		}
		return true
	})
	return count
}

// WriteFile writes content to dir/rel, creating parent directories, and
// returns the full path
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// RubyProject lays out a small Ruby project under a temp dir and returns
// its root. Files are keyed by path relative to the root.
func RubyProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}
