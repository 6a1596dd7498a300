package parser

import (
	"context"
	"strings"
)

// LineNumbers maps method names in one file to the line their definition
// starts on
type LineNumbers struct {
	file    string
	byName  map[string]int // qualified names: A::B#m, A::B#self.m
	byShort map[string]int // unqualified method name, first definition wins
	methods []*Node
}

// NewLineNumbers parses source and indexes its method definitions. A file
// whose methods cannot be identified yields an *UnparseableSourceError.
func NewLineNumbers(source []byte, path string) (*LineNumbers, error) {
	return NewLineNumbersCtx(context.Background(), source, path)
}

// NewLineNumbersCtx is NewLineNumbers with cancellation
func NewLineNumbersCtx(ctx context.Context, source []byte, path string) (*LineNumbers, error) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseFileCtx(ctx, path, source)
	if err != nil {
		return nil, err
	}
	return indexMethods(path, root), nil
}

func indexMethods(path string, root *Node) *LineNumbers {
	ln := &LineNumbers{
		file:    path,
		byName:  make(map[string]int),
		byShort: make(map[string]int),
	}
	root.Walk(func(n *Node) bool {
		if !n.IsMethod() {
			return true
		}
		ln.methods = append(ln.methods, n)
		line := n.Location.StartLine
		if _, ok := ln.byName[n.QualifiedName()]; !ok {
			ln.byName[n.QualifiedName()] = line
		}
		if _, ok := ln.byShort[n.Name]; !ok {
			ln.byShort[n.Name] = line
		}
		return true
	})
	return ln
}

// File returns the path the index was built for
func (ln *LineNumbers) File() string {
	return ln.file
}

// Len returns the number of method definitions found
func (ln *LineNumbers) Len() int {
	return len(ln.methods)
}

// StartLineFor returns the 1-based line on which method begins. method is
// an analyzer token such as "A::B#m", "A#self.m", "A::m", "A.m" or "m".
// When the class part does not match, the bare method name is tried.
func (ln *LineNumbers) StartLineFor(method string) (int, bool) {
	method = strings.TrimSpace(method)
	if method == "" {
		return 0, false
	}
	for _, key := range lookupKeys(method) {
		if line, ok := ln.byName[key]; ok {
			return line, true
		}
	}
	if line, ok := ln.byShort[shortName(method)]; ok {
		return line, true
	}
	return 0, false
}

// lookupKeys normalizes the class-method spellings used by different
// analyzers to A#self.m
func lookupKeys(method string) []string {
	keys := []string{method}
	if i := strings.LastIndex(method, "#"); i < 0 {
		if j := strings.LastIndex(method, "::"); j > 0 {
			keys = append(keys, method[:j]+"#self."+method[j+2:])
		} else if j := strings.Index(method, "."); j > 0 {
			keys = append(keys, method[:j]+"#self."+method[j+1:])
		}
	}
	return keys
}

func shortName(method string) string {
	if i := strings.LastIndex(method, "#"); i >= 0 {
		method = method[i+1:]
	}
	if i := strings.LastIndex(method, "::"); i >= 0 {
		method = method[i+2:]
	}
	if i := strings.LastIndex(method, "."); i >= 0 {
		method = method[i+1:]
	}
	return method
}
