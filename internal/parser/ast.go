package parser

import (
	"fmt"
	"strings"
)

// NodeType represents the type of a Ruby definition node
type NodeType string

// Ruby definition node types
const (
	NodeProgram         NodeType = "Program"
	NodeModule          NodeType = "ModuleDefinition"
	NodeClass           NodeType = "ClassDefinition"
	NodeSingletonClass  NodeType = "SingletonClass" // class << self
	NodeMethod          NodeType = "MethodDefinition"
	NodeSingletonMethod NodeType = "SingletonMethodDefinition" // def self.foo
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node is a namespace or method definition. Everything else in the
// source is skipped, so the tree only holds what line lookups need.
type Node struct {
	Type     NodeType
	Name     string // constant path for namespaces, method name for methods
	Children []*Node
	Location Location
	Parent   *Node
}

// NewNode creates a new node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type:     nodeType,
		Children: []*Node{},
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the tree depth-first and calls the visitor function for each node
// If the visitor returns false, traversal of that branch is stopped
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name == "" {
		return fmt.Sprintf("%s at %s", n.Type, n.Location)
	}
	return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
}

// IsMethod reports whether n defines a method
func (n *Node) IsMethod() bool {
	return n.Type == NodeMethod || n.Type == NodeSingletonMethod
}

// IsNamespace reports whether n opens a class or module body
func (n *Node) IsNamespace() bool {
	return n.Type == NodeClass || n.Type == NodeModule
}

// Namespace returns the fully qualified class or module enclosing n,
// joined with "::". Top level definitions return "".
func (n *Node) Namespace() string {
	var parts []string
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsNamespace() {
			parts = append(parts, p.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "::")
}

// QualifiedName returns the name of n inside its namespace: "A::B" for a
// nested class, "A::B#m" for an instance method and "A::B#self.m" for a
// singleton method.
func (n *Node) QualifiedName() string {
	ns := n.Namespace()
	switch {
	case n.IsNamespace():
		if ns == "" {
			return n.Name
		}
		return ns + "::" + n.Name
	case n.IsMethod():
		name := n.Name
		if n.IsSingleton() {
			name = "self." + name
		}
		if ns == "" {
			return name
		}
		return ns + "#" + name
	default:
		return n.Name
	}
}

// IsSingleton reports whether a method is defined on the class itself,
// either as def self.m or inside class << self
func (n *Node) IsSingleton() bool {
	if n.Type == NodeSingletonMethod {
		return true
	}
	for p := n.Parent; p != nil && !p.IsNamespace(); p = p.Parent {
		if p.Type == NodeSingletonClass {
			return true
		}
	}
	return false
}
