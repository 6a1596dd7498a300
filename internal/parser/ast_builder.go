package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds the definition tree from a tree-sitter Ruby CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the definition tree rooted at a program node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	root := b.newNode(NodeProgram, tsNode)
	b.visitChildren(root, tsNode)
	return root
}

func (b *ASTBuilder) newNode(nodeType NodeType, tsNode *sitter.Node) *Node {
	node := NewNode(nodeType)
	node.Location = Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
	return node
}

func (b *ASTBuilder) visitChildren(parent *Node, tsNode *sitter.Node) {
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		b.visit(parent, tsNode.NamedChild(i))
	}
}

// visit attaches definitions found under tsNode to parent. Nodes that
// define nothing are descended into so definitions nested in blocks or
// conditionals are still found.
func (b *ASTBuilder) visit(parent *Node, tsNode *sitter.Node) {
	if tsNode == nil {
		return
	}

	switch tsNode.Type() {
	case "class":
		b.buildNamespace(parent, NodeClass, tsNode)
	case "module":
		b.buildNamespace(parent, NodeModule, tsNode)
	case "singleton_class":
		node := b.newNode(NodeSingletonClass, tsNode)
		parent.AddChild(node)
		b.visitChildren(node, tsNode)
	case "method":
		node := b.newNode(NodeMethod, tsNode)
		node.Name = b.fieldText(tsNode, "name")
		parent.AddChild(node)
		b.visitChildren(node, tsNode)
	case "singleton_method":
		node := b.newNode(NodeSingletonMethod, tsNode)
		node.Name = b.fieldText(tsNode, "name")
		parent.AddChild(node)
		b.visitChildren(node, tsNode)
	default:
		b.visitChildren(parent, tsNode)
	}
}

func (b *ASTBuilder) buildNamespace(parent *Node, nodeType NodeType, tsNode *sitter.Node) {
	node := b.newNode(nodeType, tsNode)
	node.Name = b.fieldText(tsNode, "name")
	parent.AddChild(node)
	b.visitChildren(node, tsNode)
}

func (b *ASTBuilder) fieldText(tsNode *sitter.Node, field string) string {
	child := tsNode.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(b.source)
}
