package xlwt

// ParseNode is one node of a parsed formula expression tree: a single
// token plus its ordered, exclusively-owned children. The tree shape is
// fixed once built; only each token's Class field is mutated later, by the
// operand-class transformer.
type ParseNode struct {
	token    *Ptg
	children []*ParseNode
}

// NewNode creates a tree node owning the given token and children.
func NewNode(token *Ptg, children ...*ParseNode) *ParseNode {
	return &ParseNode{token: token, children: children}
}

// Token returns the node's token.
func (n *ParseNode) Token() *Ptg {
	return n.token
}

// Children returns the node's child nodes. The slice is owned by the node;
// callers must not modify it.
func (n *ParseNode) Children() []*ParseNode {
	return n.children
}

// TokenCount returns the number of tokens in the subtree.
func (n *ParseNode) TokenCount() int {
	count := 1
	for _, child := range n.children {
		count += child.TokenCount()
	}
	return count
}
