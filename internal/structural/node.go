// Package structural correlates V8 function coverage with a syntax tree to produce
// statement, function and conditional-branch coverage at node granularity.
//
// The package does not parse anything itself. Any parser can be plugged in by exposing its
// tree through the Node interface with offsets in UTF-16 code units.
package structural

// NodeKind classifies syntax nodes by the coverage they can carry.
type NodeKind int

const (
	Other NodeKind = iota
	Program
	Function
	Block
	Declaration
	Statement
	Conditional
)

var kindNames = [...]string{"other", "program", "function", "block", "declaration", "statement", "conditional"}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is a syntax tree node spanning [Start, End). For Conditional nodes the last two
// children are the consequent and the alternate. Implementations must be comparable, usually
// pointers, since matched nodes are used as map keys.
type Node interface {
	Kind() NodeKind
	Start() int
	End() int
	Children() []Node
}

// Walk visits node and its descendants depth-first in source order. When visit returns false
// the children of that node are skipped.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range node.Children() {
		Walk(child, visit)
	}
}
