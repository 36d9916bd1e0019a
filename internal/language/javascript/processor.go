// Package javascript parses JavaScript sources with tree-sitter and exposes the result as a
// structural.Node tree.
package javascript

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjavascript "github.com/smacker/go-tree-sitter/javascript"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/language"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/source"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/structural"
)

// ErrSyntax is returned when the source does not parse cleanly. A tree with error nodes has
// spans V8 never produced, so function matching would fail anyway.
var ErrSyntax = errors.New("javascript syntax error")

var extensions = []string{".js", ".mjs", ".cjs", ".jsx"}

// tree-sitter-javascript node types by coverage kind.
var nodeKinds = map[string]structural.NodeKind{
	"program": structural.Program,

	"function_declaration":           structural.Function,
	"function":                       structural.Function,
	"function_expression":            structural.Function,
	"generator_function":             structural.Function,
	"generator_function_declaration": structural.Function,
	"arrow_function":                 structural.Function,
	"method_definition":              structural.Function,

	"statement_block": structural.Block,
	"class_body":      structural.Block,

	"class_declaration":    structural.Declaration,
	"lexical_declaration":  structural.Declaration,
	"variable_declaration": structural.Declaration,
	"import_statement":     structural.Declaration,
	"export_statement":     structural.Declaration,

	"expression_statement": structural.Statement,
	"return_statement":     structural.Statement,
	"if_statement":         structural.Statement,
	"for_statement":        structural.Statement,
	"for_in_statement":     structural.Statement,
	"while_statement":      structural.Statement,
	"do_statement":         structural.Statement,
	"try_statement":        structural.Statement,
	"throw_statement":      structural.Statement,
	"break_statement":      structural.Statement,
	"continue_statement":   structural.Statement,
	"switch_statement":     structural.Statement,
	"labeled_statement":    structural.Statement,
	"debugger_statement":   structural.Statement,

	"ternary_expression": structural.Conditional,
}

// Processor implements the language.Processor interface for JavaScript.
type Processor struct{}

func init() {
	language.RegisterProcessor(NewProcessor())
}

// NewProcessor creates a new, stateless JavaScript processor.
func NewProcessor() language.Processor {
	return &Processor{}
}

// Name returns the unique, human-readable name of the processor.
func (p *Processor) Name() string {
	return "JavaScript"
}

// Detect checks if the file path has a JavaScript extension.
func (p *Processor) Detect(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse builds the syntax tree of source. Each call uses its own tree-sitter parser, so
// Parse is safe for concurrent use.
func (p *Processor) Parse(ctx context.Context, text string) (structural.Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsjavascript.GetLanguage())

	content := []byte(text)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w near %s", ErrSyntax, firstError(root))
	}

	units := source.NewUnitOffsets(text)
	program := convert(root, units)
	// Leading and trailing trivia are not part of tree-sitter's program node, while V8 reports
	// the top-level function over the whole text.
	program.start, program.end = 0, source.UnitLen(text)
	return program, nil
}

// Node is a converted tree-sitter node. It owns its data, so it stays valid after the
// tree-sitter tree is closed.
type Node struct {
	kind       structural.NodeKind
	typ        string
	start, end int
	children   []structural.Node
}

func (n *Node) Kind() structural.NodeKind   { return n.kind }
func (n *Node) Start() int                  { return n.start }
func (n *Node) End() int                    { return n.end }
func (n *Node) Children() []structural.Node { return n.children }

// Type returns the tree-sitter node type.
func (n *Node) Type() string { return n.typ }

func convert(tsNode *sitter.Node, units *source.UnitOffsets) *Node {
	n := &Node{
		kind:  classify(tsNode),
		typ:   tsNode.Type(),
		start: units.ByteToUnit(int(tsNode.StartByte())),
		end:   units.ByteToUnit(int(tsNode.EndByte())),
	}
	if n.typ == "method_definition" {
		n.start = units.ByteToUnit(int(methodStart(tsNode)))
	}

	if n.kind == structural.Conditional {
		// Only the three operands, so the last two children are the two arms.
		for _, field := range []string{"condition", "consequence", "alternative"} {
			if child := tsNode.ChildByFieldName(field); child != nil {
				n.children = append(n.children, convert(child, units))
			}
		}
		if len(n.children) < 3 {
			n.kind = structural.Other
		}
		return n
	}

	count := int(tsNode.NamedChildCount())
	for i := 0; i < count; i++ {
		child := tsNode.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		n.children = append(n.children, convert(child, units))
	}
	return n
}

// methodStart returns where V8 starts a method: leading decorators and the static keyword are
// not part of the function, while async, get, set and * are.
func methodStart(tsNode *sitter.Node) uint32 {
	count := int(tsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := tsNode.Child(i)
		if child == nil {
			break
		}
		if typ := child.Type(); typ != "decorator" && typ != "static" && typ != "comment" {
			return child.StartByte()
		}
	}
	return tsNode.StartByte()
}

func classify(tsNode *sitter.Node) structural.NodeKind {
	typ := tsNode.Type()
	if typ == "variable_declarator" {
		// `let x = f()` executes its initializer; `let x;` executes nothing.
		if tsNode.ChildByFieldName("value") != nil {
			return structural.Statement
		}
		return structural.Other
	}
	if kind, ok := nodeKinds[typ]; ok {
		return kind
	}
	return structural.Other
}

// firstError describes the first error or missing node in depth-first order.
func firstError(tsNode *sitter.Node) string {
	if tsNode.Type() == "ERROR" || tsNode.IsMissing() {
		p := tsNode.StartPoint()
		return fmt.Sprintf("line %d column %d", p.Row+1, p.Column)
	}
	count := int(tsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := tsNode.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			return firstError(child)
		}
	}
	p := tsNode.StartPoint()
	return fmt.Sprintf("line %d column %d", p.Row+1, p.Column)
}
