package jsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the syntactic category of a statement.
type Kind int

const (
	KindOther Kind = iota
	KindFunctionDeclaration
	KindVariableDeclaration
	KindExportDefault
	KindImport
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindFunctionDeclaration:
		return "function declaration"
	case KindVariableDeclaration:
		return "variable declaration"
	case KindExportDefault:
		return "export default"
	case KindImport:
		return "import"
	case KindExpression:
		return "expression"
	default:
		return "other"
	}
}

// Block is an ordered statement list: the program body or a braced function body.
// Directives and a hashbang line are not part of the list.
type Block struct {
	file    *File
	node    *sitter.Node
	items   []*Statement
	start   uint32
	program bool
}

func newBlock(f *File, node *sitter.Node, program bool) *Block {
	b := &Block{file: f, node: node, program: program}
	if !program {
		b.start = node.StartByte() + 1
	}

	directives := true
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "hash_bang_line":
			b.start = child.EndByte()
			continue
		}
		if directives && isDirective(child) {
			b.start = child.EndByte()
			continue
		}
		directives = false
		b.items = append(b.items, &Statement{file: f, node: child})
	}
	return b
}

func isDirective(n *sitter.Node) bool {
	return n.Type() == "expression_statement" &&
		n.NamedChildCount() == 1 &&
		n.NamedChild(0).Type() == "string"
}

// Statements returns the current statement list, including inserted statements.
func (b *Block) Statements() []*Statement {
	out := make([]*Statement, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of statements.
func (b *Block) Len() int { return len(b.items) }

// Insert splices s into the list at index, clamped to the list bounds.
func (b *Block) Insert(index int, s Stmt) *Statement {
	if index < 0 {
		index = 0
	}
	if index > len(b.items) {
		index = len(b.items)
	}
	st := &Statement{file: b.file, synth: s}
	b.items = append(b.items, nil)
	copy(b.items[index+1:], b.items[index:])
	b.items[index] = st
	return st
}

// Prepend inserts s as the first statement.
func (b *Block) Prepend(s Stmt) *Statement { return b.Insert(0, s) }

// InsertAfter inserts s directly after target, or at the end when target is not in the list.
func (b *Block) InsertAfter(target *Statement, s Stmt) *Statement {
	for i, st := range b.items {
		if st == target {
			return b.Insert(i+1, s)
		}
	}
	return b.Insert(len(b.items), s)
}

// Statement is either an original node or a synthesized one.
type Statement struct {
	file  *File
	node  *sitter.Node
	synth Stmt
}

// Synthesized reports whether the statement was inserted rather than parsed.
func (st *Statement) Synthesized() bool { return st.node == nil }

// Line returns the 1-based source line, or 0 for synthesized statements.
func (st *Statement) Line() int {
	if st.node == nil {
		return 0
	}
	return int(st.node.StartPoint().Row) + 1
}

func (st *Statement) Kind() Kind {
	if st.node == nil {
		switch st.synth.(type) {
		case *ImportDecl:
			return KindImport
		case *ExprStmt:
			return KindExpression
		}
		return KindOther
	}
	switch st.node.Type() {
	case "function_declaration", "generator_function_declaration":
		return KindFunctionDeclaration
	case "lexical_declaration", "variable_declaration":
		return KindVariableDeclaration
	case "export_statement":
		if isDefaultExport(st.node) {
			return KindExportDefault
		}
	case "import_statement":
		return KindImport
	case "expression_statement":
		return KindExpression
	}
	return KindOther
}

// LeadingComments returns the comments directly preceding the statement.
func (st *Statement) LeadingComments() []Comment {
	if st.node == nil {
		return nil
	}
	return st.file.leadingComments(st.node)
}

// Function returns the declared function of a function declaration.
func (st *Statement) Function() (*Function, bool) {
	if st.Kind() != KindFunctionDeclaration {
		return nil, false
	}
	return &Function{file: st.file, node: st.node, stmt: st}, true
}

// Declarators returns the declarators of a variable declaration.
func (st *Statement) Declarators() []Declarator {
	if st.Kind() != KindVariableDeclaration {
		return nil
	}
	var out []Declarator
	for i := 0; i < int(st.node.NamedChildCount()); i++ {
		child := st.node.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		d := Declarator{Line: int(child.StartPoint().Row) + 1}
		if name := child.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			d.Name = st.file.text(name)
		}
		if value := child.ChildByFieldName("value"); value != nil && isFunctionExpression(value) {
			d.Init = &Function{file: st.file, node: value, binding: d.Name, stmt: st}
		}
		out = append(out, d)
	}
	return out
}

// Exported returns the function of an `export default` statement when the
// exported value is a function declaration, function expression or arrow function.
func (st *Statement) Exported() (*Function, bool) {
	if st.Kind() != KindExportDefault {
		return nil, false
	}
	for _, field := range []string{"declaration", "value"} {
		n := st.node.ChildByFieldName(field)
		if n == nil {
			continue
		}
		if isFunctionDeclaration(n) || isFunctionExpression(n) {
			return &Function{file: st.file, node: n, stmt: st}, true
		}
	}
	return nil, false
}

// CalleeName returns the callee of an expression statement whose expression is
// a call on a plain identifier, e.g. `useFoo()`.
func (st *Statement) CalleeName() (string, bool) {
	if st.node == nil {
		es, ok := st.synth.(*ExprStmt)
		if !ok {
			return "", false
		}
		call, ok := es.X.(*Call)
		if !ok {
			return "", false
		}
		id, ok := call.Callee.(Ident)
		return string(id), ok
	}
	if st.node.Type() != "expression_statement" || st.node.NamedChildCount() == 0 {
		return "", false
	}
	expr := st.node.NamedChild(0)
	if expr.Type() != "call_expression" {
		return "", false
	}
	callee := expr.ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" {
		return "", false
	}
	return st.file.text(callee), true
}

// end is the byte offset after the statement and any comment trailing it on the same line.
func (st *Statement) end() uint32 {
	end := st.node.EndByte()
	next := st.node.NextSibling()
	if next != nil && next.Type() == "comment" && next.StartPoint().Row == st.node.EndPoint().Row {
		end = next.EndByte()
	}
	return end
}

// Declarator is one `name = value` binding of a variable declaration.
type Declarator struct {
	Name string
	Line int
	// Init is set when the initializer is a function or arrow expression.
	Init *Function
}

// Function is a function declaration, function expression or arrow function.
type Function struct {
	file    *File
	node    *sitter.Node
	binding string
	stmt    *Statement
}

// Name is the function's own identifier, falling back to the variable it is bound to.
func (fn *Function) Name() string {
	if id := fn.node.ChildByFieldName("name"); id != nil {
		return fn.file.text(id)
	}
	return fn.binding
}

func (fn *Function) Line() int { return int(fn.node.StartPoint().Row) + 1 }

// Body returns the braced body. Concise arrow bodies report false.
func (fn *Function) Body() (*Block, bool) {
	body := fn.node.ChildByFieldName("body")
	if body == nil || body.Type() != "statement_block" {
		return nil, false
	}
	return fn.file.block(body), true
}

// LeadingComments returns the comments attached to the function node followed by
// those attached to its enclosing top-level statement.
func (fn *Function) LeadingComments() []Comment {
	comments := fn.file.leadingComments(fn.node)
	if fn.stmt != nil && fn.stmt.node != nil && !sameNode(fn.stmt.node, fn.node) {
		comments = append(comments, fn.file.leadingComments(fn.stmt.node)...)
	}
	return comments
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func isDefaultExport(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

func isFunctionDeclaration(n *sitter.Node) bool {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		return true
	}
	return false
}

func isFunctionExpression(n *sitter.Node) bool {
	switch n.Type() {
	case "function", "function_expression", "generator_function", "arrow_function":
		return true
	}
	return false
}

// Comment is a comment's value without its delimiters.
type Comment struct {
	Text string
	Line int
}

func (f *File) leadingComments(n *sitter.Node) []Comment {
	var rev []Comment
	for prev := n.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		rev = append(rev, Comment{Text: commentValue(f.text(prev)), Line: int(prev.StartPoint().Row) + 1})
	}
	out := make([]Comment, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}

func commentValue(raw string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return raw[2:]
	case strings.HasPrefix(raw, "/*"):
		return strings.TrimSuffix(raw[2:], "*/")
	}
	return raw
}
