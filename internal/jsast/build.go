package jsast

// Stmt is a synthesized statement that can be spliced into a Block.
type Stmt interface {
	printStmt(p *printer)
}

// Expr is a synthesized expression.
type Expr interface {
	printExpr(p *printer)
}

// Ident is an identifier reference.
type Ident string

// Member is `Object.Property`.
type Member struct {
	Object   Expr
	Property string
}

// Call is `Callee(Args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Property is one object literal entry. Shorthand properties print as `key`.
type Property struct {
	Key       string
	Value     Expr
	Shorthand bool
}

// Object is an object literal.
type Object struct {
	Props []Property
}

// Array is an array literal.
type Array struct {
	Elems []Expr
}

// Arrow is an arrow function with a block body.
type Arrow struct {
	Params []string
	Body   *BlockStmt
}

// BlockStmt is a braced statement list.
type BlockStmt struct {
	List []Stmt
}

// ExprStmt is an expression statement.
type ExprStmt struct {
	X Expr
}

// ImportDecl is `import { Specifiers... } from "Source";`.
type ImportDecl struct {
	Specifiers []string
	Source     string
}

// ShorthandObject builds `{ a, b }` where each name refers to a same-named binding.
func ShorthandObject(names ...string) *Object {
	props := make([]Property, len(names))
	for i, name := range names {
		props[i] = Property{Key: name, Value: Ident(name), Shorthand: true}
	}
	return &Object{Props: props}
}

// Idents builds one identifier reference per name.
func Idents(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, name := range names {
		out[i] = Ident(name)
	}
	return out
}
