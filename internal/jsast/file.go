package jsast

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSyntax is returned by Parse when the source does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// File is one parsed source unit. Original text is kept verbatim; mutations are
// recorded against it and applied by Bytes.
type File struct {
	Path    string
	Dialect Dialect

	src     []byte
	tree    *sitter.Tree
	program *Block
	blocks  map[uint32]*Block
	imports map[uint32]*Import
	added   map[*ImportDecl]*Import
}

// Parse parses content with the grammar for dialect
func Parse(ctx context.Context, path string, content []byte, dialect Dialect) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(dialect.language())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		tree.Close()
		return nil, fmt.Errorf("%s:%d: %w", path, line, ErrSyntax)
	}

	f := &File{
		Path:    path,
		Dialect: dialect,
		src:     content,
		tree:    tree,
		blocks:  make(map[uint32]*Block),
		imports: make(map[uint32]*Import),
		added:   make(map[*ImportDecl]*Import),
	}
	f.program = newBlock(f, root, true)
	return f, nil
}

// Close releases the underlying syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Program returns the top-level statement list.
func (f *File) Program() *Block { return f.program }

// Source returns the original, unmodified content.
func (f *File) Source() []byte { return f.src }

// Imports returns every import statement in the program, original and synthesized,
// in statement order.
func (f *File) Imports() []*Import {
	var out []*Import
	for _, st := range f.program.items {
		if st.Kind() != KindImport {
			continue
		}
		out = append(out, f.importFor(st))
	}
	return out
}

// Modified reports whether any statement or specifier has been added.
func (f *File) Modified() bool {
	for _, b := range f.allBlocks() {
		for _, st := range b.items {
			if st.node == nil {
				return true
			}
		}
	}
	for _, im := range f.imports {
		if len(im.added) > 0 {
			return true
		}
	}
	return false
}

func (f *File) importFor(st *Statement) *Import {
	if st.node == nil {
		decl := st.synth.(*ImportDecl)
		if im, ok := f.added[decl]; ok {
			return im
		}
		im := &Import{file: f, stmt: st, decl: decl}
		f.added[decl] = im
		return im
	}
	key := st.node.StartByte()
	if im, ok := f.imports[key]; ok {
		return im
	}
	im := &Import{file: f, stmt: st, node: st.node}
	f.imports[key] = im
	return im
}

func (f *File) block(node *sitter.Node) *Block {
	key := node.StartByte()
	if b, ok := f.blocks[key]; ok {
		return b
	}
	b := newBlock(f, node, false)
	f.blocks[key] = b
	return b
}

func (f *File) allBlocks() []*Block {
	out := make([]*Block, 0, len(f.blocks)+1)
	out = append(out, f.program)
	for _, b := range f.blocks {
		out = append(out, b)
	}
	return out
}

func (f *File) text(n *sitter.Node) string {
	return string(f.src[n.StartByte():n.EndByte()])
}

func firstErrorLine(n *sitter.Node) uint32 {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n.StartPoint().Row + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.HasError() {
			return firstErrorLine(child)
		}
	}
	return n.StartPoint().Row + 1
}
