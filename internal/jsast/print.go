package jsast

import (
	"bytes"
	"sort"
	"strings"
)

const defaultIndentUnit = "  "

type printer struct {
	b      strings.Builder
	indent string
	unit   string
}

// Print renders a synthesized statement. Continuation lines are prefixed with indent.
func Print(s Stmt, indent string) string {
	p := &printer{indent: indent, unit: defaultIndentUnit}
	if strings.Contains(indent, "\t") {
		p.unit = "\t"
	}
	s.printStmt(p)
	return p.b.String()
}

func (id Ident) printExpr(p *printer) { p.b.WriteString(string(id)) }

func (m *Member) printExpr(p *printer) {
	m.Object.printExpr(p)
	p.b.WriteString(".")
	p.b.WriteString(m.Property)
}

func (c *Call) printExpr(p *printer) {
	c.Callee.printExpr(p)
	p.b.WriteString("(")
	for i, arg := range c.Args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		arg.printExpr(p)
	}
	p.b.WriteString(")")
}

func (o *Object) printExpr(p *printer) {
	if len(o.Props) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteString("{ ")
	for i, prop := range o.Props {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(prop.Key)
		if !prop.Shorthand {
			p.b.WriteString(": ")
			prop.Value.printExpr(p)
		}
	}
	p.b.WriteString(" }")
}

func (a *Array) printExpr(p *printer) {
	p.b.WriteString("[")
	for i, el := range a.Elems {
		if i > 0 {
			p.b.WriteString(", ")
		}
		el.printExpr(p)
	}
	p.b.WriteString("]")
}

func (a *Arrow) printExpr(p *printer) {
	p.b.WriteString("(")
	p.b.WriteString(strings.Join(a.Params, ", "))
	p.b.WriteString(") => ")
	a.Body.print(p)
}

func (bs *BlockStmt) print(p *printer) {
	if len(bs.List) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteString("{")
	outer := p.indent
	p.indent = outer + p.unit
	for _, s := range bs.List {
		p.b.WriteString("\n")
		p.b.WriteString(p.indent)
		s.printStmt(p)
	}
	p.indent = outer
	p.b.WriteString("\n")
	p.b.WriteString(outer)
	p.b.WriteString("}")
}

func (bs *BlockStmt) printStmt(p *printer) { bs.print(p) }

func (es *ExprStmt) printStmt(p *printer) {
	es.X.printExpr(p)
	p.b.WriteString(";")
}

func (d *ImportDecl) printStmt(p *printer) {
	p.b.WriteString("import { ")
	p.b.WriteString(strings.Join(d.Specifiers, ", "))
	p.b.WriteString(" } from \"")
	p.b.WriteString(d.Source)
	p.b.WriteString("\";")
}

type edit struct {
	offset uint32
	text   string
}

// Bytes serializes the file: original text with every recorded insertion applied.
// An unmodified file serializes byte-identical to its input.
func (f *File) Bytes() []byte {
	var edits []edit
	for _, b := range f.allBlocks() {
		edits = append(edits, b.edits()...)
	}
	for _, im := range f.imports {
		if e, ok := im.edit(); ok {
			edits = append(edits, e)
		}
	}
	if len(edits) == 0 {
		out := make([]byte, len(f.src))
		copy(out, f.src)
		return out
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].offset < edits[j].offset })

	var buf bytes.Buffer
	buf.Grow(len(f.src) + 256)
	pos := uint32(0)
	for _, e := range edits {
		buf.Write(f.src[pos:e.offset])
		buf.WriteString(e.text)
		pos = e.offset
	}
	buf.Write(f.src[pos:])
	return buf.Bytes()
}

func (b *Block) edits() []edit {
	var out []edit
	anchor := b.start
	afterStatement := false
	original := 0
	for _, st := range b.items {
		if st.node != nil {
			original++
		}
	}
	indent := b.indent()

	for _, st := range b.items {
		if st.node != nil {
			anchor = st.end()
			afterStatement = true
			continue
		}
		text := Print(st.synth, indent)
		switch {
		case b.program && !afterStatement && anchor == 0:
			text = text + "\n"
		default:
			text = "\n" + indent + text
		}
		out = append(out, edit{offset: anchor, text: text})
	}

	if !b.program && original == 0 && len(out) > 0 {
		inner := b.file.src[b.node.StartByte()+1 : b.node.EndByte()-1]
		if !bytes.Contains(inner, []byte("\n")) {
			out[len(out)-1].text += "\n" + lineIndent(b.file.src, b.node.StartByte())
		}
	}
	return out
}

// indent returns the indentation used by statements in the block.
func (b *Block) indent() string {
	if b.program {
		return ""
	}
	for _, st := range b.items {
		if st.node != nil && st.node.StartPoint().Row != b.node.StartPoint().Row {
			return lineIndent(b.file.src, st.node.StartByte())
		}
		if st.node != nil {
			break
		}
	}
	base := lineIndent(b.file.src, b.node.StartByte())
	if strings.Contains(base, "\t") {
		return base + "\t"
	}
	return base + defaultIndentUnit
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src []byte, offset uint32) string {
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}
