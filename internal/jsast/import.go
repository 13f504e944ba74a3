package jsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Import is an import statement, either parsed or synthesized.
type Import struct {
	file  *File
	stmt  *Statement
	node  *sitter.Node
	decl  *ImportDecl
	added []string
}

// Statement returns the statement holding the import.
func (im *Import) Statement() *Statement { return im.stmt }

// Source returns the module specifier without quotes.
func (im *Import) Source() string {
	if im.decl != nil {
		return im.decl.Source
	}
	src := im.node.ChildByFieldName("source")
	if src == nil {
		return ""
	}
	return unquote(im.file.text(src))
}

// Imports reports whether a named specifier imports name. Aliases are ignored:
// `import { useEffect as e }` imports useEffect.
func (im *Import) Imports(name string) bool {
	for _, n := range im.Specifiers() {
		if n == name {
			return true
		}
	}
	return false
}

// Specifiers returns the imported names of the named specifiers, including added ones.
func (im *Import) Specifiers() []string {
	if im.decl != nil {
		out := make([]string, len(im.decl.Specifiers))
		copy(out, im.decl.Specifiers)
		return out
	}
	var out []string
	if named := im.namedImports(); named != nil {
		for i := 0; i < int(named.NamedChildCount()); i++ {
			spec := named.NamedChild(i)
			if spec.Type() != "import_specifier" {
				continue
			}
			if name := spec.ChildByFieldName("name"); name != nil {
				out = append(out, unquote(im.file.text(name)))
			}
		}
	}
	return append(out, im.added...)
}

// CanAddSpecifier reports whether a named specifier can be added to this import.
// Namespace imports and type-only imports cannot take one.
func (im *Import) CanAddSpecifier() bool {
	if im.decl != nil {
		return true
	}
	if im.typeOnly() {
		return false
	}
	clause := im.clause()
	if clause == nil {
		return true
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		if clause.NamedChild(i).Type() == "namespace_import" {
			return false
		}
	}
	return true
}

// AddSpecifier appends a named specifier. It reports false when the import
// cannot take one, or already imports name.
func (im *Import) AddSpecifier(name string) bool {
	if !im.CanAddSpecifier() || im.Imports(name) {
		return false
	}
	if im.decl != nil {
		im.decl.Specifiers = append(im.decl.Specifiers, name)
		return true
	}
	im.added = append(im.added, name)
	return true
}

func (im *Import) typeOnly() bool {
	for i := 0; i < int(im.node.ChildCount()); i++ {
		if im.node.Child(i).Type() == "type" {
			return true
		}
	}
	return false
}

func (im *Import) clause() *sitter.Node {
	for i := 0; i < int(im.node.NamedChildCount()); i++ {
		if child := im.node.NamedChild(i); child.Type() == "import_clause" {
			return child
		}
	}
	return nil
}

func (im *Import) namedImports() *sitter.Node {
	clause := im.clause()
	if clause == nil {
		return nil
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		if child := clause.NamedChild(i); child.Type() == "named_imports" {
			return child
		}
	}
	return nil
}

// edit renders the added specifiers inside the existing clause.
func (im *Import) edit() (edit, bool) {
	if im.node == nil || len(im.added) == 0 {
		return edit{}, false
	}
	names := strings.Join(im.added, ", ")

	clause := im.clause()
	if clause == nil {
		// import "react" -> import { a } from "react"
		kw := im.node.Child(0)
		return edit{offset: kw.EndByte(), text: " { " + names + " } from"}, true
	}

	if named := im.namedImports(); named != nil {
		var last *sitter.Node
		for i := 0; i < int(named.NamedChildCount()); i++ {
			if spec := named.NamedChild(i); spec.Type() == "import_specifier" {
				last = spec
			}
		}
		if last == nil {
			return edit{offset: named.StartByte() + 1, text: " " + names + " "}, true
		}
		return edit{offset: last.EndByte(), text: ", " + names}, true
	}

	// default import only: import React from "react"
	return edit{offset: clause.EndByte(), text: ", { " + names + " }"}, true
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
