package jsast

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the tree-sitter grammar used for a source unit
type Dialect string

const (
	// JavaScript covers plain JS and JSX; the javascript grammar parses both.
	JavaScript Dialect = "JavaScript"
	TypeScript Dialect = "TypeScript"
	TSX        Dialect = "TSX"
)

var extensionDialects = map[string]Dialect{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// SupportedExtensions returns the file extensions hooklog knows how to parse
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionDialects))
	for ext := range extensionDialects {
		exts = append(exts, ext)
	}
	return exts
}

// DialectForFile classifies a file with go-enry and maps the result onto a grammar.
// Content is optional; when given it lets enry disambiguate extensions such as
// .ts that are shared with non-script formats.
func DialectForFile(path string, content []byte) (Dialect, bool) {
	switch lang := enry.GetLanguage(filepath.Base(path), content); lang {
	case "JavaScript", "JSX":
		return JavaScript, true
	case "TypeScript":
		if strings.EqualFold(filepath.Ext(path), ".tsx") {
			return TSX, true
		}
		return TypeScript, true
	case "TSX":
		return TSX, true
	case "":
		d, ok := extensionDialects[strings.ToLower(filepath.Ext(path))]
		return d, ok
	default:
		return "", false
	}
}

func (d Dialect) language() *sitter.Language {
	switch d {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}
