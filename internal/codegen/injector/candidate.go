package injector

import (
	"strings"

	"github.com/getlawrence/hooklog/internal/jsast"
)

type candidate struct {
	fn   *jsast.Function
	name string
}

// findCandidates returns the eligible components and hooks declared at the top
// level: function declarations, function-valued declarators and default exports.
func findCandidates(file *jsast.File) []candidate {
	var out []candidate
	add := func(fn *jsast.Function) {
		if name := fn.Name(); IsComponentOrHook(name) {
			out = append(out, candidate{fn: fn, name: name})
		}
	}

	for _, st := range file.Program().Statements() {
		switch st.Kind() {
		case jsast.KindFunctionDeclaration:
			if fn, ok := st.Function(); ok {
				add(fn)
			}
		case jsast.KindVariableDeclaration:
			for _, d := range st.Declarators() {
				if d.Init != nil {
					add(d.Init)
				}
			}
		case jsast.KindExportDefault:
			if fn, ok := st.Exported(); ok {
				add(fn)
			}
		}
	}
	return out
}

// IsComponentOrHook reports whether name follows the component (`Counter`) or
// hook (`useCounter`) naming convention.
func IsComponentOrHook(name string) bool {
	if name == "" {
		return false
	}
	return isUpper(name[0]) || IsHookName(name)
}

// IsHookName reports whether name is `use` followed by an uppercase letter
func IsHookName(name string) bool {
	return len(name) > 3 && strings.HasPrefix(name, "use") && isUpper(name[3])
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
