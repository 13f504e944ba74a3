package injector

import (
	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/jsast"
)

// EnsureImport makes sure the file imports useEffect from react. An existing
// react import is extended rather than duplicated; calling it again is a no-op.
func EnsureImport(file *jsast.File) types.ImportChange {
	var first, extendable *jsast.Import
	for _, im := range file.Imports() {
		if im.Source() != EffectModule {
			continue
		}
		if im.Imports(EffectFunction) {
			return types.ImportUnchanged
		}
		if first == nil {
			first = im
		}
		if extendable == nil && im.CanAddSpecifier() {
			extendable = im
		}
	}

	if extendable != nil {
		extendable.AddSpecifier(EffectFunction)
		return types.ImportExtended
	}

	decl := &jsast.ImportDecl{Specifiers: []string{EffectFunction}, Source: EffectModule}
	if first != nil {
		// namespace or type-only react import: a named specifier cannot join it
		file.Program().InsertAfter(first.Statement(), decl)
		return types.ImportAdded
	}
	file.Program().Prepend(decl)
	return types.ImportAdded
}
