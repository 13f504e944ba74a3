package injector

import "github.com/getlawrence/hooklog/internal/jsast"

// NewHook builds
//
//	useEffect(() => {
//	  console.log({ a, b });
//	}, [a, b]);
//
// for names [a, b]. The dependency list keeps the order of names.
func NewHook(names []string) *jsast.ExprStmt {
	logCall := &jsast.ExprStmt{X: &jsast.Call{
		Callee: &jsast.Member{Object: jsast.Ident("console"), Property: "log"},
		Args:   []jsast.Expr{jsast.ShorthandObject(names...)},
	}}

	return &jsast.ExprStmt{X: &jsast.Call{
		Callee: jsast.Ident(EffectFunction),
		Args: []jsast.Expr{
			&jsast.Arrow{Body: &jsast.BlockStmt{List: []jsast.Stmt{logCall}}},
			&jsast.Array{Elems: jsast.Idents(names...)},
		},
	}}
}

// InsertionIndex returns the position after the leading run of variable
// declarations and hook calls in body.
func InsertionIndex(body *jsast.Block) int {
	index := 0
	for i, st := range body.Statements() {
		if st.Kind() == jsast.KindVariableDeclaration || isHookCall(st) {
			index = i + 1
			continue
		}
		break
	}
	return index
}

// InsertHook inserts a hook for names at InsertionIndex and returns the index used.
func InsertHook(body *jsast.Block, names []string) int {
	index := InsertionIndex(body)
	body.Insert(index, NewHook(names))
	return index
}

func isHookCall(st *jsast.Statement) bool {
	name, ok := st.CalleeName()
	return ok && IsHookName(name)
}
