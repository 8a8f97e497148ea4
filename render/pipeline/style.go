package pipeline

import "github.com/assforge/ass/ast"

// ResolveBaseStyle looks up an event's referenced style by name, falling
// back to the built-in Default style when the reference does not
// resolve (per ast.Script.FindStyle's own "last matching row wins, else
// not found" contract).
func ResolveBaseStyle(script *ast.Script, ev *ast.Event) ast.Style {
	if st, ok := script.FindStyle(ev.Style); ok {
		return st
	}
	if st, ok := script.FindStyle(ast.DefaultStyleName); ok {
		return st
	}
	return ast.DefaultStyle()
}
