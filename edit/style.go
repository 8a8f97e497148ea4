package edit

import (
	"fmt"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/parser"
)

// findStylesSection returns the first [V4+ Styles] section, or an error if
// the document has no such section —
// the precondition-failure shape used elsewhere ("no [Fonts] section").
func findStylesSection(script *ast.Script) (ast.Section, error) {
	for _, sec := range script.Sections {
		if sec.Kind == ast.SectionStyles {
			return sec, nil
		}
	}
	return ast.Section{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no [Styles] section")
}

func findStyleRow(sec ast.Section, name string) (ast.Style, int, bool) {
	for i, st := range sec.Styles {
		if st.Name == name {
			return st, i, true
		}
	}
	return ast.Style{}, -1, false
}

// CreateStyle appends a new Style row to the document's [Styles] section.
type CreateStyle struct {
	Style ast.Style
}

func (c CreateStyle) insertionCommand(doc *document.Document) (Command, error) {
	script := doc.Script()
	if script == nil {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findStylesSection(script)
	if err != nil {
		return nil, err
	}
	if _, _, exists := findStyleRow(sec, c.Style.Name); exists {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("style %q already exists", c.Style.Name))
	}
	line := parser.FormatStyleLine(c.Style)
	return InsertText{Pos: sec.Span.End, Text: line}, nil
}

func (c CreateStyle) Execute(doc *document.Document) (CommandResult, error) {
	cmd, err := c.insertionCommand(doc)
	if err != nil {
		return CommandResult{}, err
	}
	return cmd.Execute(doc)
}

func (c CreateStyle) Description() string   { return fmt.Sprintf("create style %q", c.Style.Name) }
func (c CreateStyle) ModifiesContent() bool { return true }
func (c CreateStyle) MemoryUsage() int      { return len(c.Style.Name) + len(c.Style.Fontname) + 64 }

// ModifyStyle replaces an existing style row's fields wholesale.
type ModifyStyle struct {
	Name     string
	NewStyle ast.Style
}

func (c ModifyStyle) replaceCommand(doc *document.Document) (Command, error) {
	script := doc.Script()
	if script == nil {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findStylesSection(script)
	if err != nil {
		return nil, err
	}
	st, _, ok := findStyleRow(sec, c.Name)
	if !ok {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("style %q not found", c.Name))
	}
	line := parser.FormatStyleLine(c.NewStyle)
	r := document.Range{Start: st.Span.Start, End: st.Span.End}
	return ReplaceText{Range: r, Text: trimTrailingNewline(line)}, nil
}

func (c ModifyStyle) Execute(doc *document.Document) (CommandResult, error) {
	cmd, err := c.replaceCommand(doc)
	if err != nil {
		return CommandResult{}, err
	}
	return cmd.Execute(doc)
}

func (c ModifyStyle) Description() string   { return fmt.Sprintf("modify style %q", c.Name) }
func (c ModifyStyle) ModifiesContent() bool { return true }
func (c ModifyStyle) MemoryUsage() int      { return len(c.NewStyle.Name) + len(c.NewStyle.Fontname) + 64 }

// DeleteStyle removes an existing style row, including its line terminator.
type DeleteStyle struct {
	Name string
}

func (c DeleteStyle) deleteCommand(doc *document.Document) (Command, error) {
	script := doc.Script()
	if script == nil {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findStylesSection(script)
	if err != nil {
		return nil, err
	}
	st, _, ok := findStyleRow(sec, c.Name)
	if !ok {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("style %q not found", c.Name))
	}
	end := st.Span.End
	if end < len(script.Source) && script.Source[end] == '\n' {
		end++
	}
	return DeleteText{Range: document.Range{Start: st.Span.Start, End: end}}, nil
}

func (c DeleteStyle) Execute(doc *document.Document) (CommandResult, error) {
	cmd, err := c.deleteCommand(doc)
	if err != nil {
		return CommandResult{}, err
	}
	return cmd.Execute(doc)
}

func (c DeleteStyle) Description() string   { return fmt.Sprintf("delete style %q", c.Name) }
func (c DeleteStyle) ModifiesContent() bool { return true }
func (c DeleteStyle) MemoryUsage() int      { return len(c.Name) }

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}
