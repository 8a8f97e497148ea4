package edit

import (
	"fmt"

	"github.com/assforge/ass/analyzer"
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/document"
)

func findEventRow(script *ast.Script, row int) (ast.Section, ast.Event, error) {
	sec, err := findEventsSection(script)
	if err != nil {
		return ast.Section{}, ast.Event{}, err
	}
	if row < 0 || row >= len(sec.Events) {
		return ast.Section{}, ast.Event{}, assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("event row %d out of range [0,%d)", row, len(sec.Events)))
	}
	return sec, sec.Events[row], nil
}

// ParseEventTags is a read-only query, not a Command: it has nothing to
// undo, so it sits alongside the mutating tag commands below rather than
// implementing the Command interface other edit commands give execute/undo
// semantics for.
func ParseEventTags(doc *document.Document, row int) (analyzer.EventText, error) {
	script := doc.Script()
	if script == nil {
		return analyzer.EventText{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	_, ev, err := findEventRow(script, row)
	if err != nil {
		return analyzer.EventText{}, err
	}
	return analyzer.ScanOverrides(ev.Text(script)), nil
}

// InsertTag prepends a new override block {TagText} to the row-th event's
// text.
type InsertTag struct {
	Row     int
	TagText string // e.g. `\b1` or `\fscx120\fscy120`, without braces
}

func (c InsertTag) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	_, ev, err := findEventRow(script, c.Row)
	if err != nil {
		return CommandResult{}, err
	}
	pos := ev.TextSpan.Start
	return InsertText{Pos: pos, Text: "{" + c.TagText + "}"}.Execute(doc)
}

func (c InsertTag) Description() string   { return fmt.Sprintf("insert tag %q into event row %d", c.TagText, c.Row) }
func (c InsertTag) ModifiesContent() bool { return true }
func (c InsertTag) MemoryUsage() int      { return len(c.TagText) + 2 }

// RemoveTag deletes the first occurrence of a tag named Name from the
// row-th event's override blocks, leaving surrounding tags and plain text
// untouched.
type RemoveTag struct {
	Row  int
	Name string
}

func (c RemoveTag) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	_, ev, err := findEventRow(script, c.Row)
	if err != nil {
		return CommandResult{}, err
	}
	text := ev.Text(script)
	parsed := analyzer.ScanOverrides(text)
	for _, tag := range parsed.Tags {
		if tag.Name != c.Name {
			continue
		}
		start := ev.TextSpan.Start + tag.Offset
		end := start + 1 + len(tag.Name) + len(tag.Args) // '\' + name + args
		if rel := tag.Offset + 1 + len(tag.Name); rel < len(text) && text[rel] == '(' {
			end++ // '('
			if closeAt := rel + 1 + len(tag.Args); closeAt < len(text) && text[closeAt] == ')' {
				end++ // ')'
			}
		}
		r := document.Range{Start: start, End: end}
		return DeleteText{Range: r}.Execute(doc)
	}
	return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has no tag %q", c.Row, c.Name))
}

func (c RemoveTag) Description() string   { return fmt.Sprintf("remove tag %q from event row %d", c.Name, c.Row) }
func (c RemoveTag) ModifiesContent() bool { return true }
func (c RemoveTag) MemoryUsage() int      { return len(c.Name) }

// ReplaceTag rewrites the argument text of the first tag named Name.
type ReplaceTag struct {
	Row     int
	Name    string
	NewArgs string
}

func (c ReplaceTag) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	_, ev, err := findEventRow(script, c.Row)
	if err != nil {
		return CommandResult{}, err
	}
	text := ev.Text(script)
	parsed := analyzer.ScanOverrides(text)
	for _, tag := range parsed.Tags {
		if tag.Name != c.Name {
			continue
		}
		argsStart := ev.TextSpan.Start + tag.Offset + 1 + len(tag.Name)
		if rel := argsStart - ev.TextSpan.Start; rel < len(text) && text[rel] == '(' {
			argsStart++ // keep the parentheses, replace what is inside them
		}
		argsEnd := argsStart + len(tag.Args)
		r := document.Range{Start: argsStart, End: argsEnd}
		return ReplaceText{Range: r, Text: c.NewArgs}.Execute(doc)
	}
	return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has no tag %q", c.Row, c.Name))
}

func (c ReplaceTag) Description() string {
	return fmt.Sprintf("replace tag %q args in event row %d", c.Name, c.Row)
}
func (c ReplaceTag) ModifiesContent() bool { return true }
func (c ReplaceTag) MemoryUsage() int      { return len(c.NewArgs) }

// WrapInTag wraps the plain-text byte range [Start,End) (offsets relative
// to the event's shaped Plain text, not the raw source) in an override
// block before it and a reset block after it. TagText and ResetText are
// written between braces exactly as given, backslash included (e.g. `\r`
// to reset to the base style). The event text is rebuilt from its plain
// form, so an event whose text is not already plain (it has an override
// block, or a \N, \n or \h escape) is rejected with ErrPreconditionFailed.
type WrapInTag struct {
	Row        int
	Start, End int
	TagText    string
	ResetText  string
}

func (c WrapInTag) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	_, ev, err := findEventRow(script, c.Row)
	if err != nil {
		return CommandResult{}, err
	}
	text := ev.Text(script)
	parsed := analyzer.ScanOverrides(text)
	if len(parsed.Tags) > 0 || parsed.Plain != text {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has override blocks or escapes; WrapInTag only supports plain-text events", c.Row))
	}
	if c.Start < 0 || c.End > len(parsed.Plain) || c.Start > c.End {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("wrap range [%d,%d) out of bounds for plain text of length %d", c.Start, c.End, len(parsed.Plain)))
	}

	full := parsed.Plain[:c.Start] + "{" + c.TagText + "}" + parsed.Plain[c.Start:c.End] + "{" + c.ResetText + "}" + parsed.Plain[c.End:]
	return ReplaceText{Range: document.Range{Start: ev.TextSpan.Start, End: ev.TextSpan.End}, Text: full}.Execute(doc)
}

func (c WrapInTag) Description() string {
	return fmt.Sprintf("wrap [%d,%d) of event row %d in tag %q", c.Start, c.End, c.Row, c.TagText)
}
func (c WrapInTag) ModifiesContent() bool { return true }
func (c WrapInTag) MemoryUsage() int      { return len(c.TagText) + len(c.ResetText) }
