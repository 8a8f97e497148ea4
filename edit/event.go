package edit

import (
	"fmt"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/parser"
)

func findEventsSection(script *ast.Script) (ast.Section, error) {
	for _, sec := range script.Sections {
		if sec.Kind == ast.SectionEvents {
			return sec, nil
		}
	}
	return ast.Section{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no [Events] section")
}

// InsertEvent appends a new event row to the document's [Events] section.
type InsertEvent struct {
	Kind                      ast.EventKind
	Layer                     int
	Start, End                assutil.Centiseconds
	Style, Name               string
	MarginL, MarginR, MarginV int
	Effect, Text              string
}

func (c InsertEvent) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findEventsSection(script)
	if err != nil {
		return CommandResult{}, err
	}
	line := parser.FormatEventLine(c.Kind, c.Layer, c.Start, c.End, c.Style, c.Name, c.MarginL, c.MarginR, c.MarginV, c.Effect, c.Text)
	return InsertText{Pos: sec.Span.End, Text: line}.Execute(doc)
}

func (c InsertEvent) Description() string   { return fmt.Sprintf("insert %s event", c.Kind) }
func (c InsertEvent) ModifiesContent() bool { return true }
func (c InsertEvent) MemoryUsage() int      { return len(c.Text) + len(c.Style) + len(c.Name) + 64 }

// DeleteEvent removes the row-th event (0-indexed within the [Events]
// section), including its line terminator.
type DeleteEvent struct {
	Row int
}

func (c DeleteEvent) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findEventsSection(script)
	if err != nil {
		return CommandResult{}, err
	}
	if c.Row < 0 || c.Row >= len(sec.Events) {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("event row %d out of range [0,%d)", c.Row, len(sec.Events)))
	}
	ev := sec.Events[c.Row]
	end := ev.Span.End
	if end < len(script.Source) && script.Source[end] == '\n' {
		end++
	}
	return DeleteText{Range: document.Range{Start: ev.Span.Start, End: end}}.Execute(doc)
}

func (c DeleteEvent) Description() string   { return fmt.Sprintf("delete event row %d", c.Row) }
func (c DeleteEvent) ModifiesContent() bool { return true }
func (c DeleteEvent) MemoryUsage() int      { return 0 }

// ShiftEventTiming moves the row-th event's Start and End both by Delta
// centiseconds (negative shifts earlier). Implemented as a Batch of two
// field replacements so either both apply or neither does; the End field
// is replaced first since it always starts at a higher byte offset than
// Start on the same line, so replacing it can never shift Start's span.
type ShiftEventTiming struct {
	Row   int
	Delta int
}

func (c ShiftEventTiming) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findEventsSection(script)
	if err != nil {
		return CommandResult{}, err
	}
	if c.Row < 0 || c.Row >= len(sec.Events) {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("event row %d out of range [0,%d)", c.Row, len(sec.Events)))
	}
	ev := sec.Events[c.Row]
	start, ok := ev.Start(script)
	if !ok {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has an unparseable Start time", c.Row))
	}
	end, ok := ev.End(script)
	if !ok {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has an unparseable End time", c.Row))
	}

	newStart := int64(start) + int64(c.Delta)
	newEnd := int64(end) + int64(c.Delta)
	if newStart < 0 || newEnd < 0 {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrOutOfBounds, "shift would produce a negative timestamp")
	}

	batch := Batch{
		Desc: fmt.Sprintf("shift event row %d timing by %dcs", c.Row, c.Delta),
		Commands: []Command{
			ReplaceText{Range: document.Range{Start: ev.EndSpan.Start, End: ev.EndSpan.End}, Text: assutil.FormatTime(assutil.Centiseconds(newEnd))},
			ReplaceText{Range: document.Range{Start: ev.StartSpan.Start, End: ev.StartSpan.End}, Text: assutil.FormatTime(assutil.Centiseconds(newStart))},
		},
	}
	return batch.Execute(doc)
}

func (c ShiftEventTiming) Description() string {
	return fmt.Sprintf("shift event row %d timing by %dcs", c.Row, c.Delta)
}
func (c ShiftEventTiming) ModifiesContent() bool { return true }
func (c ShiftEventTiming) MemoryUsage() int      { return 32 }
