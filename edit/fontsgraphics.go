package edit

import (
	"fmt"
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/document"
)

func findBinarySection(script *ast.Script, kind ast.SectionKind) (ast.Section, error) {
	for _, sec := range script.Sections {
		if sec.Kind == kind {
			return sec, nil
		}
	}
	return ast.Section{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("document has no [%s] section", kind))
}

func findBinaryEntry(sec ast.Section, filename string) (ast.BinaryEntry, bool) {
	for _, e := range sec.Binaries {
		if e.Filename == filename {
			return e, true
		}
	}
	return ast.BinaryEntry{}, false
}

func formatBinaryEntry(filename string, lines []string) string {
	var b strings.Builder
	b.WriteString("fontname: ")
	b.WriteString(filename)
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// AddFont appends an entry to the document's [Fonts] section. Lines are
// pre-encoded UU-style text; Data, if Lines is empty, is encoded via
// assutil.EncodeUU first.
type AddFont struct {
	Filename string
	Lines    []string
	Data     []byte
}

func (c AddFont) resolveLines() []string {
	if len(c.Lines) > 0 {
		return c.Lines
	}
	return assutil.EncodeUU(c.Data, 80)
}

func (c AddFont) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findBinarySection(script, ast.SectionFonts)
	if err != nil {
		return CommandResult{}, err
	}
	if _, exists := findBinaryEntry(sec, c.Filename); exists {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("font %q already exists", c.Filename))
	}
	entry := formatBinaryEntry(c.Filename, c.resolveLines())
	return InsertText{Pos: sec.Span.End, Text: entry}.Execute(doc)
}

func (c AddFont) Description() string   { return fmt.Sprintf("add font %q", c.Filename) }
func (c AddFont) ModifiesContent() bool { return true }
func (c AddFont) MemoryUsage() int      { return len(c.Data) + len(c.Filename) }

// RemoveFont deletes a named entry from [Fonts].
type RemoveFont struct {
	Filename string
}

func (c RemoveFont) Execute(doc *document.Document) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findBinarySection(script, ast.SectionFonts)
	if err != nil {
		return CommandResult{}, err
	}
	entry, ok := findBinaryEntry(sec, c.Filename)
	if !ok {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("font %q not found", c.Filename))
	}
	end := entry.Span.End
	if end < len(script.Source) && script.Source[end] == '\n' {
		end++
	}
	return DeleteText{Range: document.Range{Start: entry.Span.Start, End: end}}.Execute(doc)
}

func (c RemoveFont) Description() string   { return fmt.Sprintf("remove font %q", c.Filename) }
func (c RemoveFont) ModifiesContent() bool { return true }
func (c RemoveFont) MemoryUsage() int      { return len(c.Filename) }

// ListFonts is a read-only query returning every [Fonts] entry's filename.
func ListFonts(doc *document.Document) ([]string, error) {
	return listBinaryNames(doc, ast.SectionFonts)
}

// ListGraphics is a read-only query returning every [Graphics] entry's
// filename.
func ListGraphics(doc *document.Document) ([]string, error) {
	return listBinaryNames(doc, ast.SectionGraphics)
}

func listBinaryNames(doc *document.Document, kind ast.SectionKind) ([]string, error) {
	script := doc.Script()
	if script == nil {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findBinarySection(script, kind)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(sec.Binaries))
	for i, e := range sec.Binaries {
		names[i] = e.Filename
	}
	return names, nil
}

// ClearFonts removes every entry from [Fonts] as a single atomic batch.
type ClearFonts struct{}

func (c ClearFonts) Execute(doc *document.Document) (CommandResult, error) {
	return clearBinarySection(doc, ast.SectionFonts)
}
func (c ClearFonts) Description() string   { return "clear all fonts" }
func (c ClearFonts) ModifiesContent() bool { return true }
func (c ClearFonts) MemoryUsage() int      { return 0 }

// ClearGraphics removes every entry from [Graphics] as a single atomic
// batch.
type ClearGraphics struct{}

func (c ClearGraphics) Execute(doc *document.Document) (CommandResult, error) {
	return clearBinarySection(doc, ast.SectionGraphics)
}
func (c ClearGraphics) Description() string   { return "clear all graphics" }
func (c ClearGraphics) ModifiesContent() bool { return true }
func (c ClearGraphics) MemoryUsage() int      { return 0 }

// clearBinarySection deletes every BinaryEntry's span in a single Batch,
// last entry first, so deleting one never shifts the byte offsets of
// entries still to be removed.
func clearBinarySection(doc *document.Document, kind ast.SectionKind) (CommandResult, error) {
	script := doc.Script()
	if script == nil {
		return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, "document has no parsed script")
	}
	sec, err := findBinarySection(script, kind)
	if err != nil {
		return CommandResult{}, err
	}
	if len(sec.Binaries) == 0 {
		return CommandResult{Success: true}, nil
	}

	var commands []Command
	for i := len(sec.Binaries) - 1; i >= 0; i-- {
		e := sec.Binaries[i]
		end := e.Span.End
		if end < len(script.Source) && script.Source[end] == '\n' {
			end++
		}
		commands = append(commands, DeleteText{Range: document.Range{Start: e.Span.Start, End: end}})
	}
	batch := Batch{Desc: fmt.Sprintf("clear all %s entries", kind), Commands: commands}
	return batch.Execute(doc)
}
