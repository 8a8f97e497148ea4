package edit

import (
	"fmt"

	"github.com/assforge/ass/document"
	"github.com/assforge/ass/reparse"
)

// CommandResult reports what a Command actually did. Forward and Inverse
// are this implementation's resolution of an ambiguity left
// unanswered (CommandResult's listed fields don't say how history learns a
// command's inverse data) — see DESIGN.md's edit package entry.
type CommandResult struct {
	Success        bool
	Message        string
	ModifiedRange  *document.Range
	NewCursor      *int
	ContentChanged bool
	Delta          *reparse.ScriptDelta
	Forward        Operation
	Inverse        Operation
}

// Command is one atomic, describable, invertible edit.
type Command interface {
	Execute(doc *document.Document) (CommandResult, error)
	Description() string
	ModifiesContent() bool
	MemoryUsage() int
}

// InsertText inserts Text at Pos.
type InsertText struct {
	Pos  int
	Text string
}

func (c InsertText) Execute(doc *document.Document) (CommandResult, error) {
	mut, err := doc.Insert(c.Pos, c.Text)
	if err != nil {
		return CommandResult{}, err
	}
	r := mut.Range
	cursor := mut.Range.End
	return CommandResult{
		Success:        true,
		ModifiedRange:  &r,
		NewCursor:      &cursor,
		ContentChanged: len(c.Text) > 0,
		Forward:        Operation{Kind: OpInsert, Range: document.Range{Start: c.Pos, End: c.Pos}, Text: c.Text},
		Inverse:        Operation{Kind: OpDelete, Range: mut.Range},
	}, nil
}

func (c InsertText) Description() string   { return fmt.Sprintf("insert %d bytes at %d", len(c.Text), c.Pos) }
func (c InsertText) ModifiesContent() bool { return len(c.Text) > 0 }
func (c InsertText) MemoryUsage() int      { return len(c.Text) }

// DeleteText removes Range.
type DeleteText struct {
	Range document.Range
}

func (c DeleteText) Execute(doc *document.Document) (CommandResult, error) {
	mut, err := doc.Delete(c.Range)
	if err != nil {
		return CommandResult{}, err
	}
	r := mut.Range
	cursor := mut.Range.Start
	return CommandResult{
		Success:        true,
		ModifiedRange:  &r,
		NewCursor:      &cursor,
		ContentChanged: len(mut.OldText) > 0,
		Forward:        Operation{Kind: OpDelete, Range: c.Range},
		Inverse:        Operation{Kind: OpInsert, Range: document.Range{Start: mut.Range.Start, End: mut.Range.Start}, Text: mut.OldText},
	}, nil
}

func (c DeleteText) Description() string   { return fmt.Sprintf("delete [%d,%d)", c.Range.Start, c.Range.End) }
func (c DeleteText) ModifiesContent() bool { return c.Range.Len() > 0 }
func (c DeleteText) MemoryUsage() int      { return c.Range.Len() }

// ReplaceText substitutes Range with Text.
type ReplaceText struct {
	Range document.Range
	Text  string
}

func (c ReplaceText) Execute(doc *document.Document) (CommandResult, error) {
	mut, err := doc.Replace(c.Range, c.Text)
	if err != nil {
		return CommandResult{}, err
	}
	r := mut.Range
	cursor := mut.Range.End
	return CommandResult{
		Success:        true,
		ModifiedRange:  &r,
		NewCursor:      &cursor,
		ContentChanged: mut.OldText != mut.NewText,
		Forward:        Operation{Kind: OpReplace, Range: c.Range, Text: c.Text},
		Inverse:        Operation{Kind: OpReplace, Range: mut.Range, Text: mut.OldText},
	}, nil
}

func (c ReplaceText) Description() string {
	return fmt.Sprintf("replace [%d,%d) with %d bytes", c.Range.Start, c.Range.End, len(c.Text))
}
func (c ReplaceText) ModifiesContent() bool { return true }
func (c ReplaceText) MemoryUsage() int      { return len(c.Text) + c.Range.Len() }
