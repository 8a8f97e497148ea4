// Package edit implements the command and operation layer (C6.1): atomic,
// invertible edits over a document.Document. Every Command executes by
// applying an Operation; recording both the forward and inverse Operation
// in a CommandResult is what lets history (C6.2) undo and redo without
// recomputing a diff after the fact.
package edit

import (
	"fmt"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/document"
)

// OpKind names the shape of an Operation: one of the four inverse-data
// shapes (Insert, Delete, Replace, Delta), or OpBatch for a composite of
// steps. The forward operation's inverse data determines
// exactly what an OpKind needs to carry to be re-applied later (whether to
// undo the forward edit, or — stored the other way round — to redo it).
type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
	OpReplace
	OpDelta
	OpBatch
)

// SectionSnapshot pairs a byte range with the text that range held before
// a structural (multi-range) edit, so an OpDelta can restore it later.
// Snapshots within one OpDelta are applied in the order stored: callers
// must list them by descending Range.Start so restoring one never shifts
// the position of a range still to come.
type SectionSnapshot struct {
	Range document.Range
	Text  string
}

// Operation is a self-contained, directly applicable edit description. The
// same type serves as both a command's forward operation and its inverse:
// Insert/Delete/Replace already describe a complete action, not a diff, so
// no separate "undo this operation" type is needed — undo and redo both
// just call Apply on the appropriate stored Operation.
type Operation struct {
	Kind     OpKind
	Range    document.Range    // Insert: Start only used. Delete/Replace: the range.
	Text     string            // Insert/Replace: the text. Delete: ignored.
	Sections []SectionSnapshot // OpDelta only.
	Steps    []Operation       // OpBatch only, already in application order.
}

// Apply performs the operation against doc and returns the resulting
// Mutation, or an error if doc rejects it (stale range, bad UTF-8
// boundary). Operation.Apply never retries or partially applies an OpBatch
// step list past the first failure — the caller is expected to already be
// inside a document-level atomic context (Batch.Execute's own rollback, or
// a fresh undo/redo call).
func (op Operation) Apply(doc *document.Document) (document.Mutation, error) {
	switch op.Kind {
	case OpInsert:
		return doc.Insert(op.Range.Start, op.Text)
	case OpDelete:
		return doc.Delete(op.Range)
	case OpReplace:
		return doc.Replace(op.Range, op.Text)
	case OpDelta:
		return applySnapshots(doc, op.Sections)
	case OpBatch:
		return applySteps(doc, op.Steps)
	default:
		return document.Mutation{}, &assutil.Internal{Detail: fmt.Sprintf("unknown operation kind %d", op.Kind)}
	}
}

func applySnapshots(doc *document.Document, snaps []SectionSnapshot) (document.Mutation, error) {
	var last document.Mutation
	for _, s := range snaps {
		m, err := doc.Replace(s.Range, s.Text)
		if err != nil {
			return document.Mutation{}, err
		}
		last = m
	}
	return last, nil
}

func applySteps(doc *document.Document, steps []Operation) (document.Mutation, error) {
	var last document.Mutation
	for _, s := range steps {
		m, err := s.Apply(doc)
		if err != nil {
			return document.Mutation{}, err
		}
		last = m
	}
	return last, nil
}
