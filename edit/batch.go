package edit

import (
	"fmt"

	"github.com/assforge/ass/document"
)

// Batch executes an ordered list of commands as one atomic unit: if any
// inner command fails, every prior inner edit is rolled back (by applying
// its own recorded inverse, most recent first) before Batch reports the
// failure, leaving the document exactly as it was. A Batch's own inverse
// is the reverse-ordered list of inner inverses.
type Batch struct {
	Desc     string
	Commands []Command
}

func (b Batch) Execute(doc *document.Document) (CommandResult, error) {
	applied := make([]Operation, 0, len(b.Commands))
	forwards := make([]Operation, 0, len(b.Commands))
	var lastRange document.Range
	var changed bool

	for i, cmd := range b.Commands {
		res, err := cmd.Execute(doc)
		if err != nil {
			rollback(doc, applied)
			return CommandResult{}, fmt.Errorf("batch: step %d (%s) failed: %w", i, cmd.Description(), err)
		}
		applied = append(applied, res.Inverse)
		forwards = append(forwards, res.Forward)
		if res.ModifiedRange != nil {
			lastRange = *res.ModifiedRange
		}
		changed = changed || res.ContentChanged
	}

	inverseSteps := make([]Operation, len(applied))
	for i, op := range applied {
		inverseSteps[len(applied)-1-i] = op
	}

	return CommandResult{
		Success:        true,
		ModifiedRange:  &lastRange,
		ContentChanged: changed,
		Forward:        Operation{Kind: OpBatch, Steps: forwards},
		Inverse:        Operation{Kind: OpBatch, Steps: inverseSteps},
	}, nil
}

// rollback undoes already-applied steps, most recent first. Each
// Operation.Apply call is itself atomic against doc (document.Insert/
// Delete/Replace never partially mutate), so rollback only fails if an
// inverse was computed from a range that has since become invalid —
// which should not happen within a single Batch.Execute call.
func rollback(doc *document.Document, inverses []Operation) {
	for i := len(inverses) - 1; i >= 0; i-- {
		inverses[i].Apply(doc)
	}
}

func (b Batch) Description() string { return b.Desc }

func (b Batch) ModifiesContent() bool {
	for _, c := range b.Commands {
		if c.ModifiesContent() {
			return true
		}
	}
	return false
}

func (b Batch) MemoryUsage() int {
	total := 0
	for _, c := range b.Commands {
		total += c.MemoryUsage()
	}
	return total
}
