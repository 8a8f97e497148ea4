package edit

import (
	"fmt"
	"strconv"

	"github.com/assforge/ass/analyzer"
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/document"
)

var karaokeTagNames = map[string]bool{"k": true, "K": true, "kf": true, "ko": true, "kt": true}

func isKaraokeTag(name string) bool { return karaokeTagNames[name] }

// SetKaraokeTiming rewrites the duration argument (in centiseconds) of the
// SyllableIndex-th karaoke tag (\k, \K, \kf, \ko, \kt — 0-indexed in text
// order) in the row-th event.
type SetKaraokeTiming struct {
	Row           int
	SyllableIndex int
	DurationCs    int
}

func (c SetKaraokeTiming) Execute(doc *document.Document) (CommandResult, error) {
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

	seen := 0
	for _, tag := range parsed.Tags {
		if !isKaraokeTag(tag.Name) {
			continue
		}
		if seen != c.SyllableIndex {
			seen++
			continue
		}
		argsStart := ev.TextSpan.Start + tag.Offset + 1 + len(tag.Name)
		argsEnd := argsStart + len(tag.Args)
		r := document.Range{Start: argsStart, End: argsEnd}
		return ReplaceText{Range: r, Text: strconv.Itoa(c.DurationCs)}.Execute(doc)
	}
	return CommandResult{}, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("event row %d has no karaoke syllable %d", c.Row, c.SyllableIndex))
}

func (c SetKaraokeTiming) Description() string {
	return fmt.Sprintf("set karaoke syllable %d of event row %d to %dcs", c.SyllableIndex, c.Row, c.DurationCs)
}
func (c SetKaraokeTiming) ModifiesContent() bool { return true }
func (c SetKaraokeTiming) MemoryUsage() int      { return 8 }
