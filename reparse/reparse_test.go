package reparse

import (
	"reflect"
	"strings"
	"testing"

	"github.com/assforge/ass/parser"
)

const s1Script = "[Script Info]\nTitle: T\n\n[Events]\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
	"Dialogue: 0,0:00:00.00,0:00:05.00,Default,,0,0,0,,Hello\n"

func TestReparseTitleLineMatchesFullReparse(t *testing.T) {
	src := []byte(s1Script)
	prev, _, err := parser.Parse(src, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("initial parse failed: %v", err)
	}

	valueStart := strings.Index(s1Script, "Title: ") + len("Title: ")
	valueEnd := strings.Index(s1Script, "\n\n")
	change := TextChange{Range: Span{Start: valueStart, End: valueEnd}, NewText: "New Title"}

	newSrc := []byte(s1Script[:change.Range.Start] + change.NewText + s1Script[change.Range.End:])

	incremental, delta, _, err := Reparse(prev, change, newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	full, _, err := parser.Parse(newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("full reparse failed: %v", err)
	}

	if !reflect.DeepEqual(incremental.Sections, full.Sections) {
		t.Fatalf("incremental reparse diverged from full reparse:\nincremental=%+v\nfull=%+v", incremental.Sections, full.Sections)
	}
	if delta.Empty() {
		t.Error("expected a non-empty delta for a Script Info edit")
	}
}

func TestReparseSingleEventEditUsesRowLevelPath(t *testing.T) {
	src := []byte("[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,0:00:00.00,0:00:05.00,Default,,0,0,0,,First\n" +
		"Dialogue: 0,0:00:05.00,0:00:10.00,Default,,0,0,0,,Second\n" +
		"Dialogue: 0,0:00:10.00,0:00:15.00,Default,,0,0,0,,Third\n")

	prev, _, err := parser.Parse(src, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("initial parse failed: %v", err)
	}

	old := string(src)
	target := "Second"
	start := strings.Index(old, target)
	change := TextChange{Range: Span{Start: start, End: start + len(target)}, NewText: "Replaced"}
	newSrc := []byte(old[:start] + change.NewText + old[start+len(target):])

	incremental, delta, _, err := Reparse(prev, change, newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	full, _, err := parser.Parse(newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("full reparse failed: %v", err)
	}
	if !reflect.DeepEqual(incremental.Sections, full.Sections) {
		t.Fatalf("incremental reparse diverged from full reparse:\nincremental=%+v\nfull=%+v", incremental.Sections, full.Sections)
	}
	if len(delta.Modified) != 1 || delta.Modified[0].Index != 0 {
		t.Errorf("delta = %+v, want exactly one Modified entry at index 0", delta)
	}
	events := incremental.Sections[0].Events
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if got := events[1].Text(incremental); got != "Replaced" {
		t.Errorf("event[1].Text = %q, want %q", got, "Replaced")
	}
	if got := events[0].Text(incremental); got != "First" {
		t.Errorf("event[0].Text = %q, want %q (untouched row)", got, "First")
	}
	if got := events[2].Text(incremental); got != "Third" {
		t.Errorf("event[2].Text = %q, want %q", got, "Third")
	}
}

func TestReparseInsertionShiftsTrailingEvent(t *testing.T) {
	src := []byte("[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,0:00:00.00,0:00:05.00,Default,,0,0,0,,Hi\n" +
		"Dialogue: 0,0:00:05.00,0:00:10.00,Default,,0,0,0,,Bye\n")

	prev, _, err := parser.Parse(src, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("initial parse failed: %v", err)
	}

	old := string(src)
	at := strings.Index(old, "Hi")
	change := TextChange{Range: Span{Start: at, End: at}, NewText: "Longer "}
	newSrc := []byte(old[:at] + change.NewText + old[at:])

	incremental, _, _, err := Reparse(prev, change, newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	full, _, err := parser.Parse(newSrc, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("full reparse failed: %v", err)
	}
	if !reflect.DeepEqual(incremental.Sections, full.Sections) {
		t.Fatalf("incremental reparse diverged from full reparse:\nincremental=%+v\nfull=%+v", incremental.Sections, full.Sections)
	}
}
