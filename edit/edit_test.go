package edit

import (
	"strings"
	"testing"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/parser"
)

const sampleScript = `[Script Info]
PlayResX: 384
PlayResY: 288

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:00.00,0:00:05.00,Default,,0,0,0,,Hello world
`

func newTestDoc(t *testing.T) *document.Document {
	t.Helper()
	script, issues, err := parser.Parse([]byte(sampleScript), parser.DefaultLimits())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", issues)
	}
	doc := document.New([]byte(sampleScript))
	doc.SetScript(script)
	return doc
}

func TestInsertTextInsertsAtPosition(t *testing.T) {
	doc := newTestDoc(t)
	pos := strings.Index(doc.Text(), "Hello world")
	res, err := InsertText{Pos: pos, Text: "XX"}.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.Success || !res.ContentChanged {
		t.Fatalf("result = %+v, want success+changed", res)
	}
	if !strings.Contains(doc.Text(), "XXHello world") {
		t.Errorf("text = %q, missing inserted prefix", doc.Text())
	}
}

func TestDeleteTextRemovesRange(t *testing.T) {
	doc := newTestDoc(t)
	start := strings.Index(doc.Text(), "Hello world")
	res, err := DeleteText{Range: document.Range{Start: start, End: start + len("Hello ")}}.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.ContentChanged {
		t.Error("expected ContentChanged for a nonempty delete")
	}
	if strings.Contains(doc.Text(), "Hello world") || !strings.Contains(doc.Text(), "world") {
		t.Errorf("text = %q, want \"Hello \" removed but \"world\" left", doc.Text())
	}
}

func TestReplaceTextSubstitutes(t *testing.T) {
	doc := newTestDoc(t)
	start := strings.Index(doc.Text(), "Hello world")
	end := start + len("Hello world")
	_, err := ReplaceText{Range: document.Range{Start: start, End: end}, Text: "Goodbye"}.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if strings.Contains(doc.Text(), "Hello world") || !strings.Contains(doc.Text(), "Goodbye") {
		t.Errorf("text = %q, want Hello world replaced with Goodbye", doc.Text())
	}
}

func TestInsertEventAppendsDialogueRow(t *testing.T) {
	doc := newTestDoc(t)
	before := strings.Count(doc.Text(), "Dialogue:")
	cmd := InsertEvent{
		Kind: ast.Dialogue, Style: "Default", Text: "Second line",
		Start: assutil.Centiseconds(500), End: assutil.Centiseconds(1000),
	}
	res, err := cmd.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.ContentChanged {
		t.Error("expected ContentChanged for InsertEvent")
	}
	after := strings.Count(doc.Text(), "Dialogue:")
	if after != before+1 {
		t.Fatalf("Dialogue rows = %d, want %d", after, before+1)
	}
	if !strings.Contains(doc.Text(), "Second line") {
		t.Errorf("text = %q, missing new event text", doc.Text())
	}
}

func TestCreateStyleAppendsStyleRow(t *testing.T) {
	doc := newTestDoc(t)
	before := strings.Count(doc.Text(), "Style:")
	st := ast.DefaultStyle()
	st.Name = "Alt"
	cmd := CreateStyle{Style: st}
	res, err := cmd.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.ContentChanged {
		t.Error("expected ContentChanged for CreateStyle")
	}
	after := strings.Count(doc.Text(), "Style:")
	if after != before+1 {
		t.Fatalf("Style rows = %d, want %d", after, before+1)
	}
	if !strings.Contains(doc.Text(), "Alt,") {
		t.Errorf("text = %q, missing new style row", doc.Text())
	}
}

func TestBatchRollsBackOnInnerFailure(t *testing.T) {
	doc := newTestDoc(t)
	before := doc.Text()
	batch := Batch{
		Desc: "insert then fail",
		Commands: []Command{
			InsertText{Pos: 0, Text: "ZZZ"},
			DeleteText{Range: document.Range{Start: -5, End: -1}}, // invalid range, forces failure
		},
	}
	_, err := batch.Execute(doc)
	if err == nil {
		t.Fatal("expected Batch.Execute to fail on its invalid second step")
	}
	if doc.Text() != before {
		t.Errorf("document was not fully rolled back: got %q, want original %q", doc.Text(), before)
	}
}

func TestBatchSucceedsAppliesAllSteps(t *testing.T) {
	doc := newTestDoc(t)
	batch := Batch{
		Desc: "two inserts",
		Commands: []Command{
			InsertText{Pos: 0, Text: "A"},
			InsertText{Pos: 1, Text: "B"},
		},
	}
	res, err := batch.Execute(doc)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.ContentChanged {
		t.Error("expected ContentChanged for a successful batch")
	}
	if !strings.HasPrefix(doc.Text(), "AB") {
		t.Errorf("text = %q, want to start with AB", doc.Text())
	}
}
