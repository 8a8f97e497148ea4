package ass

import (
	"strings"
	"testing"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/render/shape"
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

func TestParseSerializeRoundTrip(t *testing.T) {
	script, issues, err := Parse([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", issues)
	}
	out := Serialize(script)
	if !strings.Contains(out, "Hello world") {
		t.Errorf("serialized output missing event text: %q", out)
	}
	if !strings.Contains(out, "Style: Default") {
		t.Errorf("serialized output missing style row: %q", out)
	}
}

func TestSourceReportsEventsStylesAndScriptInfo(t *testing.T) {
	script, _, err := Parse([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	src := Source(script)
	if len(src.Events()) != 1 {
		t.Fatalf("Events() = %d, want 1", len(src.Events()))
	}
	if len(src.Styles()) != 1 {
		t.Fatalf("Styles() = %d, want 1", len(src.Styles()))
	}
	if src.ScriptInfo()["PlayResX"] != "384" {
		t.Errorf("ScriptInfo()[PlayResX] = %q, want 384", src.ScriptInfo()["PlayResX"])
	}
}

func TestSinkAddsEventStyleAndScriptInfo(t *testing.T) {
	script, _, err := Parse([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	sink := Sink(script)
	sink.AddEvent(ast.Event{Kind: ast.Dialogue, Style: "Default"})
	sink.AddStyle(ast.DefaultStyle())
	sink.SetScriptInfo("Title", "Test Script")

	src := Source(script)
	if len(src.Events()) != 2 {
		t.Fatalf("Events() = %d after AddEvent, want 2", len(src.Events()))
	}
	if len(src.Styles()) != 2 {
		t.Fatalf("Styles() = %d after AddStyle, want 2", len(src.Styles()))
	}
	if src.ScriptInfo()["Title"] != "Test Script" {
		t.Errorf("ScriptInfo()[Title] = %q, want %q", src.ScriptInfo()["Title"], "Test Script")
	}
}

func TestSetScriptInfoOverwritesExistingKey(t *testing.T) {
	script, _, err := Parse([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	Sink(script).SetScriptInfo("PlayResX", "1920")
	if Source(script).ScriptInfo()["PlayResX"] != "1920" {
		t.Error("SetScriptInfo should overwrite an existing key rather than duplicate it")
	}
}

func TestRenderFrameProducesNonEmptyFrame(t *testing.T) {
	script, _, err := Parse([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	fonts := func(name string) []shape.Face {
		return []shape.Face{{
			FontID:     name,
			UnitsPerEm: 1000,
			Fallback:   &shape.FallbackMetrics{AdvanceEm: 500, AscentEm: 800, DescentEm: 200},
		}}
	}
	frame, err := RenderFrame(script, assutil.Centiseconds(100), 384, 288, fonts, 72, nil, nil)
	if err != nil {
		t.Fatalf("RenderFrame error: %v", err)
	}
	if frame.Width != 384 || frame.Height != 288 {
		t.Fatalf("frame size = %dx%d, want 384x288", frame.Width, frame.Height)
	}
	opaque := false
	for i := 3; i < len(frame.Pixels); i += 4 {
		if frame.Pixels[i] != 0 {
			opaque = true
			break
		}
	}
	if !opaque {
		t.Error("expected at least one non-transparent pixel from the active dialogue line")
	}
}
