package parser

import (
	"strconv"
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// Serialize renders a Script back to ASS text. The round-trip invariant is
// structural: parse(Serialize(parse(x))) has the same
// section order, same style/event count and same event texts as parse(x),
// though whitespace may be normalized and line endings are always LF.
func Serialize(script *ast.Script) string {
	var b strings.Builder
	for i, sec := range script.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		serializeSection(&b, script, sec)
	}
	return b.String()
}

func serializeSection(b *strings.Builder, script *ast.Script, sec ast.Section) {
	b.WriteByte('[')
	b.WriteString(sec.Name)
	b.WriteString("]\n")

	switch sec.Kind {
	case ast.SectionScriptInfo, ast.SectionUnknown:
		for _, kv := range sec.ScriptInfo {
			b.WriteString(kv.Key)
			b.WriteString(": ")
			b.WriteString(kv.Value)
			b.WriteByte('\n')
		}
	case ast.SectionStyles:
		format := ast.DefaultStyleFormat
		b.WriteString("Format: ")
		b.WriteString(strings.Join(format, ", "))
		b.WriteByte('\n')
		for _, st := range sec.Styles {
			b.WriteString("Style: ")
			b.WriteString(serializeStyleFields(st))
			b.WriteByte('\n')
		}
	case ast.SectionEvents:
		format := ast.DefaultEventFormat
		b.WriteString("Format: ")
		b.WriteString(strings.Join(format, ", "))
		b.WriteByte('\n')
		for _, ev := range sec.Events {
			b.WriteString(ev.Kind.String())
			b.WriteString(": ")
			b.WriteString(serializeEventFields(script, ev))
			b.WriteByte('\n')
		}
	case ast.SectionFonts, ast.SectionGraphics:
		for _, entry := range sec.Binaries {
			b.WriteString("fontname: ")
			b.WriteString(entry.Filename)
			b.WriteByte('\n')
			for _, line := range entry.Lines {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
}

// FormatStyleLine renders a Style as a standalone "Style: ..." source line
// (including the trailing newline), for callers that build new rows
// outside of a full Serialize pass (the edit package's style commands).
func FormatStyleLine(st ast.Style) string {
	return "Style: " + serializeStyleFields(st) + "\n"
}

// FormatEventLine renders one [Events] row from literal field values
// rather than a parsed Event's spans, for callers constructing a new row
// (the edit package's event-insert command) that has no source buffer yet
// to hold spans into.
func FormatEventLine(kind ast.EventKind, layer int, start, end assutil.Centiseconds, style, name string, marginL, marginR, marginV int, effect, text string) string {
	fields := []string{
		strconv.Itoa(layer),
		assutil.FormatTime(start),
		assutil.FormatTime(end),
		style,
		name,
		strconv.Itoa(marginL),
		strconv.Itoa(marginR),
		strconv.Itoa(marginV),
		effect,
		text,
	}
	return kind.String() + ": " + strings.Join(fields, ",") + "\n"
}

func serializeStyleFields(st ast.Style) string {
	boolStr := func(v bool) string {
		if v {
			return "-1"
		}
		return "0"
	}
	fields := []string{
		st.Name,
		st.Fontname,
		formatFloat(st.Fontsize),
		assutil.FormatColor(st.Primary),
		assutil.FormatColor(st.Secondary),
		assutil.FormatColor(st.Outline),
		assutil.FormatColor(st.Shadow),
		boolStr(st.Bold),
		boolStr(st.Italic),
		boolStr(st.Underline),
		boolStr(st.StrikeOut),
		formatFloat(st.ScaleX),
		formatFloat(st.ScaleY),
		formatFloat(st.Spacing),
		formatFloat(st.Angle),
		strconv.Itoa(int(st.BorderStyle)),
		formatFloat(st.OutlineWidth),
		formatFloat(st.ShadowDepth),
		strconv.Itoa(int(st.Alignment)),
		strconv.Itoa(st.MarginL),
		strconv.Itoa(st.MarginR),
		strconv.Itoa(st.MarginV),
		strconv.Itoa(st.Encoding),
	}
	return strings.Join(fields, ",")
}

func serializeEventFields(script *ast.Script, ev ast.Event) string {
	fields := []string{
		strconv.Itoa(ev.Layer),
		script.Text(ev.StartSpan),
		script.Text(ev.EndSpan),
		ev.Style,
		ev.Name,
		strconv.Itoa(ev.MarginL),
		strconv.Itoa(ev.MarginR),
		strconv.Itoa(ev.MarginV),
		ev.Effect,
		script.Text(ev.TextSpan),
	}
	return strings.Join(fields, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
