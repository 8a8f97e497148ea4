// Package ass is the root facade tying the ASS subtitle toolchain's
// layers together: parse/serialize (parser), incremental reparse
// (reparse), the mutable text store and undo stack (document, edit,
// history), multi-document sessions (session), and the rendering
// pipeline (render/pipeline, render/shape, render/raster). Most callers
// only need this package; the subpackages remain independently usable
// for callers who want finer control over one layer.
package ass

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/parser"
	"github.com/assforge/ass/plugin"
	"github.com/assforge/ass/render/pipeline"
	"github.com/assforge/ass/render/raster"
	"github.com/assforge/ass/render/shape"
)

// DocumentSource is the read side of a parsed script a caller needs to
// drive editing or rendering without depending on *ast.Script directly.
type DocumentSource interface {
	Events() []ast.Event
	Styles() []ast.Style
	ScriptInfo() map[string]string
}

// DocumentSink is the write side: appending to a script's top-level
// collections in memory. It does not touch a backing document.Document's
// byte buffer or spans, so it suits callers assembling a *ast.Script from
// scratch (a converter, a programmatic script builder). Once a script is
// open in a document.Document, mutating it (including appending a new
// event/style) goes through the edit package's Command set instead, so
// the change stays byte-span-accurate and undoable via history.
type DocumentSink interface {
	AddEvent(ast.Event)
	AddStyle(ast.Style)
	SetScriptInfo(key, value string)
}

// scriptSource/scriptSink adapt *ast.Script to DocumentSource/
// DocumentSink without ast importing this package (ast is a leaf
// package; the adapter lives here instead).
type scriptSource struct{ script *ast.Script }

func (s scriptSource) Events() []ast.Event {
	var out []ast.Event
	for _, sec := range s.script.Sections {
		if sec.Kind == ast.SectionEvents {
			out = append(out, sec.Events...)
		}
	}
	return out
}

func (s scriptSource) Styles() []ast.Style {
	var out []ast.Style
	for _, sec := range s.script.Sections {
		if sec.Kind == ast.SectionStyles {
			out = append(out, sec.Styles...)
		}
	}
	return out
}

func (s scriptSource) ScriptInfo() map[string]string {
	out := make(map[string]string)
	for _, sec := range s.script.Sections {
		if sec.Kind != ast.SectionScriptInfo {
			continue
		}
		for _, kv := range sec.ScriptInfo {
			out[kv.Key] = kv.Value
		}
	}
	return out
}

type scriptSink struct{ script *ast.Script }

func (s scriptSink) AddEvent(ev ast.Event) {
	for i := range s.script.Sections {
		if s.script.Sections[i].Kind == ast.SectionEvents {
			s.script.Sections[i].Events = append(s.script.Sections[i].Events, ev)
			return
		}
	}
}

func (s scriptSink) AddStyle(st ast.Style) {
	for i := range s.script.Sections {
		if s.script.Sections[i].Kind == ast.SectionStyles {
			s.script.Sections[i].Styles = append(s.script.Sections[i].Styles, st)
			return
		}
	}
}

func (s scriptSink) SetScriptInfo(key, value string) {
	for i := range s.script.Sections {
		if s.script.Sections[i].Kind != ast.SectionScriptInfo {
			continue
		}
		for j, kv := range s.script.Sections[i].ScriptInfo {
			if kv.Key == key {
				s.script.Sections[i].ScriptInfo[j].Value = value
				return
			}
		}
		s.script.Sections[i].ScriptInfo = append(s.script.Sections[i].ScriptInfo, ast.KV{Key: key, Value: value})
		return
	}
}

// Source adapts a parsed script to DocumentSource.
func Source(script *ast.Script) DocumentSource { return scriptSource{script} }

// Sink adapts a parsed script to DocumentSink.
func Sink(script *ast.Script) DocumentSink { return scriptSink{script} }

// Parse parses an ASS script from source bytes, using the library's
// default limits.
func Parse(src []byte) (*ast.Script, []assutil.ParseIssue, error) {
	return parser.Parse(src, parser.DefaultLimits())
}

// Serialize renders a script back to ASS source text.
func Serialize(script *ast.Script) string {
	return parser.Serialize(script)
}

// FontLookup resolves a style's font name to the shape.Face fallback
// chain the shaper and rasterizer should try, in order.
type FontLookup func(name string) []shape.Face

// RenderFrame resolves every active event at tCs and paints it onto a
// fresh width x height frame, wiring render/pipeline, render/shape and
// render/raster together. registry may be nil; cache may be nil to skip
// cross-call glyph memoization. Returns an *assutil.RenderError if width
// or height is not a positive pixel count.
func RenderFrame(script *ast.Script, tCs assutil.Centiseconds, width, height int, fonts FontLookup, dpi float64, registry *plugin.ExtensionRegistry, cache *shape.GlyphCache) (raster.Frame, error) {
	layers := pipeline.Process(script, tCs, registry)
	return raster.Composite(layers, width, height, fonts, dpi, cache)
}
