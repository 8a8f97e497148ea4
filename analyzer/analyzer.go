package analyzer

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// EventAnalysis bundles everything the analyzer derives from one event:
// its override tags and shaped text, and the rendering-cost scores derived
// from them.
type EventAnalysis struct {
	Text       EventText
	Animation  int
	Complexity int
	Impact     PerformanceImpact
}

// ScriptAnalysis is a whole-document analysis pass: per-event scans plus
// section-wide findings (timing overlaps, validation issues) that can only
// be computed by looking at every event together.
type ScriptAnalysis struct {
	Events   map[*ast.Event]EventAnalysis
	Overlaps []TimingPair
	Issues   []assutil.ParseIssue
}

// Analyze runs the full analyzer pass over a script: override-tag scanning
// and cost scoring per event, a timing-overlap sweep per [Events] section,
// and document-wide validation.
func Analyze(script *ast.Script) ScriptAnalysis {
	result := ScriptAnalysis{Events: make(map[*ast.Event]EventAnalysis)}

	for si := range script.Sections {
		sec := &script.Sections[si]
		if sec.Kind != ast.SectionEvents {
			continue
		}

		starts := make([]assutil.Centiseconds, len(sec.Events))
		ends := make([]assutil.Centiseconds, len(sec.Events))
		for i := range sec.Events {
			ev := &sec.Events[i]
			text := ev.Text(script)
			scanned := ScanOverrides(text)
			anim := AnimationScore(scanned.Tags)
			complexity := ComplexityScore(scanned.Tags, len(scanned.Plain))
			result.Events[ev] = EventAnalysis{
				Text:       scanned,
				Animation:  anim,
				Complexity: complexity,
				Impact:     ImpactFromComplexity(complexity),
			}
			result.Issues = append(result.Issues, scanned.Issues...)

			if s, ok := ev.Start(script); ok {
				starts[i] = s
			}
			if e, ok := ev.End(script); ok {
				ends[i] = e
			}
		}
		result.Overlaps = append(result.Overlaps, DetectOverlaps(starts, ends)...)
	}

	result.Issues = append(result.Issues, Validate(script)...)
	return result
}
