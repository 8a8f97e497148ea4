package pipeline

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// ActiveEvents returns every Dialogue event active at tCs: start_cs <= tCs
// < end_cs. Comments and other event kinds are excluded. Events whose
// Start/End fields fail to parse are skipped rather than treated as
// always-active.
func ActiveEvents(script *ast.Script, tCs assutil.Centiseconds) []*ast.Event {
	var active []*ast.Event
	for si := range script.Sections {
		sec := &script.Sections[si]
		if sec.Kind != ast.SectionEvents {
			continue
		}
		for ei := range sec.Events {
			ev := &sec.Events[ei]
			if ev.Kind != ast.Dialogue {
				continue
			}
			start, ok := ev.Start(script)
			if !ok {
				continue
			}
			end, ok := ev.End(script)
			if !ok {
				continue
			}
			if start <= tCs && tCs < end {
				active = append(active, ev)
			}
		}
	}
	return active
}
