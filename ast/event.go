package ast

import "github.com/assforge/ass/assutil"

// EventKind enumerates the [Events] row types ASS allows.
type EventKind int

const (
	Dialogue EventKind = iota
	Comment
	Picture
	Sound
	Movie
	Command
)

func (k EventKind) String() string {
	switch k {
	case Dialogue:
		return "Dialogue"
	case Comment:
		return "Comment"
	case Picture:
		return "Picture"
	case Sound:
		return "Sound"
	case Movie:
		return "Movie"
	case Command:
		return "Command"
	default:
		return "Unknown"
	}
}

// ParseEventKind parses the ASS event-type name, returning (Dialogue,
// false) for anything unrecognized so a caller can still render the event
// with a best-effort kind while recording an Issue.
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case "Dialogue":
		return Dialogue, true
	case "Comment":
		return Comment, true
	case "Picture":
		return Picture, true
	case "Sound":
		return Sound, true
	case "Movie":
		return Movie, true
	case "Command":
		return Command, true
	default:
		return Dialogue, false
	}
}

// Event is one row of an [Events] section. Start/End are kept as source
// spans — parsed into Centiseconds on demand ("parsed
// on demand").
type Event struct {
	Kind  EventKind
	Layer int

	StartSpan, EndSpan assutil.Span

	Style  string
	Name   string
	Effect string

	MarginL, MarginR, MarginV int

	TextSpan assutil.Span

	Span assutil.Span
}

// Start parses the event's start time. Malformed times return (0, false);
// the analyzer records such cases as a ParseIssue rather than the parser
// failing outright.
func (e *Event) Start(script *Script) (assutil.Centiseconds, bool) {
	return assutil.ParseTime(script.Text(e.StartSpan))
}

// End parses the event's end time.
func (e *Event) End(script *Script) (assutil.Centiseconds, bool) {
	return assutil.ParseTime(script.Text(e.EndSpan))
}

// Text resolves the event's raw text field (override tags un-expanded).
func (e *Event) Text(script *Script) string {
	return script.Text(e.TextSpan)
}

// DefaultEventFormat is the field order used when an [Events] section has
// no Format: line.
var DefaultEventFormat = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}
