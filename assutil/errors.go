package assutil

import "fmt"

// Span is a byte offset range into a source buffer, [Start, End).
type Span struct {
	Start, End int
}

// Len reports the span's width in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.End <= s.Start }

// Severity classifies a recoverable ParseIssue.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// IssueCategory groups recoverable issues for editor/UI triage.
type IssueCategory int

const (
	CategoryFieldFormat IssueCategory = iota
	CategoryFieldCount
	CategoryTime
	CategoryColor
	CategoryNumeric
	CategoryStyleOverride
	CategoryDrawingCommand
	CategoryUUDecode
	CategoryUnknownSection
	CategoryDuplicateStyle
	CategoryCircularStyleReference
	CategoryMaxNesting
	CategoryUnsupportedVersion
	CategoryTiming
	CategoryReadability
	CategoryEmptyOverride
	CategoryUnmatchedBrace
	CategoryUnknownTag
	CategoryMissingReference
)

// ParseIssue is a recoverable parse-time diagnostic. The AST is still
// produced alongside a list of these; nothing in the core promotes a
// ParseIssue into a ParseError.
type ParseIssue struct {
	Severity Severity
	Category IssueCategory
	Message  string
	Span     Span
	Remedy   string
}

func (i ParseIssue) Error() string {
	if i.Remedy != "" {
		return fmt.Sprintf("%s: %s (try: %s)", i.Severity, i.Message, i.Remedy)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// ParseErrorKind enumerates the unrecoverable conditions that abort a
// whole parse: anything else degrades to a ParseIssue instead.
type ParseErrorKind int

const (
	ErrInvalidUTF8 ParseErrorKind = iota
	ErrInputTooLarge
	ErrOutOfMemory
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrInvalidUTF8:
		return "invalid UTF-8"
	case ErrInputTooLarge:
		return "input too large"
	case ErrOutOfMemory:
		return "out of memory"
	default:
		return "unknown parse error"
	}
}

// ParseError is unrecoverable: it aborts the whole parse and no AST is
// produced.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
	Span   Span
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

// EditorErrorKind enumerates the ways a command or document operation can
// fail.
type EditorErrorKind int

const (
	ErrPreconditionFailed EditorErrorKind = iota
	ErrOutOfBounds
	ErrUTF8Boundary
	ErrSessionLimitExceeded
	ErrDocumentNotFound
	ErrThreadSafety
	ErrStaleSpan
)

func (k EditorErrorKind) String() string {
	switch k {
	case ErrPreconditionFailed:
		return "precondition failed"
	case ErrOutOfBounds:
		return "out of bounds"
	case ErrUTF8Boundary:
		return "UTF-8 boundary violation"
	case ErrSessionLimitExceeded:
		return "session limit exceeded"
	case ErrDocumentNotFound:
		return "document not found"
	case ErrThreadSafety:
		return "thread safety violation"
	case ErrStaleSpan:
		return "stale span"
	default:
		return "unknown editor error"
	}
}

// EditorError reports a failed command or document operation. Per
// By convention, any EditorError leaves the document exactly as it was before
// the call that produced it.
type EditorError struct {
	Kind   EditorErrorKind
	Detail string
	Remedy string
}

func (e *EditorError) Error() string {
	if e.Remedy != "" {
		return fmt.Sprintf("%s: %s (try: %s)", e.Kind, e.Detail, e.Remedy)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewEditorError builds an EditorError with a remediation suggestion drawn
// from a fixed table so every kind has stable advice.
func NewEditorError(kind EditorErrorKind, detail string) *EditorError {
	return &EditorError{Kind: kind, Detail: detail, Remedy: editorRemedy[kind]}
}

var editorRemedy = map[EditorErrorKind]string{
	ErrPreconditionFailed:   "check the document state required by this command before issuing it",
	ErrOutOfBounds:          "clamp the position/range to [0, len_bytes()]",
	ErrUTF8Boundary:         "align the position to a UTF-8 rune boundary",
	ErrSessionLimitExceeded: "remove an idle session or raise the manager's memory ceiling",
	ErrDocumentNotFound:     "create the session before accessing it",
	ErrThreadSafety:         "do not call into the same document from two goroutines concurrently",
	ErrStaleSpan:            "re-resolve the span against the current document generation",
}

// RenderErrorKind enumerates the ways a render request can fail.
type RenderErrorKind int

const (
	ErrInvalidRenderInput RenderErrorKind = iota
	ErrBackend
	ErrUnsupportedOperation
)

func (k RenderErrorKind) String() string {
	switch k {
	case ErrInvalidRenderInput:
		return "invalid render input"
	case ErrBackend:
		return "backend error"
	case ErrUnsupportedOperation:
		return "unsupported operation"
	default:
		return "unknown render error"
	}
}

// RenderError reports a whole-frame render failure. Render operations never
// return a partial pixel buffer: on error, pixels is always nil.
type RenderError struct {
	Kind   RenderErrorKind
	Detail string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Internal marks a bug in the core itself rather than a caller/input
// problem, via a distinct "Internal" category.
type Internal struct {
	Detail string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal error: %s (please report this)", e.Detail)
}
