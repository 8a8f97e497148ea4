package analyzer

import (
	"sort"

	"github.com/assforge/ass/assutil"
)

// ParseTagSequence parses a flat backslash-tag run such as the tag-list
// portion of a \t(...) animation's argument (already stripped of any
// leading numeric timing/accel parameters) into its constituent tags.
// This is the same splitter ScanOverrides uses for a brace-delimited
// block's contents, exposed directly since \t's tag list is never itself
// wrapped in braces.
func ParseTagSequence(text string) ([]OverrideTag, []assutil.ParseIssue) {
	return parseBlockTags(text, 0)
}

// OverrideTag is one `\name[args]` directive extracted from an override
// block. Offset is the byte position of the tag's leading backslash within
// the event's text field, so a caller can map a tag back to a cursor
// position without re-scanning.
type OverrideTag struct {
	Name   string
	Args   string
	Offset int
}

// knownTagNames is the closed set of override tag names ASS renderers
// recognize, used to split a bare (unparenthesized) tag body like "b1" or
// "fscx120" into name + argument. Ambiguous prefixes (fad/fade, k/kf/ko/kt,
// fs/fscx/fscy/fsp) are resolved by matching the longest name first, so the
// table only needs to be correct, not manually ordered.
var knownTagNames = sortedByLengthDesc([]string{
	"alpha", "move", "clip", "fade", "blur", "bord", "shad",
	"fscx", "fscy", "fsp", "frx", "fry", "frz", "fax", "fay",
	"xbord", "ybord", "xshad", "yshad", "iclip",
	"1c", "2c", "3c", "4c", "1a", "2a", "3a", "4a",
	"fad", "org", "pos", "pbo",
	"kf", "ko", "kt", "K", "k",
	"fn", "fs", "fe", "fr",
	"an", "a", "b", "i", "u", "s", "p", "q", "r", "c", "t",
})

func sortedByLengthDesc(names []string) []string {
	out := append([]string(nil), names...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// splitTagBody splits the text following a tag's backslash into name and
// argument. When body contains a '(', the part before it is always the
// name (the argument-list tags: move, pos, org, fad, fade, clip, iclip, t,
// are never ambiguous once a paren is present). Otherwise the name is
// resolved against knownTagNames by greedy longest match.
func splitTagBody(body string) (name, args string, ok bool) {
	if idx := indexByte(body, '('); idx >= 0 {
		name = body[:idx]
		args = parenArgs(body[idx:])
		return name, args, true
	}
	for _, n := range knownTagNames {
		if hasPrefix(body, n) {
			return n, body[len(n):], true
		}
	}
	return leadingLetters(body), trimLeadingLetters(body), false
}

// parenArgs strips the outer parens from "(...)", tolerating an unterminated
// trailing list (malformed input that ran out of text before a close paren).
func parenArgs(s string) string {
	if len(s) == 0 || s[0] != '(' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i]
			}
		}
	}
	return s[1:]
}

func leadingLetters(s string) string {
	i := 0
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	return s[:i]
}

func trimLeadingLetters(s string) string {
	i := 0
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	return s[i:]
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
