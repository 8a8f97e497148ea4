package shape

import "strings"

// hardBreakMarker is ASS's \N hard line break, written as its own
// constant since the two-character sequence is not a valid Go string
// escape and must be spelled out backslash-then-N explicitly.
const hardBreakMarker = `\` + "N"

// hardSegment is one \N-delimited piece of the input, with its byte
// offset into the original text preserved so cluster indices downstream
// stay correct.
type hardSegment struct {
	Text  string
	Start int
}

// splitHard splits text on the literal two-character \N hard line break
// sequence, tracking each piece's byte offset in the original string.
func splitHard(text string) []hardSegment {
	var out []hardSegment
	offset := 0
	for {
		idx := strings.Index(text[offset:], hardBreakMarker)
		if idx < 0 {
			out = append(out, hardSegment{Text: text[offset:], Start: offset})
			return out
		}
		out = append(out, hardSegment{Text: text[offset : offset+idx], Start: offset})
		offset += idx + len(hardBreakMarker)
	}
}

// word is one whitespace-delimited token within a hard segment, with its
// byte range relative to the segment's own start.
type word struct {
	Text       string
	Start, End int
}

func splitWords(segment string) []word {
	var words []word
	inWord := false
	start := 0
	for i, r := range segment {
		if r == ' ' || r == '\t' {
			if inWord {
				words = append(words, word{Text: segment[start:i], Start: start, End: i})
				inWord = false
			}
			continue
		}
		if !inWord {
			start = i
			inWord = true
		}
	}
	if inWord {
		words = append(words, word{Text: segment[start:], Start: start, End: len(segment)})
	}
	return words
}

// wrappedLine is one soft-wrapped output line: its byte range within the
// owning hard segment, plus the segment-relative text (words rejoined
// with a single space, matching how the words were measured).
type wrappedLine struct {
	Text       string
	Start, End int
}

// wrapWidth splits one hard-broken segment into soft-wrapped lines per
// wrapStyle, measuring each candidate word's advance with measure. Style
// 2 never wraps; styles 0/1 wrap at word boundaries to fit maxWidth;
// style 3 wraps the same way but then rebalances so the last line is not
// narrower than the one before it.
func wrapWidth(segment string, wrapStyle int, maxWidth int, measure func(string) int) []wrappedLine {
	if maxWidth <= 0 || wrapStyle == 2 {
		return []wrappedLine{{Text: segment, Start: 0, End: len(segment)}}
	}
	words := splitWords(segment)
	if len(words) == 0 {
		return []wrappedLine{{Text: segment, Start: 0, End: len(segment)}}
	}

	var lines []wrappedLine
	lineStart := words[0].Start
	curWidth := 0
	lastEnd := words[0].Start
	for i, w := range words {
		wWidth := measure(w.Text)
		sep := 0
		if i > 0 && lastEnd > lineStart {
			sep = measure(" ")
		}
		if lastEnd > lineStart && curWidth+sep+wWidth > maxWidth {
			lines = append(lines, wrappedLine{Text: segment[lineStart:lastEnd], Start: lineStart, End: lastEnd})
			lineStart = w.Start
			curWidth = 0
			sep = 0
		}
		curWidth += sep + wWidth
		lastEnd = w.End
	}
	lines = append(lines, wrappedLine{Text: segment[lineStart:lastEnd], Start: lineStart, End: lastEnd})

	if wrapStyle == 3 && len(lines) > 1 {
		lines = rebalanceLastWidest(lines, segment, measure)
	}
	return lines
}

// rebalanceLastWidest implements wrap style 3's "last line widest" rule:
// pull trailing words off the second-to-last line onto the last line
// until the last line is no longer narrower, or no more words can move.
func rebalanceLastWidest(lines []wrappedLine, segment string, measure func(string) int) []wrappedLine {
	n := len(lines)
	for measure(lines[n-1].Text) < measure(lines[n-2].Text) {
		prevWords := splitWords(lines[n-2].Text)
		if len(prevWords) <= 1 {
			break
		}
		moved := prevWords[len(prevWords)-1]
		newPrevEnd := lines[n-2].Start + moved.Start
		// Trim trailing whitespace left behind by the moved word.
		for newPrevEnd > lines[n-2].Start && (segment[newPrevEnd-1] == ' ' || segment[newPrevEnd-1] == '\t') {
			newPrevEnd--
		}
		lines[n-1].Start = lines[n-2].Start + moved.Start
		lines[n-2].End = newPrevEnd
		lines[n-2].Text = segment[lines[n-2].Start:lines[n-2].End]
		lines[n-1].Text = segment[lines[n-1].Start:lines[n-1].End]
	}
	return lines
}
