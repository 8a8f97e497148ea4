package parser

// splitFields splits value into exactly n comma-separated fields, where
// the final field absorbs any remaining commas verbatim — this is how
// ASS's Events Text column ("the remainder of the line") is defined, and
// the parser applies the same rule uniformly to every row kind so a
// pathological Style row with an unescaped comma in, say, a font name
// degrades to "too many characters in the last field" rather than a hard
// field-count failure.
func splitFields(value string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	rest := value
	for i := 0; i < n-1; i++ {
		idx := indexByte(rest, ',')
		if idx < 0 {
			out = append(out, rest)
			rest = ""
			// Ran out of commas early: pad the remaining fields with "".
			for len(out) < n {
				out = append(out, "")
			}
			return out
		}
		out = append(out, rest[:idx])
		rest = rest[idx+1:]
	}
	out = append(out, rest)
	return out
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// fieldIndex returns the index of name within format, or -1.
func fieldIndex(format []string, name string) int {
	for i, f := range format {
		if equalFoldASCII(f, name) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
