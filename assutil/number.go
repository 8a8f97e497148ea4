package assutil

import "strconv"

// ParseInt parses a signed decimal integer field, returning (0, false) on
// malformed input so callers can degrade to a best-effort zero value plus
// a recorded Issue rather than aborting the parse.
func ParseInt(s string) (int, bool) {
	s = trimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat parses a decimal float field (ASS uses these for font size,
// scale, angle, spacing, etc.), tolerating a comma as decimal separator
// since some ASS exports localize it.
func ParseFloat(s string) (float64, bool) {
	s = trimSpace(s)
	if s == "" {
		return 0, false
	}
	normalized := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			normalized[i] = '.'
		} else {
			normalized[i] = s[i]
		}
	}
	v, err := strconv.ParseFloat(string(normalized), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBool parses ASS's "-1"/"0" boolean convention (also tolerates
// "1"/"0" and "true"/"false" for robustness against hand-edited files).
func ParseBool(s string) (bool, bool) {
	switch trimSpace(s) {
	case "-1", "1", "true", "True", "TRUE":
		return true, true
	case "0", "false", "False", "FALSE":
		return false, true
	default:
		return false, false
	}
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
