package shape

import "golang.org/x/text/unicode/bidi"

// DetectDirection classifies a run of text's dominant direction by Unicode
// script: Arabic/Hebrew runs are RTL, Mongolian runs are TTB, and a mixed
// run picks whichever non-Common script appears most, falling back to LTR.
// bidi.Lookup resolves the per-rune bidi class; rune blocks beyond what
// bidi.Class covers (e.g. Mongolian, which bidi treats as a neutral LTR
// class) are classified directly by code point range.
func DetectDirection(text string) Direction {
	var rtl, ttb, other int
	for _, r := range text {
		switch {
		case isMongolian(r):
			ttb++
		case isRTLScript(r):
			rtl++
		case isCommonOrNeutral(r):
			// punctuation, digits, whitespace: contributes to neither count
		default:
			other++
		}
	}
	switch {
	case ttb > 0 && ttb >= rtl && ttb >= other:
		return TopToBottom
	case rtl > 0 && rtl >= other:
		return RightToLeft
	default:
		return LeftToRight
	}
}

func isMongolian(r rune) bool {
	return r >= 0x1800 && r <= 0x18AF
}

func isRTLScript(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x05FF: // Hebrew
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0700 && r <= 0x074F: // Syriac
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
		return true
	case r >= 0xFB1D && r <= 0xFB4F: // Hebrew presentation forms
		return true
	case r >= 0xFB50 && r <= 0xFDFF, r >= 0xFE70 && r <= 0xFEFF: // Arabic presentation forms
		return true
	}
	props, _ := bidi.Lookup([]byte(string(r)))
	return props.Class() == bidi.R || props.Class() == bidi.AL
}

func isCommonOrNeutral(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return true
	case (r >= 0x21 && r <= 0x2F) || (r >= 0x3A && r <= 0x40):
		return true // ASCII punctuation
	}
	return false
}
