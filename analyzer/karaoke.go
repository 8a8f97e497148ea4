package analyzer

import "strings"

// KaraokeSegment is one \k/\K/\kf/\ko/\kt-delimited syllable: the tag name
// that opened it, its raw duration argument, and the plain text running up
// to the next karaoke tag (or the end of the event text).
type KaraokeSegment struct {
	TagName string
	Args    string
	Text    string
}

var karaokeTagNames = map[string]bool{"k": true, "K": true, "kf": true, "ko": true, "kt": true}

// ScanKaraoke splits an event's raw text into karaoke syllables. It
// resolves \N/\n/\h exactly as ScanOverrides does; every other override
// tag is stripped from the plain text without affecting segmentation, so
// only the karaoke tags themselves act as syllable boundaries. Text
// preceding the first karaoke tag belongs to no syllable and is dropped.
func ScanKaraoke(text string) []KaraokeSegment {
	var segments []KaraokeSegment
	var plain strings.Builder
	var pending *KaraokeSegment
	depth := 0
	blockStart := 0

	flush := func() {
		if pending != nil {
			pending.Text = plain.String()
			segments = append(segments, *pending)
			pending = nil
		}
		plain.Reset()
	}

	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		switch {
		case depth == 0 && c == '{':
			depth = 1
			blockStart = i + 1
			i++
		case depth == 0 && c == '\\' && i+1 < n && isPlainEscape(text[i+1]):
			switch text[i+1] {
			case 'N', 'n':
				plain.WriteByte('\n')
			case 'h':
				plain.WriteString(" ")
			}
			i += 2
		case depth == 0:
			plain.WriteByte(c)
			i++
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			if depth == 0 {
				block := text[blockStart:i]
				tags, _ := parseBlockTags(block, blockStart)
				for _, tg := range tags {
					if karaokeTagNames[tg.Name] {
						flush()
						pending = &KaraokeSegment{TagName: tg.Name, Args: tg.Args}
					}
				}
			}
			i++
		default:
			i++
		}
	}
	flush()
	return segments
}
