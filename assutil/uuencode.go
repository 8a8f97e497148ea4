package assutil

// EncodeUU packs raw bytes into the UU-style text lines ASS uses for
// embedded [Fonts]/[Graphics] payloads: 3 source bytes become 4 output
// characters, each a 6-bit group offset by 33 so the result stays in a
// printable ASCII range, wrapped at lineWidth characters per line (ASS
// tooling conventionally uses 80). This is the encode half of the format
// the parser already preserves verbatim on decode; no pack example
// implements this encoding, so it is standard-library only by necessity.
func EncodeUU(data []byte, lineWidth int) []string {
	if lineWidth <= 0 {
		lineWidth = 80
	}
	var chars []byte
	for i := 0; i < len(data); i += 3 {
		chunk := [3]byte{}
		n := copy(chunk[:], data[i:min(i+3, len(data))])
		chars = append(chars, encodeGroup(chunk, n)...)
	}

	var lines []string
	for i := 0; i < len(chars); i += lineWidth {
		end := min(i+lineWidth, len(chars))
		lines = append(lines, string(chars[i:end]))
	}
	return lines
}

func encodeGroup(chunk [3]byte, n int) []byte {
	b0 := chunk[0] >> 2
	b1 := (chunk[0]&0x03)<<4 | chunk[1]>>4
	b2 := (chunk[1]&0x0f)<<2 | chunk[2]>>6
	b3 := chunk[2] & 0x3f
	out := []byte{b0 + 33, b1 + 33, b2 + 33, b3 + 33}
	return out[:n+1]
}
