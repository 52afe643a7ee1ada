package escape

import "strings"

// uriUnreserved reports whether b is in RFC 3986's unreserved set:
// ALPHA / DIGIT / "-" / "." / "_" / "~".
func uriUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	}
	return false
}

const hexDigits = "0123456789ABCDEF"

// URI percent-encodes every byte outside the RFC 3986 unreserved set (space
// becomes '+', form-encoding style, not '%20'), then HTML-escapes the result.
// The percent-encoding already turns '<', '>', '&', '"' and '\'' into %XX
// sequences, so the HTML pass leaves its output unchanged.
func URI(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case uriUnreserved(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}

	return HTML(b.String())
}
