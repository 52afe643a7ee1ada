package escape

import "regexp"

// hexColorPattern matches '#' followed by 3 or 6 hex digits.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// namedColors is a conservative set of color keywords: the CSS2.1 basics
// plus a few common extended names (pink, gold, cyan, lightblue, ...).
var namedColors = map[string]struct{}{
	"black": {}, "silver": {}, "gray": {}, "white": {}, "maroon": {}, "red": {},
	"purple": {}, "fuchsia": {}, "green": {}, "lime": {}, "olive": {}, "yellow": {},
	"navy": {}, "blue": {}, "teal": {}, "aqua": {}, "orange": {}, "brown": {},
	"pink": {}, "gold": {}, "violet": {}, "indigo": {}, "cyan": {}, "magenta": {},
	"lightgray": {}, "darkgray": {}, "lightblue": {}, "darkblue": {}, "lightgreen": {},
	"darkgreen": {}, "transparent": {},
}

// HTMLColor HTML-escapes s if it is a '#' + 3/6 hex-digit color or a
// recognized CSS color keyword, and returns the empty string otherwise.
func HTMLColor(s string) string {
	if hexColorPattern.MatchString(s) {
		return HTML(s)
	}
	if _, ok := namedColors[s]; ok {
		return HTML(s)
	}
	return ""
}
