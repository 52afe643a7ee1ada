package escape

import "regexp"

// numPattern matches an optionally-signed integer or decimal.
var numPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Num returns s unchanged if it is a plain integer or decimal number, and
// the empty string otherwise. Numbers need no HTML escaping: the pattern
// admits only digits, an optional leading '-' and an optional '.'.
func Num(s string) string {
	if numPattern.MatchString(s) {
		return s
	}
	return ""
}
