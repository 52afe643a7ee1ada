package escape

import "regexp"

// emailPattern is a permissive email matcher, not an RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Email HTML-escapes s if it looks like an email address, and returns the
// empty string otherwise.
func Email(s string) string {
	if emailPattern.MatchString(s) {
		return HTML(s)
	}
	return ""
}
