package escape

import "regexp"

// linkPattern matches an absolute scheme://... URL or a root-relative path.
var linkPattern = regexp.MustCompile(`^(?:/|[A-Za-z][A-Za-z0-9+.\-]*://)`)

// Link HTML-escapes s if it looks like a root-relative path or an absolute
// URL, and returns the empty string otherwise.
func Link(s string) string {
	if linkPattern.MatchString(s) {
		return HTML(s)
	}
	return ""
}
