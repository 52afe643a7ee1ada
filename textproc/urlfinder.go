package textproc

import (
	"strings"

	"github.com/Drolfothesgnir/bbcode/escape"
)

// applyURLFinder performs the URL-detection pass of spec §4.4 step 2: a
// permissive "scheme://…" or "www.…" recognizer, over pending spans only,
// left to right, non-overlapping.
func applyURLFinder(spans []span, cfg URLFinderConfig) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.final {
			out = append(out, s)
			continue
		}
		out = append(out, splitURLs(s.text, cfg)...)
	}
	return out
}

func splitURLs(text string, cfg URLFinderConfig) []span {
	var out []span
	pendingStart := 0
	i := 0
	n := len(text)

	for i < n {
		urlLen := matchURL(text, i)
		if urlLen == 0 {
			i++
			continue
		}

		if i > pendingStart {
			out = append(out, span{text: text[pendingStart:i]})
		}

		url := text[i : i+urlLen]
		out = append(out, span{final: true, text: renderURL(cfg, url)})

		i += urlLen
		pendingStart = i
	}

	if pendingStart < n {
		out = append(out, span{text: text[pendingStart:n]})
	}
	if out == nil {
		out = []span{{text: text}}
	}
	return out
}

// matchURL reports the byte length of a URL starting at i, or 0 if none.
func matchURL(text string, i int) int {
	rest := text[i:]

	if strings.HasPrefix(rest, "www.") {
		return scanURLBody(rest)
	}

	scheme := scanScheme(rest)
	if scheme > 0 && strings.HasPrefix(rest[scheme:], "://") {
		return scanURLBody(rest)
	}

	return 0
}

// scanScheme matches [A-Za-z][A-Za-z0-9+.\-]* at the start of s and returns
// its length, or 0 if s doesn't start with a letter.
func scanScheme(s string) int {
	if len(s) == 0 {
		return 0
	}
	c := s[0]
	if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
		return 0
	}
	i := 1
	for i < len(s) {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '.' || c == '-' {
			i++
			continue
		}
		break
	}
	return i
}

// scanURLBody extends a match from the start of s until whitespace, a
// bracket that would belong to surrounding BBCode, or the end of string.
// Trailing punctuation commonly used to close a sentence is trimmed back
// off the match.
func scanURLBody(s string) int {
	end := 0
	for end < len(s) {
		c := s[end]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '[' || c == ']' {
			break
		}
		end++
	}
	for end > 0 {
		c := s[end-1]
		if c == '.' || c == ',' || c == ')' || c == '!' || c == '?' {
			end--
			continue
		}
		break
	}
	return end
}

func renderURL(cfg URLFinderConfig, url string) string {
	title := url
	if cfg.MaxLength > 0 && len(title) > cfg.MaxLength {
		title = title[:cfg.MaxLength] + "..."
	}
	// The URL-finder pass produces a final span: §4.4 step 3 only escapes
	// non-placeholder spans, so safety has to be baked in here. The href
	// itself only needs HTML-escaping, not URI percent-encoding, since its
	// path separators and scheme delimiter must survive intact.
	r := strings.NewReplacer("%u", escape.HTML(url), "%t", escape.HTML(title))
	return r.Replace(cfg.Format)
}
