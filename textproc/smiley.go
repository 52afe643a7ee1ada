package textproc

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Drolfothesgnir/bbcode/escape"
)

// applySmileys performs the left-to-right, non-overlapping smiley
// substitution of spec §4.4 step 1. A token only matches when flanked by
// whitespace or the start/end of the span; matched tokens become final
// spans, everything else stays pending for later stages.
func applySmileys(spans []span, cfg SmileyConfig) []span {
	if len(cfg.Icons) == 0 {
		return spans
	}

	tokens := make([]string, 0, len(cfg.Icons))
	for tok := range cfg.Icons {
		tokens = append(tokens, tok)
	}
	// Longest-first so an icon whose token is a prefix of another doesn't
	// shadow the longer, more specific one.
	sort.Slice(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })

	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.final {
			out = append(out, s)
			continue
		}
		out = append(out, splitSmileys(s.text, tokens, cfg)...)
	}
	return out
}

func splitSmileys(text string, tokens []string, cfg SmileyConfig) []span {
	var out []span
	pendingStart := 0
	i := 0
	n := len(text)

	for i < n {
		matched := ""
		for _, tok := range tokens {
			if tok == "" || !strings.HasPrefix(text[i:], tok) {
				continue
			}
			if !boundaryOK(text, i, i+len(tok)) {
				continue
			}
			matched = tok
			break
		}

		if matched == "" {
			i++
			continue
		}

		if i > pendingStart {
			out = append(out, span{text: text[pendingStart:i]})
		}

		icon := cfg.Icons[matched]
		rendered := renderSmiley(cfg.Format, cfg.BaseURL, icon, matched)
		out = append(out, span{final: true, text: rendered})

		i += len(matched)
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

func renderSmiley(format, baseURL, icon, token string) string {
	url := baseURL + icon
	r := strings.NewReplacer("%u", escape.HTML(url), "%a", escape.HTML(token))
	return r.Replace(format)
}

// boundaryOK reports whether the byte range [start,end) in text is flanked
// by whitespace or the string's edges, the same rule the teacher applies to
// infra-word symbols like underline (see markup/act_underline.go).
func boundaryOK(text string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsSpace(prev) {
			return false
		}
	}
	if end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if !unicode.IsSpace(next) {
			return false
		}
	}
	return true
}
