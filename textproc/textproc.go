// Package textproc implements the fixed-order free-text pipeline described
// in spec §4.4: smiley substitution, URL detection, HTML escaping, and
// line-break rewriting, with two pluggable override points.
package textproc

import "github.com/Drolfothesgnir/bbcode/escape"

// Context carries the ancestry information the render engine threads through
// every text run: per-name tag occurrence counts and per-class counts,
// exactly as surfaced in a callback's "info" record (spec §4.5).
type Context struct {
	TagCounts   map[string]int
	ClassCounts map[string]int
}

// Func is the shape of a user-supplied replacement stage. It receives the
// unescaped text and the current ancestry context: as a Custom pipeline the
// raw run, as a TextProcessor the run with smiley and URL matches already
// rendered into it.
type Func func(text string, ctx Context) string

// SmileyConfig configures the smiley pass. Icons maps a literal token (e.g.
// ":)") to an icon file name; Format is an output template containing "%u"
// for the full icon URL and "%a" for the matched token itself.
type SmileyConfig struct {
	BaseURL string
	Icons   map[string]string
	Format  string
}

// URLFinderConfig configures the URL-detection pass. Format is an output
// template containing "%u" for the matched URL and "%t" for its (possibly
// truncated) title.
type URLFinderConfig struct {
	MaxLength int
	Format    string
}

// Pipeline is a configured instance of the text-processing pipeline. It is
// built as a struct literal (bbcode.New does so once per Parser) and reused
// across that parser's lifetime.
type Pipeline struct {
	Smileys       *SmileyConfig
	URLFinder     *URLFinderConfig
	Linebreaks    bool
	TextProcessor Func // partial override: runs between URL-finder and line-breaks
	Custom        Func // full override: replaces the entire pipeline
}

// span is one piece of a text run as it moves through the pipeline stages.
// A "final" span already carries its rendered output (a smiley icon tag, a
// rendered link, or the result of a custom processor) and is left untouched
// by every later stage; a "pending" span still carries raw source text.
type span struct {
	final bool
	text  string
}

// Process runs text through the configured pipeline and returns the result
// appropriate for splicing into rendered output.
func (p *Pipeline) Process(text string, ctx Context) string {
	if p.Custom != nil {
		return p.Custom(text, ctx)
	}

	spans := []span{{text: text}}

	if p.Smileys != nil {
		spans = applySmileys(spans, *p.Smileys)
	}

	skipURLs := ctx.ClassCounts["url"] > 0
	if p.URLFinder != nil && !skipURLs {
		spans = applyURLFinder(spans, *p.URLFinder)
	}

	if p.TextProcessor != nil {
		// Per spec §4.4: "URL-finder → user processor → line-break pass" —
		// the user processor sees the whole run, URLs already rendered,
		// and owns its own escaping.
		processed := p.TextProcessor(joinFinal(spans), ctx)
		return applyLinebreaks(processed, p.Linebreaks)
	}

	spans = mapPending(spans, func(s string) string {
		return applyLinebreaks(escape.HTML(s), p.Linebreaks)
	})
	return joinFinal(spans)
}

// mapPending applies fn to every pending span's text and marks the result
// final; spans already final are passed through unchanged.
func mapPending(spans []span, fn func(string) string) []span {
	out := make([]span, len(spans))
	for i, s := range spans {
		if s.final {
			out[i] = s
			continue
		}
		out[i] = span{final: true, text: fn(s.text)}
	}
	return out
}

func joinFinal(spans []span) string {
	total := 0
	for _, s := range spans {
		total += len(s.text)
	}
	buf := make([]byte, 0, total)
	for _, s := range spans {
		buf = append(buf, s.text...)
	}
	return string(buf)
}
