// Package bbcode implements the core of a forgiving BBCode processor: a
// scanner and tree builder that never aborts on malformed input, and a
// render engine driven by caller-supplied tag definitions.
package bbcode

import (
	"github.com/Drolfothesgnir/bbcode/attr"
	"github.com/Drolfothesgnir/bbcode/escape"
	"github.com/Drolfothesgnir/bbcode/textproc"
)

// Parser holds a definition registry and the configuration derived from
// Options. It is safe to reuse across sequential Parse/Render calls but,
// per spec §5, is not safe for concurrent use — construct one Parser per
// goroutine, or guard it externally.
type Parser struct {
	opts       Options
	attrParser attr.Parser
	pipeline   *textproc.Pipeline

	forbidden map[string]bool

	lastTree   Tree
	lastErrors []string
}

// New builds a Parser from the given Options, applying spec §6's defaults
// first.
func New(opts ...Option) *Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ap := o.attributeParser
	if ap == nil {
		ap = attr.New(attr.Options{Direct: o.directAttributes, Quote: o.attributeQuote})
	}

	return &Parser{
		opts:       o,
		attrParser: ap,
		pipeline: &textproc.Pipeline{
			Smileys:       o.smileys,
			URLFinder:     o.urlFinder,
			Linebreaks:    o.linebreaks,
			TextProcessor: o.textProcessor,
			Custom:        o.fullTextProcessor,
		},
		forbidden: map[string]bool{},
	}
}

// lookup resolves a tag name to its Definition, honoring Forbid/Permit.
func (p *Parser) lookup(name string) (*Definition, bool) {
	if p.forbidden[name] {
		return nil, false
	}
	d, ok := p.opts.tags[name]
	if !ok {
		return nil, false
	}
	return &d, true
}

// Forbid disables the given tag names until a matching Permit call.
// Forbidden names behave exactly as unknown tag names during parsing.
func (p *Parser) Forbid(names ...string) {
	for _, n := range names {
		p.forbidden[n] = true
	}
}

// Permit re-enables tag names previously disabled by Forbid.
func (p *Parser) Permit(names ...string) {
	for _, n := range names {
		delete(p.forbidden, n)
	}
}

// Parse scans input into a Tree without rendering it.
func (p *Parser) Parse(input string) Tree {
	s := newScanner(p, input)
	tree := s.run()
	p.lastTree = tree
	p.lastErrors = s.errors
	return tree
}

// parseNested scans input as a %{parse}s directive's subtree. Unlike Parse,
// it seeds the scanner's nesting-class counters from ancestorClasses, so a
// directive that re-scans a tag's own content still enforces spec §4.3's
// nesting-class policy (e.g. url-in-url refusal) against the ancestry the
// tag was already parsed under, instead of starting the scan believing
// nothing is open above it. It does not touch p.lastTree/p.lastErrors —
// only a top-level Parse/Render call owns those.
func (p *Parser) parseNested(input string, ancestorClasses map[Class]int) Tree {
	s := newScanner(p, input)
	for c, n := range ancestorClasses {
		s.classCounts[c] = n
	}
	return s.run()
}

// Render parses input and renders the resulting tree in one call.
func (p *Parser) Render(input string) string {
	return p.RenderTree(p.Parse(input))
}

// RenderTree renders a previously parsed Tree.
func (p *Parser) RenderTree(tree Tree) string {
	r := &renderer{p: p}
	return r.renderNodes(tree, Info{Tags: map[string]int{}, Classes: map[string]int{}})
}

// Error returns the names of tags left unparsed or auto-closed during the
// last Parse or Render call.
func (p *Parser) Error() []string {
	out := make([]string, len(p.lastErrors))
	copy(out, p.lastErrors)
	return out
}

// GetTree returns the tree produced by the last Parse or Render call.
func (p *Parser) GetTree() Tree { return p.lastTree }

// EscapeHTML is the utility entry point spec §6 lists alongside the parser:
// HTML entity-escaping, exposed without requiring a Parser instance.
func EscapeHTML(s string) string { return escape.HTML(s) }
