package bbcode

import (
	"github.com/Drolfothesgnir/bbcode/attr"
	"github.com/Drolfothesgnir/bbcode/escape"
	"github.com/Drolfothesgnir/bbcode/textproc"
)

// Options collects every knob spec §6 enumerates for `new(options)`. Build
// one with New's functional Option arguments rather than a struct literal:
// several fields have non-zero defaults (StrictAttributes, DirectAttributes,
// Linebreaks, StripLinebreaks all default true) that a bare zero-value
// Options would get wrong.
type Options struct {
	tags    map[string]Definition
	escapes *escape.Registry

	closeOpenTags    bool
	strictAttributes bool
	directAttributes bool
	attributeQuote   attr.Quote
	attributeParser  attr.Parser

	urlFinder *textproc.URLFinderConfig
	smileys   *textproc.SmileyConfig

	linebreaks      bool
	stripLinebreaks bool

	// textProcessor is the partial override of spec §4.4: it runs between
	// the URL-finder pass and the line-break pass.
	textProcessor textproc.Func

	// fullTextProcessor is the "" pseudo-tag override: it replaces the
	// entire pipeline.
	fullTextProcessor textproc.Func
}

// Option configures a Parser built with New.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		tags:             map[string]Definition{},
		escapes:          escape.NewDefault(),
		closeOpenTags:    false,
		strictAttributes: true,
		directAttributes: true,
		attributeQuote:   attr.QuoteDouble,
		linebreaks:       true,
		stripLinebreaks:  true,
	}
}

// WithTags registers tag definitions, merging over (and overriding) any
// already registered.
func WithTags(tags map[string]Definition) Option {
	return func(o *Options) {
		for name, def := range tags {
			o.tags[name] = def
		}
	}
}

// WithEscapes merges additional named escapes over the C1 defaults.
func WithEscapes(escapes map[string]escape.Func) Option {
	return func(o *Options) {
		for name, fn := range escapes {
			o.escapes.Register(name, fn)
		}
	}
}

func WithCloseOpenTags(v bool) Option    { return func(o *Options) { o.closeOpenTags = v } }
func WithStrictAttributes(v bool) Option { return func(o *Options) { o.strictAttributes = v } }
func WithDirectAttributes(v bool) Option { return func(o *Options) { o.directAttributes = v } }
func WithAttributeQuote(q attr.Quote) Option {
	return func(o *Options) { o.attributeQuote = q }
}

// WithAttributeParser replaces the built-in C2 dialect parser entirely, the
// pluggable seam spec §4.2 describes.
func WithAttributeParser(p attr.Parser) Option {
	return func(o *Options) { o.attributeParser = p }
}

func WithURLFinder(cfg textproc.URLFinderConfig) Option {
	return func(o *Options) { o.urlFinder = &cfg }
}

func WithSmileys(cfg textproc.SmileyConfig) Option {
	return func(o *Options) { o.smileys = &cfg }
}

func WithLinebreaks(v bool) Option      { return func(o *Options) { o.linebreaks = v } }
func WithStripLinebreaks(v bool) Option { return func(o *Options) { o.stripLinebreaks = v } }

// WithTextProcessor installs a partial pipeline override (spec §4.4): the
// library still runs URL-finder before it and line-breaks after it.
func WithTextProcessor(fn textproc.Func) Option {
	return func(o *Options) { o.textProcessor = fn }
}

// WithFullTextProcessor installs the "" pseudo-tag override: it replaces
// smiley/URL/escape/line-break processing entirely.
func WithFullTextProcessor(fn textproc.Func) Option {
	return func(o *Options) { o.fullTextProcessor = fn }
}
