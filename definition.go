package bbcode

import "strings"

// CallbackContext is the single context record a callback Output receives,
// replacing the six-tuple positional signature the original implementation
// used (spec §9's re-architecture note).
type CallbackContext struct {
	Parser   *Parser
	Fallback string
	// Content is the already-rendered content when the definition's Parse
	// is true, and the raw unparsed content otherwise.
	Content string
	Tag     *Tag
	Info    Info
}

// Info reflects strict ancestry at the point a callback or template
// directive is evaluated.
type Info struct {
	Tags    map[string]int
	Stack   []string
	Classes map[string]int
}

// Callback renders a tag node directly, bypassing template interpretation.
type Callback func(ctx *CallbackContext) string

func (Callback) isOutput() {}

// TemplateOutput is a format-string template interpreted by the render
// engine (spec §4.5).
type TemplateOutput string

func (TemplateOutput) isOutput() {}

// Output is the tagged-variant replacement for the original's polymorphic
// "template string OR callback function" field (spec §9).
type Output interface {
	isOutput()
}

// Definition is a caller-supplied tag definition (spec §3's "Tag
// definition"). Build one with Template or WithCallback rather than a bare
// struct literal, so the spec's non-zero defaults (Classic=true,
// Close=true) are applied correctly.
type Definition struct {
	Output  Output
	Parse   bool
	Class   Class
	Single  bool
	Short   bool
	Classic bool
	Close   bool
}

// DefOption customizes a Definition built by Template or WithCallback,
// mirroring the TagDecorator pattern used for scum's Tag definitions.
type DefOption func(*Definition)

func WithClass(c Class) DefOption { return func(d *Definition) { d.Class = c } }
func WithParse(parse bool) DefOption { return func(d *Definition) { d.Parse = parse } }
func WithSingle() DefOption          { return func(d *Definition) { d.Single = true } }
func WithShort() DefOption           { return func(d *Definition) { d.Short = true } }
func WithoutClassic() DefOption      { return func(d *Definition) { d.Classic = false } }
func WithoutClose() DefOption        { return func(d *Definition) { d.Close = false } }

// Template builds a template-driven Definition. A "url:" prefix strips
// itself from the template and sets Class to ClassURL, the shorthand spec
// §4.5 describes for URL-class tags; an explicit WithClass option still
// overrides it.
func Template(tpl string, opts ...DefOption) Definition {
	class := ClassInline
	if strings.HasPrefix(tpl, "url:") {
		tpl = tpl[len("url:"):]
		class = ClassURL
	}

	d := Definition{
		Output:  TemplateOutput(tpl),
		Parse:   true,
		Class:   class,
		Classic: true,
		Close:   true,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithCallback builds a callback-driven Definition. Parse defaults to false
// unless overridden with WithParse(true) (spec §3: "false for callbacks
// unless explicitly true").
func WithCallback(fn Callback, opts ...DefOption) Definition {
	d := Definition{
		Output:  fn,
		Parse:   false,
		Class:   ClassInline,
		Classic: true,
		Close:   true,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
