package bbcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Drolfothesgnir/bbcode"
	"github.com/Drolfothesgnir/bbcode/tags"
)

func defaultParser(opts ...bbcode.Option) *bbcode.Parser {
	all := append([]bbcode.Option{bbcode.WithTags(tags.Default())}, opts...)
	return bbcode.New(all...)
}

// Scenario #1 (spec §8): a plain classic tag renders via its template.
func TestScenario_SimpleTag(t *testing.T) {
	p := defaultParser()
	require.Equal(t, "<b>hello</b>", p.Render("[b]hello[/b]"))
}

// Scenario: parse=false content (noparse) is copied verbatim, untouched by
// nested tag syntax.
func TestScenario_Noparse(t *testing.T) {
	p := defaultParser()
	require.Equal(t, "<pre> [b]x[/b] </pre>", p.Render("[noparse] [b]x[/b] [/noparse]"))
}

// Scenario: an unclosed tag at EOF under close_open_tags=false stays
// unclosed and renders transparently (its delimiters are literal).
func TestScenario_UnclosedTag_CloseOpenTagsFalse(t *testing.T) {
	p := defaultParser(bbcode.WithCloseOpenTags(false))
	out := p.Render("[b]hello")
	require.Equal(t, "[b]hello", out)
	require.Contains(t, p.Error(), "b")
}

// Scenario: the same input under close_open_tags=true synthesizes the
// closer and renders through the template instead.
func TestScenario_UnclosedTag_CloseOpenTagsTrue(t *testing.T) {
	p := defaultParser(bbcode.WithCloseOpenTags(true))
	out := p.Render("[b]hello")
	require.Equal(t, "<b>hello</b>", out)
	require.Contains(t, p.Error(), "b")
}

// Scenario: url-class tags render with their href built from the fallback
// attribute through the uri escape, while their children are rendered
// through the template's %{parse}s directive.
func TestScenario_URLClassTag(t *testing.T) {
	p := defaultParser()
	out := p.Render("[wikipedia=Go]Go[/wikipedia]")
	require.Equal(t, `<a href="http://w/?q=Go">Go</a>`, out)
}

// Invariant 4 (spec §8): no url-class tag ever has a url-class descendant,
// even when the outer tag's template re-parses its own content via
// %{parse}s — the inner url-class open already got refused as literal text
// during the original scan, and re-evaluating %{parse}s must not revive it
// by losing track of the ancestry it was refused under.
func TestInvariant_NoURLClassDescendant_ViaParseDirective(t *testing.T) {
	p := defaultParser(bbcode.WithCloseOpenTags(true))
	out := p.Render("[wikipedia]a[wikipedia=other]b[/wikipedia]c[/wikipedia]")
	require.NotContains(t, out, "<a href=\"http://w/?q=other\"")
	require.Equal(t, 1, strings.Count(out, "<a "))
}

// Scenario #9: under strict_attributes=true, a syntactically invalid
// attribute region rejects the whole tag as unparsed, echoing it back
// literally, close tag included.
func TestScenario_StrictAttributes_LiteralEcho(t *testing.T) {
	p := defaultParser(bbcode.WithStrictAttributes(true))
	input := "[foo=bar far boo]x[/foo]"
	require.Equal(t, input, p.Render(input))
}

// Under strict_attributes=false the same malformed attributes still let
// the tag proceed, but empty.
func TestScenario_StrictAttributesFalse_StillUnknownName(t *testing.T) {
	p := defaultParser(bbcode.WithStrictAttributes(false))
	input := "[foo=bar far boo]x[/foo]"
	// "foo" still isn't a registered tag, so the tag is still unparsed
	// regardless of strict_attributes: unknown names always echo literally.
	require.Equal(t, input, p.Render(input))
}

// Isolating strict_attributes from name-recognition: "b" is a registered
// tag, so invalid attribute syntax is the only thing that can make it
// unparsed here.
func TestScenario_StrictAttributes_KnownTagBadAttrs(t *testing.T) {
	strict := defaultParser(bbcode.WithStrictAttributes(true))
	input := "[b=bar far boo]x[/b]"
	require.Equal(t, input, strict.Render(input))

	lenient := defaultParser(bbcode.WithStrictAttributes(false))
	require.Equal(t, "<b>x</b>", lenient.Render(input))
}

func TestScenario_ShortTag_RoundTrip(t *testing.T) {
	p := defaultParser()
	tree := p.Parse("[url://http://example.com|Example]")
	require.Equal(t, "[url://http://example.com|Example]", tree.RawText())
}

func TestScenario_SingleTag(t *testing.T) {
	p := defaultParser()
	out := p.Render(`[img=http://example.com/a.png]`)
	require.Equal(t, `<img src="http://example.com/a.png" alt="">`, out)
}

// Invariant 1 (spec §8): raw_text() always reconstructs the original input,
// across a range of inputs exercising different scanner paths.
func TestInvariant_RawTextRoundTrip(t *testing.T) {
	p := defaultParser(bbcode.WithCloseOpenTags(true))
	inputs := []string{
		"plain text, no tags at all",
		"[b]hello[/b]",
		"[b]hello",
		"[noparse] [b]x[/b] [/noparse]",
		"[url://http://example.com|Example]",
		"[img=http://example.com/a.png]",
		"[foo=bar far boo]x[/foo]",
		"[b]outer[i]inner[/b]tail[/i]",
		"unterminated [b",
		"[/b] stray close",
		"[b]\nline\n[/b]",
	}
	for _, in := range inputs {
		tree := p.Parse(in)
		require.Equal(t, in, tree.RawText(), "round-trip failed for %q", in)
	}
}

// Invariant: forbid(x) renders as if x were never registered at all.
func TestInvariant_ForbidPermit(t *testing.T) {
	p := defaultParser()
	p.Forbid("b")
	require.Equal(t, "[b]hello[/b]", p.Render("[b]hello[/b]"))
	p.Permit("b")
	require.Equal(t, "<b>hello</b>", p.Render("[b]hello[/b]"))
}

// Invariant: escape_html is intentionally not idempotent.
func TestInvariant_EscapeHTMLNotIdempotent(t *testing.T) {
	once := bbcode.EscapeHTML(`<b>&"'`)
	twice := bbcode.EscapeHTML(once)
	require.NotEqual(t, once, twice)
}

// A stray close tag with no matching open frame anywhere on the stack is
// left as literal text.
func TestScanner_StrayCloseTag(t *testing.T) {
	p := defaultParser()
	require.Equal(t, "[/b] stray close", p.Render("[/b] stray close"))
}

// The per-name occurrence counter starts at 0 and increments across
// sibling tags of the same name.
func TestScanner_SiblingOccurrenceCounter(t *testing.T) {
	p := defaultParser()
	tree := p.Parse("[b]one[/b][b]two[/b]")
	require.Len(t, tree, 2)
	first, ok := tree[0].(*bbcode.Tag)
	require.True(t, ok)
	second, ok := tree[1].(*bbcode.Tag)
	require.True(t, ok)
	require.Equal(t, 0, first.GetNum())
	require.Equal(t, 1, second.GetNum())
}

// strip_linebreaks trims exactly one leading newline after a block tag's
// opening delimiter and one trailing newline before its close, while still
// satisfying the round-trip invariant via closeLiteral/EndDelim bookkeeping.
func TestStripLinebreaks_TrimsSingleSurroundingNewline(t *testing.T) {
	p := defaultParser(bbcode.WithTags(map[string]bbcode.Definition{
		"quote": bbcode.Template("<blockquote>%s</blockquote>", bbcode.WithClass(bbcode.ClassBlock)),
	}), bbcode.WithStripLinebreaks(true))

	input := "[quote]\nhello\n[/quote]"
	out := p.Render(input)
	require.Equal(t, "<blockquote>hello</blockquote>", out)

	tree := p.Parse(input)
	require.Equal(t, input, tree.RawText())
}
