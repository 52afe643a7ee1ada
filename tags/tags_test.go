package tags_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/Drolfothesgnir/bbcode"
	"github.com/Drolfothesgnir/bbcode/tags"
)

// parseHTML wraps the rendered fragment in a body so goquery can walk it as
// a structured document rather than us substring-matching tag attributes.
func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + html + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func parser(opts ...bbcode.Option) *bbcode.Parser {
	all := append([]bbcode.Option{bbcode.WithTags(tags.Default())}, opts...)
	return bbcode.New(all...)
}

func TestDefault_SimpleInlineTags(t *testing.T) {
	p := parser()
	require.Equal(t, "<b>x</b>", p.Render("[b]x[/b]"))
	require.Equal(t, "<i>x</i>", p.Render("[i]x[/i]"))
	require.Equal(t, "<u>x</u>", p.Render("[u]x[/u]"))
	require.Equal(t, "<s>x</s>", p.Render("[s]x[/s]"))
}

func TestDefault_Size(t *testing.T) {
	p := parser()
	require.Equal(t, `<font size="12">big</font>`, p.Render("[size=12]big[/size]"))
}

func TestDefault_SizeRejectsNonNumeric(t *testing.T) {
	p := parser()
	// the num escape returns "" for anything that isn't a plain number.
	require.Equal(t, `<font size="">nope</font>`, p.Render("[size=abc]nope[/size]"))
}

func TestDefault_Img(t *testing.T) {
	p := parser()
	require.Equal(t, `<img src="http://example.com/a.png" alt="">`, p.Render("[img=http://example.com/a.png]"))
}

// Structural assertions via goquery, instead of substring matching, for
// outputs with more than one attribute or nested markup.
func TestDefault_UrlShortForm_Structural(t *testing.T) {
	p := parser()
	html := p.Render("[url://http://example.com|Example]")
	doc := parseHTML(t, html)

	a := doc.Find("a").First()
	require.Equal(t, 1, doc.Find("a").Length())
	href, ok := a.Attr("href")
	require.True(t, ok)
	require.Equal(t, "http://example.com", href)
	require.Equal(t, "Example", a.Text())
}

func TestDefault_Size_Structural(t *testing.T) {
	p := parser()
	html := p.Render("[size=14]readable[/size]")
	doc := parseHTML(t, html)

	font := doc.Find("font")
	require.Equal(t, 1, font.Length())
	size, ok := font.Attr("size")
	require.True(t, ok)
	require.Equal(t, "14", size)
	require.Equal(t, "readable", font.Text())
}

func TestDefault_Noparse(t *testing.T) {
	p := parser()
	require.Equal(t, "<pre> [b]x[/b] </pre>", p.Render("[noparse] [b]x[/b] [/noparse]"))
}

func TestDefault_UrlShortForm(t *testing.T) {
	p := parser()
	out := p.Render("[url://http://example.com|Example]")
	require.Equal(t, `<a href="http://example.com" rel="nofollow">Example</a>`, out)
}

// The url tag's href goes through the link escape, which rejects anything
// that isn't a root-relative path or an absolute scheme://... URL.
func TestDefault_Url_RejectsDangerousScheme(t *testing.T) {
	p := parser()
	out := p.Render("[url=javascript:alert(1)]x[/url]")
	require.Equal(t, `<a href="" rel="nofollow">x</a>`, out)
}

func TestDefault_Code_HighlightsWithoutCrashing(t *testing.T) {
	p := parser()
	out := p.Render("[code=go]package main[/code]")
	require.Contains(t, out, "package")
	require.Contains(t, out, "main")
}

func TestDefault_Code_FallsBackWithoutLanguageHint(t *testing.T) {
	p := parser()
	out := p.Render("[code]plain text with no obvious language[/code]")
	require.Contains(t, out, "plain text with no obvious language")
}
