// Package tags is the non-core default HTML tag bundle spec §1 excludes
// from the library's core but that every worked example in spec §8 needs:
// b, i, u, s, url, img, size, noparse, wikipedia and a syntax-highlighting
// code tag.
package tags

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/Drolfothesgnir/bbcode"
)

// Default returns the tag definitions used throughout spec §8's concrete
// scenarios.
func Default() map[string]bbcode.Definition {
	return map[string]bbcode.Definition{
		"b": bbcode.Template("<b>%s</b>"),
		"i": bbcode.Template("<i>%s</i>"),
		"u": bbcode.Template("<u>%s</u>"),
		"s": bbcode.Template("<s>%s</s>"),

		"url": bbcode.Template(`url:<a href="%{link}A" rel="nofollow">%s</a>`,
			bbcode.WithParse(true), bbcode.WithShort()),

		"img": bbcode.Template(`<img src="%A" alt="">`,
			bbcode.WithSingle(), bbcode.WithParse(false)),

		"size": bbcode.Template(`<font size="%{num}a">%s</font>`),

		"noparse": bbcode.Template("<pre>%s</pre>",
			bbcode.WithParse(false)),

		"wikipedia": bbcode.Template(`url:<a href="http://w/?q=%{uri}A">%{parse}s</a>`),

		"code": bbcode.WithCallback(renderCode, bbcode.WithParse(false)),
	}
}

// renderCode syntax-highlights its content with chroma, using the fallback
// attribute as the language hint when present.
func renderCode(ctx *bbcode.CallbackContext) string {
	source := ctx.Content

	lexer := lexers.Get(strings.TrimSpace(ctx.Fallback))
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("swapoff")
	if style == nil {
		style = styles.Fallback
	}

	formatter := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "<pre>" + bbcode.EscapeHTML(source) + "</pre>"
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "<pre>" + bbcode.EscapeHTML(source) + "</pre>"
	}

	return "<pre class=\"highlight\">" + buf.String() + "</pre>"
}
