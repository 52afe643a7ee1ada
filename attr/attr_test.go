package attr

import (
	"testing"

	"github.com/Drolfothesgnir/bbcode/cursor"
	"github.com/stretchr/testify/require"
)

func parseAfterName(t *testing.T, p Parser, input string) (Result, *cursor.Cursor) {
	t.Helper()
	c := cursor.New(input)
	res := p.Parse(c, "tag")
	return res, c
}

func TestDirect_FallbackOnly(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	res, c := parseAfterName(t, p, `=7]rest`)

	require.True(t, res.Valid)
	require.Equal(t, []Pair{{Key: "", Value: "7"}}, res.Attributes)
	require.Equal(t, "=7", res.Raw)
	require.Equal(t, "]", res.Closer)
	require.Equal(t, "rest", c.Rest())
}

func TestDirect_FallbackAndNamed(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	res, _ := parseAfterName(t, p, `=bar key="val ue" n=2]`)

	require.True(t, res.Valid)
	require.Equal(t, []Pair{
		{Key: "", Value: "bar"},
		{Key: "key", Value: "val ue"},
		{Key: "n", Value: "2"},
	}, res.Attributes)
}

func TestDirect_NoFallback(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	res, _ := parseAfterName(t, p, `]`)

	require.True(t, res.Valid)
	require.Equal(t, []Pair{{}}, res.Attributes)
	require.Equal(t, "", res.Raw)
}

func TestIndirect_NoFallbackEver(t *testing.T) {
	p := New(Options{Direct: false, Quote: QuoteDouble})
	res, _ := parseAfterName(t, p, ` key=val]`)

	require.True(t, res.Valid)
	require.Equal(t, []Pair{
		{Key: "", Value: ""},
		{Key: "key", Value: "val"},
	}, res.Attributes)
}

func TestIndirect_DirectSyntaxIsInvalid(t *testing.T) {
	p := New(Options{Direct: false, Quote: QuoteDouble})
	res, c := parseAfterName(t, p, `=bar far boo]x[/tag]`)

	require.False(t, res.Valid)
	require.Equal(t, []Pair{{}}, res.Attributes)
	require.Equal(t, "=bar far boo", res.Raw)
	require.Equal(t, "]", res.Closer)
	require.Equal(t, "x[/tag]", c.Rest())
}

func TestDirect_InvalidSkipsToNextBracket(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	// "far" has no '=', which is invalid mid-sequence syntax.
	res, c := parseAfterName(t, p, `=bar far boo]x[/tag]`)

	require.False(t, res.Valid)
	require.Equal(t, "=bar far boo", res.Raw)
	require.Equal(t, "]", res.Closer)
	require.Equal(t, "x[/tag]", c.Rest())
}

func TestInvalid_NoClosingBracketAtAll(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	res, c := parseAfterName(t, p, `=bar far`)

	require.False(t, res.Valid)
	require.Equal(t, "=bar far", res.Raw)
	require.Equal(t, "", res.Closer)
	require.Equal(t, "", c.Rest())
}

func TestQuotes_SingleConfigured(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteSingle})
	res, _ := parseAfterName(t, p, `='it is fine']`)

	require.True(t, res.Valid)
	require.Equal(t, "it is fine", res.Attributes[0].Value)
}

func TestQuotes_SingleConfigured_DoubleQuoteIsUnquoted(t *testing.T) {
	// With QuoteSingle configured, a leading '"' is not a quote delimiter at
	// all, so the value is scanned as an unquoted run up to whitespace/']'.
	p := New(Options{Direct: true, Quote: QuoteSingle})
	res, _ := parseAfterName(t, p, `="quoted"]`)

	require.True(t, res.Valid)
	require.Equal(t, `"quoted"`, res.Attributes[0].Value)
}

func TestQuotes_BothConfigured(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteBoth})

	res1, _ := parseAfterName(t, p, `="a b"]`)
	require.True(t, res1.Valid)
	require.Equal(t, "a b", res1.Attributes[0].Value)

	res2, _ := parseAfterName(t, p, `='a b']`)
	require.True(t, res2.Valid)
	require.Equal(t, "a b", res2.Attributes[0].Value)
}

func TestUnclosedQuoteIsInvalid(t *testing.T) {
	p := New(Options{Direct: true, Quote: QuoteDouble})
	res, _ := parseAfterName(t, p, `="unterminated]rest`)
	require.False(t, res.Valid)
}
