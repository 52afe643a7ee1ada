package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("hello")
	require.Equal(t, 0, c.Pos)
	require.Equal(t, "hello", c.Input)
}

func TestDoneAndLen(t *testing.T) {
	c := New("ab")
	require.False(t, c.Done())
	require.Equal(t, 2, c.Len())

	c.Advance(2)
	require.True(t, c.Done())
	require.Equal(t, 0, c.Len())
}

func TestRest(t *testing.T) {
	c := New("hello")
	c.Advance(2)
	require.Equal(t, "llo", c.Rest())
}

func TestPeekByte(t *testing.T) {
	c := New("ab")
	require.Equal(t, byte('a'), c.PeekByte())
	c.Advance(2)
	require.Equal(t, byte(0), c.PeekByte())
}

func TestPeekByteAt(t *testing.T) {
	c := New("abc")
	require.Equal(t, byte('b'), c.PeekByteAt(1))
	require.Equal(t, byte(0), c.PeekByteAt(10))
	require.Equal(t, byte(0), c.PeekByteAt(-1))
}

func TestHasPrefix(t *testing.T) {
	c := New("[quote]")
	require.True(t, c.HasPrefix("[quote"))
	require.False(t, c.HasPrefix("[b]"))
}

func TestAdvanceClampsToInputLength(t *testing.T) {
	c := New("ab")
	c.Advance(10)
	require.Equal(t, 2, c.Pos)
	require.True(t, c.Done())
}

func TestSkipWhitespace(t *testing.T) {
	c := New("  \t\n x")
	c.SkipWhitespace()
	require.Equal(t, byte('x'), c.PeekByte())
}

func TestIndexFrom(t *testing.T) {
	c := New("a[b]c")
	require.Equal(t, 1, c.IndexFrom('['))
	require.Equal(t, -1, c.IndexFrom('/'))

	c.Advance(2)
	require.Equal(t, 3, c.IndexFrom(']'))
}

func TestSlice(t *testing.T) {
	c := New("hello world")
	c.Advance(6)
	require.Equal(t, "world", c.Slice(len(c.Input)))
}
