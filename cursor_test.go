package strand

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCursorPeek(t *testing.T) {
	c := NewCursor([]byte("ab"))

	b, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, byte('a'), b)

	// peek does not consume
	require.Equal(t, 0, c.Offset())
	require.Equal(t, 2, c.Len())

	_, ok = NewCursor(nil).Peek()
	require.False(t, ok)
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursor([]byte("abc"))

	next, err := c.Advance(2)
	require.NoError(t, err)
	require.Equal(t, 2, next.Offset())
	require.Equal(t, []byte("c"), next.Remaining())

	// the original cursor is unchanged
	require.Equal(t, 0, c.Offset())

	end, err := next.Advance(1)
	require.NoError(t, err)
	require.True(t, end.Done())

	_, err = end.Advance(1)
	require.ErrorIs(t, err, ErrOutOfBounds)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindOutOfBounds, kind)

	_, err = c.Advance(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCursorSliceUntil(t *testing.T) {
	c := NewCursor([]byte("aaab"))

	span, rest := c.SliceUntil(func(b byte) bool { return b == 'a' })
	require.Equal(t, []byte("aaa"), span)
	require.Equal(t, 3, rest.Offset())

	span, rest = rest.SliceUntil(func(b byte) bool { return b == 'a' })
	require.Empty(t, span)
	require.Equal(t, 3, rest.Offset())

	span, rest = rest.SliceUntil(func(b byte) bool { return true })
	require.Equal(t, []byte("b"), span)
	require.True(t, rest.Done())
}

func TestCursorHasPrefix(t *testing.T) {
	c := NewCursor([]byte("null,"))
	require.True(t, c.HasPrefix([]byte("null")))
	require.False(t, c.HasPrefix([]byte("true")))
	require.False(t, c.HasPrefix([]byte("null,null")))
}
