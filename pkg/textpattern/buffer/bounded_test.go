package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

func TestBounded_WriteWithinLimit(t *testing.T) {
	b := New("format", 10)

	require.NoError(t, b.WriteString("hello"))
	require.NoError(t, b.WriteRune(' '))
	require.NoError(t, b.Pad('*', 4))

	assert.Equal(t, "hello ****", b.String())
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, 0, b.Remaining())
}

func TestBounded_OverflowFailsClosed(t *testing.T) {
	b := New("format", 4)
	require.NoError(t, b.WriteString("abc"))

	err := b.WriteString("de")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tperrors.ErrMaxSize))
	assert.True(t, tperrors.IsCapacity(err))

	// Nothing from the failed append is committed.
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, 3, b.Len())

	require.NoError(t, b.WriteRune('d'))
	assert.Error(t, b.WriteRune('e'))
	assert.Error(t, b.Pad(' ', 1))
	assert.Equal(t, "abcd", b.String())
}

func TestBounded_CountsCharacters(t *testing.T) {
	b := New("map", 3)
	require.NoError(t, b.WriteString("äöü"))
	assert.Equal(t, 3, b.Len())
	assert.Error(t, b.WriteString("x"))
}

func TestBounded_Unlimited(t *testing.T) {
	b := New("map", Unlimited)
	assert.Equal(t, Unlimited, b.Remaining())
	assert.True(t, b.Fits(1<<30))
	require.NoError(t, b.Pad('x', 1000))
	assert.Equal(t, 1000, b.Len())
}

func TestBounded_PadNonPositive(t *testing.T) {
	b := New("format", 0)
	assert.NoError(t, b.Pad(' ', 0))
	assert.NoError(t, b.Pad(' ', -3))
	assert.Equal(t, "", b.String())
}

func TestBounded_Check(t *testing.T) {
	b := New("format", 5)
	assert.NoError(t, b.Check(5))
	assert.Error(t, b.Check(6))
}
