package imageset

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTruncates(t *testing.T) {
	images := []string{"a", "b", "c", "d"}
	out := Append(images, []string{"e", "f"}, 5)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, images)
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 2, Remaining([]string{"a", "b", "c"}, 5))
	assert.Equal(t, 0, Remaining([]string{"a", "b", "c", "d", "e"}, 5))
	assert.Equal(t, 0, Remaining([]string{"a", "b", "c", "d", "e", "f"}, 5))
}

func TestRemove(t *testing.T) {
	out, found := Remove([]string{"A", "B", "C"}, "B")
	assert.True(t, found)
	assert.Equal(t, []string{"A", "C"}, out)

	out, found = Remove([]string{"A"}, "Z")
	assert.False(t, found)
	assert.Equal(t, []string{"A"}, out)
}

func TestPromote(t *testing.T) {
	out, changed := Promote([]string{"A", "B", "C"}, "C")
	assert.True(t, changed)
	assert.Equal(t, []string{"C", "A", "B"}, out)

	_, changed = Promote([]string{"A", "B"}, "A")
	assert.False(t, changed)

	_, changed = Promote([]string{"A", "B"}, "Z")
	assert.False(t, changed)
}

func TestReplaceAt(t *testing.T) {
	images := []string{"A", "B", "C"}
	out, old, err := ReplaceAt(images, 1, "X")
	require.NoError(t, err)
	assert.Equal(t, "B", old)
	assert.Equal(t, []string{"A", "X", "C"}, out)
	assert.Equal(t, "B", images[1])

	_, _, err = ReplaceAt(images, 3, "X")
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, _, err = ReplaceAt(images, -1, "X")
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}
