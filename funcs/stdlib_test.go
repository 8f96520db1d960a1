package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversions(t *testing.T) {
	assert.Equal(t, 3, ToInt("3"))
	assert.Equal(t, 3, ToInt(3.9))
	assert.Equal(t, 0, ToInt(nil))
	assert.Equal(t, 140.4, ToFloat("140.4"))
	assert.Equal(t, 7.0, ToFloat(int64(7)))
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "12", ToString(12))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "turtle-tricks-part-2", Slugify("  Turtle Tricks: Part 2! "))
}

func TestValuesToDict(t *testing.T) {
	d, err := ValuesToDict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, d)

	_, err = ValuesToDict("a")
	assert.Error(t, err)
	_, err = ValuesToDict(1, 2)
	assert.Error(t, err)
}
