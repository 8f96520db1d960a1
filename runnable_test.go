package lessongen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRunnableWithoutCallback(t *testing.T) {
	md := "Intro\n\n```python.run\nprint(1)\n```\n\nOutro\n"
	out, programs := ExtractRunnable(md, "spiral", nil)

	assert.Equal(t, map[string]string{"spiral_1.py": "print(1)\n"}, programs)
	// the embed marker is the text/template call `{{ trinket "` rather than `trinket(`
	assert.Contains(t, out, `{{ trinket "spiral_1.py" "100%" "106.8" "python" }}`)
	assert.True(t, strings.HasPrefix(out, "Intro\n\n"))
	assert.True(t, strings.HasSuffix(out, "\n\nOutro\n"))
	assert.NotContains(t, out, "```")
}

func TestRunnableHeight(t *testing.T) {
	assert.InDelta(t, 140.4, RunnableHeight("a = 1\nb = 2\nprint(a + b)\n"), 1e-9)
	assert.InDelta(t, 106.8, RunnableHeight("print(1)\n"), 1e-9)
	assert.Equal(t, "140.4", FormatHeight(3*16.8+90))
	assert.Equal(t, "300", FormatHeight(300))
}

func TestExtractRunnableHeights(t *testing.T) {
	md := "```python.run\na = 1\nb = 2\nprint(a + b)\n```\n" +
		"```python.run:height='300'\nprint(2)\n```\n" +
		"```python.run: height=250,width='80%'\nprint(3)\n```\n"

	var heights []float64
	var codes []string
	out, programs := ExtractRunnable(md, "", func(code string, height float64) string {
		heights = append(heights, height)
		codes = append(codes, code)
		return fmt.Sprintf("[widget %d]", len(codes))
	})

	assert.Empty(t, programs)
	require.Len(t, heights, 3)
	assert.InDelta(t, 140.4, heights[0], 1e-9)
	assert.Equal(t, 300.0, heights[1])
	assert.Equal(t, 250.0, heights[2])
	assert.Equal(t, []string{"a = 1\nb = 2\nprint(a + b)\n", "print(2)\n", "print(3)\n"}, codes)
	assert.Equal(t, "[widget 1]\n[widget 2]\n[widget 3]\n", out)
}

func TestExtractRunnableCounterOrder(t *testing.T) {
	md := "```python.run\nfirst()\n```\n\n```python\nnot_runnable()\n```\n\n```python.run\nsecond()\n```\n"
	out, programs := ExtractRunnable(md, "lesson", nil)

	assert.Equal(t, map[string]string{
		"lesson_1.py": "first()\n",
		"lesson_2.py": "second()\n",
	}, programs)
	assert.Less(t, strings.Index(out, "lesson_1.py"), strings.Index(out, "lesson_2.py"))
	assert.Contains(t, out, "```python\nnot_runnable()\n```")

	// A second document starts counting again
	_, again := ExtractRunnable("```python.run\nx()\n```\n", "lesson", nil)
	assert.Contains(t, again, "lesson_1.py")
}

func TestExtractRunnableNoBlocks(t *testing.T) {
	md := "# Title\n\n```python\nprint(1)\n```\n"
	out, programs := ExtractRunnable(md, "x", nil)
	assert.Equal(t, md, out)
	assert.Empty(t, programs)
	assert.False(t, HasRunnable(md))
}

func TestExtractRunnableUnclosedBlock(t *testing.T) {
	md := "# Title\n\n```python.run\nprint(1)\n"
	out, programs := ExtractRunnable(md, "x", nil)
	assert.Equal(t, md, out)
	assert.Empty(t, programs)
}
