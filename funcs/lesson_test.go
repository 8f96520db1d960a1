package funcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<b>Hello</b> <i>world</i>"))
	assert.Equal(t, "", StripHTML(nil))
	assert.Equal(t, "", StripHTML(""))
}

func TestToYAML(t *testing.T) {
	out, err := ToYAML(map[string]any{"title": "Loops", "level": 1})
	require.NoError(t, err)
	assert.Equal(t, "level: 1\ntitle: Loops\n", out)

	for _, empty := range []any{nil, map[string]any{}, "", []string{}} {
		out, err := ToYAML(empty)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	}
}

func TestQuoteCode(t *testing.T) {
	assert.Equal(t, "print%28%22hi%20there%22%29", QuoteCode(`print("hi there")`))
	assert.Equal(t, "a/b%0Ac", QuoteCode("a/b\nc"))
	assert.Equal(t, "x%20%2B%201", QuoteCode("x + 1"))
}

func TestTrinketIFrame(t *testing.T) {
	out := TrinketIFrame("print(1)\n")
	assert.Equal(t,
		`<iframe width="300" height="500" src="https://trinket.io/tools/1.0/jekyll/embed/python#code=print%281%29" frameborder="0" marginwidth="0" marginheight="0" allowfullscreen></iframe>`,
		out)

	out = TrinketIFrame("x = 1", "100%", 140.4, "python3")
	assert.Contains(t, out, `width="100%"`)
	assert.Contains(t, out, `height="140.4"`)
	assert.Contains(t, out, "/embed/python3#code=x%20%3D%201")
}

func TestHelpersReadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "turtle_1.py"), []byte("import turtle\n"), 0644))
	h := &Helpers{WorkingDir: dir}

	code, err := h.ReadCode("turtle_1.py")
	require.NoError(t, err)
	assert.Equal(t, "import turtle\n", code)

	out, err := h.Trinket("turtle_1.py", "100%", "140.4", "python")
	require.NoError(t, err)
	assert.Contains(t, out, "#code=import%20turtle")
	assert.Contains(t, out, `height="140.4"`)

	_, err = h.Trinket("missing.py")
	assert.Error(t, err)

	assert.Equal(t,
		`<img src="./goal.png" alt="Your Goal" style="float: right; width: 200px; margin-bottom:20px; "/>`,
		h.GoalImage("images/goal.png"))
}

func TestRepoHelpers(t *testing.T) {
	h := &Helpers{}
	assert.Equal(t, "https://github.com/League-Java/Level1-Module2", h.RepoLink("Level1", "Module2"))
	assert.Equal(t, "", h.RepoLink("Level1", nil))
	assert.Equal(t, "", h.ForkRepo("", "Module2"))

	assert.Equal(t, "[Level1-Module2](https://github.com/League-Java/Level1-Module2)", h.RepoRef("Level1", "Module2"))
	assert.Contains(t, h.ForkRepo("Level1", "Module2"), `href="https://github.com/League-Java/Level1-Module2/generate"`)

	assert.Equal(t,
		"[View the Java source](https://github.com/League-Java/Level1-Module2/tree/master/src/_01_lesson/_02_assignment/)",
		h.JavaRef("Level1", "Module2", "_01_lesson", "_02_assignment", nil))
	assert.Equal(t,
		"[View the Java source](https://github.com/League-Java/Level1-Module2/tree/master/src/extra/)",
		h.JavaRef("Level1", "Module2", "_01_lesson", "_02_assignment", "/extra/"))

	custom := &Helpers{RepoURL: "https://git.example.com/{module}/{level}"}
	assert.Equal(t, "https://git.example.com/M/L", custom.RepoLink("L", "M"))
}

func TestFuncMapNames(t *testing.T) {
	fm := (&Helpers{}).FuncMap()
	for _, name := range []string{"trinket", "trinket_iframe", "read_code", "goal_image", "javaref", "reporef", "forkrepo"} {
		assert.Contains(t, fm, name)
	}
	defaults := DefaultFuncMap()
	for _, name := range []string{"strip_html", "yaml", "dict", "Slugify"} {
		assert.Contains(t, defaults, name)
	}
}
