package lessongen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWriteRequiresSource(t *testing.T) {
	dir := t.TempDir()
	_, err := NewCopyWrite(filepath.Join(dir, "missing.py"), filepath.Join(dir, "out", "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestWritesCreateParentDirs(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	prog := writeFile(t, src, "prog.py", "print('hi')\n")

	cp, err := NewCopyWrite(prog, filepath.Join(dest, "a", "b", "prog.py"))
	require.NoError(t, err)
	require.NoError(t, cp.Write())
	// copies are idempotent
	require.NoError(t, cp.Write())

	txt := NewTextWrite("hello", filepath.Join(dest, "c", "hello.txt"))
	require.NoError(t, txt.Write())
	bin := NewBytesWrite([]byte{1, 2, 3}, filepath.Join(dest, "d", "e", "data.bin"))
	require.NoError(t, bin.Write())

	data, err := os.ReadFile(filepath.Join(dest, "a", "b", "prog.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(data))
	data, err = os.ReadFile(filepath.Join(dest, "c", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	data, err = os.ReadFile(filepath.Join(dest, "d", "e", "data.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestCopyWriteDirectory(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "site")
	writeFile(t, src, "images/a.png", "a")
	writeFile(t, src, "images/nested/b.png", "b")

	w, err := NewCopyWrite(filepath.Join(src, "images"), filepath.Join(dest, "images"))
	require.NoError(t, err)
	require.NoError(t, w.Write())
	assert.FileExists(t, filepath.Join(dest, "images", "a.png"))
	assert.FileExists(t, filepath.Join(dest, "images", "nested", "b.png"))
}

func TestRenderWriteCannotBeWrittenDirectly(t *testing.T) {
	dest := t.TempDir()
	w := NewRenderWrite(RenderRequest{TemplateName: "assignment.md", WorkingDir: dest}, filepath.Join(dest, "index.md"))
	assert.True(t, w.IsRender())
	err := w.Write()
	assert.ErrorIs(t, err, ErrRenderPending)
	assert.NoFileExists(t, filepath.Join(dest, "index.md"))
}

func TestWriteDescriptions(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "plan/prog.py", "x")
	cp, err := NewCopyWrite(src, filepath.Join(root, "docs", "prog.py"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("plan", "prog.py")+" -> "+filepath.Join("docs", "prog.py"), cp.Rel(root))

	txt := NewTextWrite("hello", filepath.Join(root, "out.md"))
	assert.Equal(t, "<5 bytes> -> out.md", txt.Rel(root))

	r := NewRenderWrite(RenderRequest{WorkingDir: filepath.Join(root, "lessons", "spiral")}, filepath.Join(root, "x.md"))
	assert.Equal(t, "<Render spiral> -> "+filepath.Join(root, "x.md"), r.String())
}

// The rendered page embeds a program that a text write places next to it.
func orderingBatch(t *testing.T, dest string) (prog, page *ResourceWrite) {
	t.Helper()
	prog = NewTextWrite("print(1)\n", filepath.Join(dest, "spiral_1.py"))
	page = NewRenderWrite(RenderRequest{
		TemplateName: "lesson.md",
		FrontMatter:  map[string]any{"title": "Spiral"},
		WorkingDir:   dest,
		Content:      "# Spiral\n\n{{ trinket \"spiral_1.py\" \"100%\" \"106.8\" \"python\" }}\n",
	}, filepath.Join(dest, "index.md"))
	return
}

func TestNonRenderWritesBeforeRenders(t *testing.T) {
	dest := t.TempDir()
	prog, page := orderingBatch(t, dest)
	renderer := NewTemplateRenderer("")

	require.NoError(t, prog.Write())
	rendered, err := page.Render(renderer)
	require.NoError(t, err)
	require.NoError(t, rendered.Write())

	data, err := os.ReadFile(filepath.Join(dest, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#code=print%281%29")
	assert.Contains(t, string(data), "title: Spiral")
}

func TestRenderBeforeWritesFails(t *testing.T) {
	dest := t.TempDir()
	prog, page := orderingBatch(t, dest)
	renderer := NewTemplateRenderer("")

	_, err := page.Render(renderer)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, prog.Write())
	_, err = page.Render(renderer)
	assert.NoError(t, err)
}
