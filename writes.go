package lessongen

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteKind tells what a ResourceWrite takes its content from.
type WriteKind int

const (
	// Copy an existing file (or directory tree) from disk.
	WriteCopy WriteKind = iota

	// Write literal text.
	WriteText

	// Write literal bytes.
	WriteBytes

	// Render a template first and then write the result.  Render writes are only
	// executed after every other write of the same build has been written.
	WriteRender
)

func (k WriteKind) String() string {
	switch k {
	case WriteCopy:
		return "copy"
	case WriteText:
		return "text"
	case WriteBytes:
		return "bytes"
	case WriteRender:
		return "render"
	default:
		return "unknown"
	}
}

// RenderRequest is a deferred render.  It holds everything the Renderer needs
// to produce the text of a page, but nothing is read until Render is called.
type RenderRequest struct {
	// Name of the template used to wrap the content, eg "assignment.md"
	TemplateName string

	// Front matter for the written page.  Keys here win over the front matter
	// found in Content.
	FrontMatter map[string]any

	Title string

	// Directory the rendered page ends up in.  Template helpers that read files
	// (trinket, read_code, goal_image) resolve names against it.
	WorkingDir string

	// The body, possibly with its own front matter and template directives.
	Content string
}

// Params returns the keyword arguments handed to the Renderer.
func (r *RenderRequest) Params() map[string]any {
	fm := map[string]any{}
	for k, v := range r.FrontMatter {
		fm[k] = v
	}
	return map[string]any{
		"template_name":     r.TemplateName,
		"frontmatter":       fm,
		"title":             r.Title,
		"working_directory": r.WorkingDir,
		"content":           r.Content,
	}
}

// Renderer turns a template name plus keyword arguments into text.
type Renderer interface {
	Render(templateName string, params map[string]any) (string, error)
}

// A ResourceWrite pairs a source with a destination path.  Writes are values
// produced by the lesson tree and consumed by the build; they are never kept
// across builds.
type ResourceWrite struct {
	Kind WriteKind

	// Path of the file or directory to copy (WriteCopy)
	Source string

	// Literal content (WriteText / WriteBytes)
	Text string
	Data []byte

	// Deferred render (WriteRender)
	Request *RenderRequest

	// Where the content goes
	Dest string
}

// NewCopyWrite creates a write copying src to dest.  src must exist now, not
// just when the write is executed.
func NewCopyWrite(src, dest string) (*ResourceWrite, error) {
	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	return &ResourceWrite{Kind: WriteCopy, Source: src, Dest: dest}, nil
}

func NewTextWrite(text, dest string) *ResourceWrite {
	return &ResourceWrite{Kind: WriteText, Text: text, Dest: dest}
}

func NewBytesWrite(data []byte, dest string) *ResourceWrite {
	return &ResourceWrite{Kind: WriteBytes, Data: data, Dest: dest}
}

func NewRenderWrite(req RenderRequest, dest string) *ResourceWrite {
	return &ResourceWrite{Kind: WriteRender, Request: &req, Dest: dest}
}

// IsRender is true for writes that have to go through a Renderer first.
func (w *ResourceWrite) IsRender() bool {
	return w.Kind == WriteRender
}

// Ensures the parent directory of the destination exists
func (w *ResourceWrite) EnsureDir() error {
	return os.MkdirAll(filepath.Dir(w.Dest), 0755)
}

// Write puts the content at Dest.  Writing a path source twice simply
// overwrites.  Render writes return ErrRenderPending; call Render instead.
func (w *ResourceWrite) Write() error {
	switch w.Kind {
	case WriteCopy:
		info, err := os.Stat(w.Source)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, w.Source)
		}
		if info.IsDir() {
			return copyTree(w.Source, w.Dest)
		}
		if err := w.EnsureDir(); err != nil {
			return err
		}
		return copyFile(w.Source, w.Dest)
	case WriteText:
		if err := w.EnsureDir(); err != nil {
			return err
		}
		return os.WriteFile(w.Dest, []byte(w.Text), 0644)
	case WriteBytes:
		if err := w.EnsureDir(); err != nil {
			return err
		}
		return os.WriteFile(w.Dest, w.Data, 0644)
	case WriteRender:
		return fmt.Errorf("%w: %s", ErrRenderPending, w.Dest)
	}
	return fmt.Errorf("unknown write kind %d for %s", w.Kind, w.Dest)
}

// Render materializes a render write into a text write for the same
// destination.  The returned write still has to be written.
func (w *ResourceWrite) Render(r Renderer) (*ResourceWrite, error) {
	if !w.IsRender() {
		return w, nil
	}
	text, err := r.Render(w.Request.TemplateName, w.Request.Params())
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", w.Dest, err)
	}
	return NewTextWrite(text, w.Dest), nil
}

func (w *ResourceWrite) describeSource(rel func(string) string) string {
	switch w.Kind {
	case WriteCopy:
		return rel(w.Source)
	case WriteText:
		return fmt.Sprintf("<%d bytes>", len(w.Text))
	case WriteBytes:
		return fmt.Sprintf("<%d bytes>", len(w.Data))
	case WriteRender:
		return fmt.Sprintf("<Render %s>", filepath.Base(w.Request.WorkingDir))
	}
	return "<unknown>"
}

func (w *ResourceWrite) String() string {
	same := func(p string) string { return p }
	return w.describeSource(same) + " -> " + w.Dest
}

// Rel describes the write with paths relative to root where possible.
func (w *ResourceWrite) Rel(root string) string {
	rel := func(p string) string {
		if r, err := filepath.Rel(root, p); err == nil {
			return r
		}
		return p
	}
	return w.describeSource(rel) + " -> " + rel(w.Dest)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree copies the directory src into dest, overwriting existing files.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}
