package lessongen

import (
	"context"
	"os"
	"path/filepath"

	"github.com/panyam/lessongen/funcs"
	"github.com/panyam/lessongen/logging"
)

// Assignment is one unit of work under a lesson: a markdown file, or a
// directory with an _assignment.yaml plus loose text, program and image files.
type Assignment struct {
	Lesson *Lesson

	// Where the assignment lives, as named in the plan
	Path string

	Record *AssignmentRecord
}

func newAssignment(ctx context.Context, lesson *Lesson, path string) (*Assignment, error) {
	rec, err := lesson.Plan.resolver().Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Assignment{Lesson: lesson, Path: path, Record: rec}, nil
}

// Title of the assignment, NoTitle if it has none.
func (a *Assignment) Title() string {
	if a.Record.Title == "" {
		return NoTitle
	}
	return a.Record.Title
}

func (a *Assignment) Name() string {
	return a.Record.Name
}

func (a *Assignment) SourceDir() string {
	return a.Path
}

func (a *Assignment) DestDir() string {
	return filepath.Join(a.Lesson.DestDir(), a.Name())
}

// bodyText returns the markdown the page is rendered from: the "trinket" text,
// else the "index" text.
func (a *Assignment) bodyText() (string, bool, error) {
	for _, name := range []string{"trinket", "index"} {
		if path, ok := a.Record.Texts[name]; ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", false, err
			}
			return string(data), true, nil
		}
	}
	return "", false, nil
}

// Render prepares the assignment page.  Runnable blocks become trinket
// embeds of their code.  Nothing is read from the destination until the
// write is rendered.  Returns nil, with a warning, if there is no text.
func (a *Assignment) Render(ctx context.Context) (*ResourceWrite, error) {
	logger := logging.FromContext(ctx)
	text, found, err := a.bodyText()
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("No text content for assignment", "assignment", a.Name(), "path", a.Path)
		return nil, nil
	}

	content, _ := ExtractRunnable(text, a.Name(), func(code string, height float64) string {
		return funcs.TrinketIFrame(code, "100%", FormatHeight(height))
	})

	frontMatter := map[string]any{}
	for k, v := range a.Record.Meta {
		frontMatter[k] = v
	}
	frontMatter["title"] = a.Title()

	req := RenderRequest{
		TemplateName: "assignment.md",
		FrontMatter:  frontMatter,
		Title:        a.Title(),
		WorkingDir:   a.DestDir(),
		Content:      content,
	}
	return NewRenderWrite(req, filepath.Join(a.DestDir(), "index.md")), nil
}

// CollectWrites returns the copies of the assignment's programs and images,
// flattened into its destination directory, followed by its page.
func (a *Assignment) CollectWrites(ctx context.Context) (out []*ResourceWrite, err error) {
	logger := logging.FromContext(ctx)
	files := append(append([]string{}, a.Record.Sources...), a.Record.Resources...)
	for _, f := range files {
		w, err := NewCopyWrite(f, filepath.Join(a.DestDir(), filepath.Base(f)))
		if err != nil {
			logger.Error("Missing assignment file", "assignment", a.Path, "file", f, "error", err)
			return nil, err
		}
		out = append(out, w)
	}

	page, err := a.Render(ctx)
	if err != nil {
		return nil, err
	}
	if page != nil {
		out = append(out, page)
	} else {
		logger.Warn("Render returned nothing", "assignment", a.Name())
	}
	return out, nil
}

// SidebarEntry links to the assignment page.
func (a *Assignment) SidebarEntry() SidebarEntry {
	return SidebarEntry{
		Title: a.Title(),
		Path:  a.Lesson.Plan.URLPath(a.Lesson.Name(), a.Name()),
	}
}
