package lessongen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/lessongen/logging"
)

// LessonDef is a lesson as declared in the plan file.
type LessonDef struct {
	// The key of the lesson in the plan's lessons mapping
	Name string `yaml:"-"`

	Title       string   `yaml:"title,omitempty"`
	Text        string   `yaml:"text,omitempty"`
	Resources   []string `yaml:"resources,omitempty"`
	Assignments []string `yaml:"assignments,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// Lesson is an entry of the plan's lessons mapping.  It may have a directory
// next to the plan file, but does not need one.
type Lesson struct {
	Plan *LessonPlan
	Def  LessonDef
}

func (l *Lesson) Name() string {
	return l.Def.Name
}

// SourceDir is the lesson's directory next to the plan file, "" if there is none.
func (l *Lesson) SourceDir() string {
	d := filepath.Join(l.Plan.PlanDir, l.Name())
	if !isDir(d) {
		return ""
	}
	return d
}

func (l *Lesson) DestDir() string {
	return filepath.Join(l.Plan.OutputDir, l.Name())
}

// TextPath finds the lesson body, in order: the text field (relative to the
// plan directory), <name>.md, <name>/index.md.  A lesson with a title in the
// plan needs no body and gets "".
func (l *Lesson) TextPath() (string, error) {
	base := filepath.Join(l.Plan.PlanDir, l.Name())
	switch {
	case l.Def.Text != "":
		return filepath.Join(l.Plan.PlanDir, l.Def.Text), nil
	case isFile(base + ".md"):
		return base + ".md", nil
	case l.SourceDir() != "" && isFile(filepath.Join(base, "index.md")):
		return filepath.Join(base, "index.md"), nil
	case l.Def.Title != "":
		return "", nil
	}
	return "", configError("finding lesson text for", l.Name(), ErrNoLessonText,
		"Add 'text: <filename>' to the lesson in the lesson plan",
		fmt.Sprintf("Create a '%s' directory with an index.md file", base),
		fmt.Sprintf("Create a '%s.md' file", base),
		"Define a title for the lesson in the lesson plan")
}

// Text returns the lesson body, "" for a title only lesson.
func (l *Lesson) Text() (string, error) {
	path, err := l.TextPath()
	if err != nil || path == "" {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: no lesson file %s", ErrNoLessonText, path)
	}
	return string(data), nil
}

// Title is the title in the plan, else the title in the body's front matter,
// else the body's first level 1 heading.
func (l *Lesson) Title() (string, error) {
	if l.Def.Title != "" {
		return l.Def.Title, nil
	}
	text, err := l.Text()
	if err != nil {
		return "", err
	}
	if meta, _, err := ParseFrontMatter(text); err == nil {
		if title, ok := stringValue(meta, "title"); ok && title != "" {
			return title, nil
		}
	}
	if h1 := FirstH1(text); h1 != "" {
		return h1, nil
	}
	return "", configError("finding title of lesson", l.Name(), ErrNoLessonTitle,
		"Add a title to the lesson text's front matter",
		"Start the lesson text with a level 1 heading",
		"Define a title for the lesson in the lesson plan")
}

// Assignments are created afresh on every call.
func (l *Lesson) Assignments(ctx context.Context) (out []*Assignment, err error) {
	for _, name := range l.Def.Assignments {
		path := filepath.Join(l.Plan.AssignmentsDir, name)
		if !exists(path) {
			return nil, configError(fmt.Sprintf("assignment %s of lesson %s", name, l.Name()), path, ErrAssignmentNotFound)
		}
		a, err := newAssignment(ctx, l, path)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return
}

// bodyWrites places the lesson body at index.md.  A body with runnable
// blocks has them saved as <lesson>_<n>.py next to it and is rendered so the
// embeds can read them.
func (l *Lesson) bodyWrites(ctx context.Context) ([]*ResourceWrite, error) {
	path, err := l.TextPath()
	if err != nil {
		return nil, err
	}
	if path == "" || !isFile(path) {
		return nil, nil
	}
	dest := filepath.Join(l.DestDir(), "index.md")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if !HasRunnable(text) {
		w, err := NewCopyWrite(path, dest)
		if err != nil {
			return nil, err
		}
		return []*ResourceWrite{w}, nil
	}

	content, programs := ExtractRunnable(text, l.Name(), nil)
	names := gfn.MapKeys(programs)
	sort.Strings(names)

	var out []*ResourceWrite
	for _, name := range names {
		out = append(out, NewTextWrite(programs[name], filepath.Join(l.DestDir(), name)))
	}

	frontMatter := map[string]any{}
	title, err := l.Title()
	if err == nil {
		frontMatter["title"] = title
	} else {
		logging.FromContext(ctx).Warn("Lesson has no title", "lesson", l.Name(), "error", err)
	}
	out = append(out, NewRenderWrite(RenderRequest{
		TemplateName: "lesson.md",
		FrontMatter:  frontMatter,
		Title:        title,
		WorkingDir:   l.DestDir(),
		Content:      content,
	}, dest))
	return out, nil
}

// CollectWrites returns the lesson body, the lesson's resources copied from
// the plan's assets directory and the writes of every assignment.
func (l *Lesson) CollectWrites(ctx context.Context) ([]*ResourceWrite, error) {
	logger := logging.FromContext(ctx)
	out, err := l.bodyWrites(ctx)
	if err != nil {
		return nil, err
	}

	for _, res := range l.Def.Resources {
		w, err := NewCopyWrite(filepath.Join(l.Plan.AssetsDir, res), filepath.Join(l.DestDir(), res))
		if err != nil {
			logger.Error("Missing lesson resource", "lesson", l.Name(), "resource", res, "error", err)
			return nil, err
		}
		out = append(out, w)
	}

	assignments, err := l.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		writes, err := a.CollectWrites(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, writes...)
	}
	return out, nil
}

// SidebarEntry is the lesson's navigation node with one child per
// assignment.  A lesson without a body file has no path.
func (l *Lesson) SidebarEntry(ctx context.Context) (SidebarEntry, error) {
	title, err := l.Title()
	if err != nil {
		return SidebarEntry{}, err
	}
	textPath, err := l.TextPath()
	if err != nil {
		return SidebarEntry{}, err
	}
	assignments, err := l.Assignments(ctx)
	if err != nil {
		return SidebarEntry{}, err
	}

	collapsable := false
	entry := SidebarEntry{
		Collapsable: &collapsable,
		Title:       title,
		Children:    gfn.Map(assignments, func(a *Assignment) SidebarEntry { return a.SidebarEntry() }),
	}
	if textPath != "" {
		entry.Path = l.Plan.URLPath(l.Name())
	}
	return entry, nil
}
