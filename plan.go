package lessongen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/panyam/lessongen/logging"
	"gopkg.in/yaml.v2"
)

// PlanFileName is the plan looked for when the plan location is a directory.
const PlanFileName = "lesson-plan.yaml"

// PlanFile is the content of lesson-plan.yaml.
type PlanFile struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Pages       []string `yaml:"pages"`
	Resources   []string `yaml:"resources"`
	Sidebar     []any    `yaml:"sidebar"`

	// Lessons in plan order
	Lessons yaml.MapSlice `yaml:"lessons"`

	Extra map[string]any `yaml:",inline"`
}

// LessonPlan is the root of the lesson tree.  It is loaded once per build;
// its lessons and assignments are recreated on every traversal.
type LessonPlan struct {
	// The plan file and the directory holding it
	PlanPath string
	PlanDir  string

	// The site generator's docs directory and its src directory
	DocsDir   string
	WebSrcDir string

	// Where lessons are written, <WebSrcDir>/<LessonsSubdir>
	LessonsSubdir string
	OutputDir     string

	// Shared assets, <PlanDir>/assets
	AssetsDir string

	// Where assignment names are resolved, PlanDir unless given
	AssignmentsDir string

	File *PlanFile

	Renderer Renderer
	Resolver *Resolver
	Hooks    *HookRegistry
}

// LoadLessonPlan reads the plan at planPath, either the plan file itself or
// the directory containing lesson-plan.yaml.
func LoadLessonPlan(planPath, docsDir, assignmentsDir, lessonsSubdir string) (*LessonPlan, error) {
	planPath = expandPath(planPath)
	p := &LessonPlan{}
	if isDir(planPath) {
		p.PlanDir = planPath
		p.PlanPath = filepath.Join(planPath, PlanFileName)
	} else {
		p.PlanDir = filepath.Dir(planPath)
		p.PlanPath = planPath
	}
	if !isFile(p.PlanPath) {
		return nil, configError("loading lesson plan", p.PlanPath, ErrPlanNotFound,
			fmt.Sprintf("Create %s in the lesson plan directory", PlanFileName),
			"Pass the path of the lesson plan file")
	}

	data, err := os.ReadFile(p.PlanPath)
	if err != nil {
		return nil, err
	}
	file := &PlanFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, configError("parsing lesson plan", p.PlanPath, err)
	}
	if file.Lessons == nil {
		return nil, configError("loading lesson plan", p.PlanPath, ErrMissingLessons,
			"Add a 'lessons' mapping to the lesson plan")
	}
	p.File = file

	if lessonsSubdir == "" {
		lessonsSubdir = "lessons"
	}
	p.DocsDir = expandPath(docsDir)
	p.WebSrcDir = filepath.Join(p.DocsDir, "src")
	p.LessonsSubdir = lessonsSubdir
	p.OutputDir = filepath.Join(p.WebSrcDir, lessonsSubdir)
	p.AssetsDir = filepath.Join(p.PlanDir, "assets")
	p.AssignmentsDir = p.PlanDir
	if assignmentsDir != "" {
		p.AssignmentsDir = expandPath(assignmentsDir)
	}
	return p, nil
}

func (p *LessonPlan) renderer() Renderer {
	if p.Renderer == nil {
		p.Renderer = NewTemplateRenderer("")
	}
	return p.Renderer
}

func (p *LessonPlan) resolver() *Resolver {
	if p.Resolver == nil {
		p.Resolver = NewResolver()
	}
	return p.Resolver
}

// Lessons returns the plan's lessons in plan order.
func (p *LessonPlan) Lessons() ([]*Lesson, error) {
	var out []*Lesson
	for _, item := range p.File.Lessons {
		name := fmt.Sprintf("%v", item.Key)
		def := LessonDef{}
		if item.Value != nil {
			raw, err := yaml.Marshal(item.Value)
			if err != nil {
				return nil, err
			}
			if err := yaml.Unmarshal(raw, &def); err != nil {
				return nil, configError("parsing lesson", name, err)
			}
		}
		def.Name = name
		out = append(out, &Lesson{Plan: p, Def: def})
	}
	return out, nil
}

// CollectWrites returns every write of the build: the top level pages, the
// shared assets and the writes of every lesson.
func (p *LessonPlan) CollectWrites(ctx context.Context) ([]*ResourceWrite, error) {
	var out []*ResourceWrite
	for _, page := range p.File.Pages {
		w, err := NewCopyWrite(filepath.Join(p.PlanDir, page), filepath.Join(p.WebSrcDir, page))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}

	assetsOut := filepath.Join(p.WebSrcDir, ".vuepress", "public", "assets")
	for _, res := range p.File.Resources {
		w, err := NewCopyWrite(filepath.Join(p.AssetsDir, res), filepath.Join(assetsOut, res))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}

	lessons, err := p.Lessons()
	if err != nil {
		return nil, err
	}
	for _, l := range lessons {
		writes, err := l.CollectWrites(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, writes...)
	}
	return out, nil
}

// WriteDir executes every write: all plain writes first, then the renders,
// which may read what the plain writes placed.
func (p *LessonPlan) WriteDir(ctx context.Context) (*BuildContext, error) {
	logger := logging.FromContext(ctx)
	writes, err := p.CollectWrites(ctx)
	if err != nil {
		return nil, panicOrError(err)
	}

	bc := newBuildContext(p)
	bc.enter(PhaseWrite)
	for _, w := range writes {
		if w.IsRender() {
			continue
		}
		logger.Debug("Writing", "write", w.Rel(p.DocsDir))
		if err := w.Write(); err != nil {
			return bc, panicOrError(fmt.Errorf("writing %s: %w", w.Dest, err))
		}
		bc.written(w)
	}
	bc.leave()

	bc.enter(PhaseRender)
	for _, w := range writes {
		if !w.IsRender() {
			continue
		}
		logger.Debug("Rendering", "write", w.Rel(p.DocsDir))
		rendered, err := w.Render(p.renderer())
		if err != nil {
			return bc, panicOrError(err)
		}
		if err := rendered.Write(); err != nil {
			return bc, panicOrError(fmt.Errorf("writing %s: %w", w.Dest, err))
		}
		bc.written(rendered)
	}
	bc.leave()
	return bc, nil
}

// Build writes the lesson tree and then regenerates the site config.
func (p *LessonPlan) Build(ctx context.Context, basedir string) (*BuildContext, error) {
	logger := logging.FromContext(ctx)
	logger.Info("Writing lesson plan", "plan", p.PlanPath, "output", p.OutputDir)

	bc, err := p.WriteDir(ctx)
	if err != nil {
		return bc, err
	}

	bc.enter(PhaseConfig)
	w, err := p.writeSiteConfig(ctx, basedir)
	if err != nil {
		return bc, panicOrError(err)
	}
	bc.written(w)
	bc.leave()

	logger.Info("Build complete",
		"writes", bc.Count(PhaseWrite),
		"renders", bc.Count(PhaseRender))
	return bc, nil
}
