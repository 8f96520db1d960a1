package lessongen

import (
	"fmt"

	"github.com/panyam/lessongen/funcs"
)

// Config is everything a build needs to know.  Fields map onto the
// lessongen.yaml config file, LESSONGEN_* environment variables and flags.
type Config struct {
	// Lesson plan file, or the directory holding lesson-plan.yaml
	Plan string `mapstructure:"plan" yaml:"plan"`

	// The site generator's docs directory; pages are written under <docs>/src
	Docs string `mapstructure:"docs" yaml:"docs"`

	// Where assignments are looked up.  Defaults to the plan directory.
	Assignments string `mapstructure:"assignments" yaml:"assignments"`

	LessonsSubdir string `mapstructure:"lessons_subdir" yaml:"lessons_subdir"`

	// URL path the site is served under, eg /python-apprentice/
	Base string `mapstructure:"base" yaml:"base"`

	// Folders with page templates overriding the built in ones
	Templates []string `mapstructure:"templates" yaml:"templates"`

	RepoURL         string   `mapstructure:"repo_url" yaml:"repo_url"`
	ImageExtensions []string `mapstructure:"image_extensions" yaml:"image_extensions"`
	SourcePatterns  []string `mapstructure:"source_patterns" yaml:"source_patterns"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		Plan:            "lessons",
		Docs:            "docs",
		LessonsSubdir:   "lessons",
		RepoURL:         funcs.DefaultRepoURL,
		ImageExtensions: append([]string{}, DefaultImageExtensions...),
		SourcePatterns:  append([]string{}, DefaultSourcePatterns...),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Validate checks that the directories the build reads from and writes to exist.
func (c *Config) Validate() error {
	if c.Plan == "" || !exists(expandPath(c.Plan)) {
		return configError("checking lesson plan", c.Plan, ErrPlanNotFound)
	}
	if c.Docs == "" || !isDir(expandPath(c.Docs)) {
		return configError("checking docs directory", c.Docs, fmt.Errorf("directory does not exist"),
			"Create the docs directory of the site",
			"Pass the docs directory with --docs")
	}
	if c.Assignments != "" && !isDir(expandPath(c.Assignments)) {
		return configError("checking assignments directory", c.Assignments, fmt.Errorf("directory does not exist"))
	}
	return nil
}

// NewLessonPlan loads the plan and wires its resolver and renderer from c.
func (c *Config) NewLessonPlan() (*LessonPlan, error) {
	plan, err := LoadLessonPlan(c.Plan, c.Docs, c.Assignments, c.LessonsSubdir)
	if err != nil {
		return nil, err
	}
	plan.Resolver = &Resolver{
		ImageExtensions: c.ImageExtensions,
		SourcePatterns:  c.SourcePatterns,
	}
	if len(plan.Resolver.SourcePatterns) == 0 {
		plan.Resolver.SourcePatterns = DefaultSourcePatterns
	}
	plan.Renderer = NewTemplateRenderer(c.RepoURL, c.Templates...)
	return plan, nil
}
