package lessongen

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "lessons", cfg.Plan)
	assert.Equal(t, "docs", cfg.Docs)
	assert.Equal(t, "lessons", cfg.LessonsSubdir)
	assert.Equal(t, []string{"png", "gif", "jpeg", "jpg"}, cfg.ImageExtensions)
	assert.Equal(t, []string{"*.py"}, cfg.SourcePatterns)

	// defaults are copies
	cfg.ImageExtensions[0] = "svg"
	assert.Equal(t, "png", DefaultImageExtensions[0])
}

func TestConfigValidate(t *testing.T) {
	planDir, docsDir := newPlanFixture(t)
	cfg := DefaultConfig()
	cfg.Plan = planDir
	cfg.Docs = docsDir
	require.NoError(t, cfg.Validate())

	cfg.Assignments = filepath.Join(planDir, "missing")
	assert.Error(t, cfg.Validate())

	cfg.Assignments = ""
	cfg.Docs = filepath.Join(planDir, "nodocs")
	assert.Error(t, cfg.Validate())

	cfg.Plan = filepath.Join(planDir, "nowhere")
	assert.ErrorIs(t, cfg.Validate(), ErrPlanNotFound)
}

func TestConfigNewLessonPlan(t *testing.T) {
	planDir, docsDir := newPlanFixture(t)
	cfg := DefaultConfig()
	cfg.Plan = planDir
	cfg.Docs = docsDir
	cfg.LessonsSubdir = "units"
	cfg.RepoURL = "https://example.com/{level}/{module}"

	plan, err := cfg.NewLessonPlan()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(docsDir, "src", "units"), plan.OutputDir)
	assert.Equal(t, "/units/lesson1/spiral/", plan.URLPath("lesson1", "spiral"))
	assert.Equal(t, cfg.ImageExtensions, plan.Resolver.ImageExtensions)

	renderer, ok := plan.Renderer.(*TemplateRenderer)
	require.True(t, ok)
	assert.Equal(t, cfg.RepoURL, renderer.RepoURL)
}

func TestConfigErrorMessage(t *testing.T) {
	err := configError("loading", "/plan", ErrPlanNotFound, "Do this", "Or that")
	assert.Equal(t, "loading /plan: lesson plan not found. Do one of:\n  * Do this\n  * Or that", err.Error())
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestPanicOnErrors(t *testing.T) {
	assert.NoError(t, panicOrError(nil))
	assert.Equal(t, ErrNoLessonText, panicOrError(ErrNoLessonText))

	t.Setenv("LESSONGEN_PANIC_ON_ERRORS", "true")
	assert.Panics(t, func() { _ = panicOrError(ErrNoLessonText) })
}
