package lessongen

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrPlanNotFound       = errors.New("lesson plan not found")
	ErrMissingLessons     = errors.New("lesson plan has no 'lessons' mapping")
	ErrSiteConfigNotFound = errors.New("site config template not found")
	ErrSiteConfigInvalid  = errors.New("site config template is invalid")
	ErrNoLessonText       = errors.New("no lesson text")
	ErrNoLessonTitle      = errors.New("no lesson title")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSourceNotFound     = errors.New("source file does not exist")
	ErrRenderPending      = errors.New("render write must be rendered before it is written")
)

// ConfigError is a fatal configuration problem.  Remedies lists what the
// author of the content tree can do about it.
type ConfigError struct {
	Op       string
	Path     string
	Err      error
	Remedies []string
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if len(e.Remedies) > 0 {
		sb.WriteString(". Do one of:")
		for _, r := range e.Remedies {
			sb.WriteString("\n  * ")
			sb.WriteString(r)
		}
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(op, path string, err error, remedies ...string) *ConfigError {
	return &ConfigError{Op: op, Path: path, Err: err, Remedies: remedies}
}

// panicOrError panics instead of returning err when LESSONGEN_PANIC_ON_ERRORS
// (or PANIC_ON_ALL_ERRORS) is "true".
func panicOrError(err error) error {
	if err != nil {
		if os.Getenv("PANIC_ON_ALL_ERRORS") == "true" || os.Getenv("LESSONGEN_PANIC_ON_ERRORS") == "true" {
			panic(fmt.Sprintf("lessongen: %v", err))
		}
	}
	return err
}
