package lessongen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/panyam/lessongen/logging"
)

const (
	// AssignmentMetaFile marks a directory as an assignment
	AssignmentMetaFile = "_assignment.yaml"

	// NoTitle is the title of an assignment that declares none
	NoTitle = "<No Title>"
)

var (
	DefaultImageExtensions = []string{"png", "gif", "jpeg", "jpg"}
	DefaultSourcePatterns  = []string{"*.py"}
)

var (
	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\(\s*<?([^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)
	htmlImageRe     = regexp.MustCompile(`<img\b[^>]*?\ssrc="([^"]+)"`)
)

// AssignmentRecord is what an assignment location resolves to.
type AssignmentRecord struct {
	// File stem or directory name
	Name  string
	Title string

	// The file or directory the record was resolved from
	Path string

	// Directory holding the assignment files.  Empty for single file assignments.
	SourceDir string

	// Program files, copied next to the rendered page
	Sources []string

	// Markdown bodies by logical name ("trinket", "index" or a file stem)
	Texts map[string]string

	// Images, no duplicates
	Resources []string

	// Metadata from _assignment.yaml or the file's front matter.  Keys other
	// than title pass through to the rendered page.
	Meta map[string]any
}

func emptyRecord(path string) *AssignmentRecord {
	return &AssignmentRecord{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:  path,
		Texts: map[string]string{},
		Meta:  map[string]any{},
	}
}

// Resolver turns an assignment location into an AssignmentRecord using
// metadata plus file name conventions.
type Resolver struct {
	// Image file extensions, without the dot
	ImageExtensions []string

	// Glob patterns for program files in a directory assignment
	SourcePatterns []string
}

func NewResolver() *Resolver {
	return &Resolver{
		ImageExtensions: DefaultImageExtensions,
		SourcePatterns:  DefaultSourcePatterns,
	}
}

// Resolve reads the assignment at path, a markdown file or a directory with
// an _assignment.yaml.  A path that does not exist is an error.  A directory
// without metadata resolves to an empty record with a warning.
func (r *Resolver) Resolve(ctx context.Context, path string) (*AssignmentRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, configError("resolving assignment", path, ErrAssignmentNotFound)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return r.resolveDir(ctx, abs)
	}
	return r.resolveFile(ctx, abs)
}

func (r *Resolver) resolveFile(ctx context.Context, path string) (*AssignmentRecord, error) {
	logger := logging.FromContext(ctx)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)

	rec := emptyRecord(path)
	rec.Texts["trinket"] = path

	meta, _, err := ParseFrontMatter(text)
	if err != nil {
		logger.Warn("Could not parse front matter", "path", path, "error", err)
	} else {
		for k, v := range meta {
			rec.Meta[k] = normalizeYAML(v)
		}
	}

	if title, ok := stringValue(rec.Meta, "title"); ok && title != "" {
		rec.Title = title
	} else if h1 := FirstH1(text); h1 != "" {
		rec.Title = h1
	} else {
		logger.Warn("Assignment has no title in front matter nor a level 1 heading", "path", path)
		rec.Title = NoTitle
	}

	dir := filepath.Dir(path)
	images, err := r.globAll(dir, r.imagePatterns())
	if err != nil {
		return nil, err
	}
	rec.Resources = dedupe(append(ImageReferences(dir, text), images...))
	return rec, nil
}

func (r *Resolver) resolveDir(ctx context.Context, dir string) (*AssignmentRecord, error) {
	logger := logging.FromContext(ctx)
	metaPath := filepath.Join(dir, AssignmentMetaFile)
	rec := emptyRecord(dir)
	rec.Name = filepath.Base(dir)
	if !isFile(metaPath) {
		logger.Warn("No "+AssignmentMetaFile+" meta file found", "path", dir)
		return rec, nil
	}

	raw := map[string]any{}
	if err := readYAMLFile(metaPath, &raw); err != nil {
		return nil, fmt.Errorf("reading %s: %w", metaPath, err)
	}
	for k, v := range raw {
		rec.Meta[k] = normalizeYAML(v)
	}
	rec.SourceDir = dir
	rec.Title, _ = stringValue(rec.Meta, "title")

	var err error
	if rec.Sources, err = r.globAll(dir, r.SourcePatterns); err != nil {
		return nil, err
	}

	texts, err := r.globAll(dir, []string{"*.md"})
	if err != nil {
		return nil, err
	}
	for _, t := range texts {
		rec.Texts[strings.TrimSuffix(filepath.Base(t), ".md")] = t
	}
	if rec.Title == "" && len(texts) > 0 {
		if h1, err := FirstH1InFile(texts[0]); err == nil {
			rec.Title = h1
		}
	}
	if rec.Title == "" {
		logger.Warn("Assignment has no title", "path", dir)
	}

	images, err := r.globAll(dir, r.imagePatterns())
	if err != nil {
		return nil, err
	}
	rec.Resources = dedupe(images)
	return rec, nil
}

func (r *Resolver) imagePatterns() []string {
	exts := r.ImageExtensions
	if len(exts) == 0 {
		exts = DefaultImageExtensions
	}
	return []string{"*.{" + strings.Join(exts, ",") + "}"}
}

// globAll returns the files in dir matching any of patterns, sorted.
func (r *Resolver) globAll(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
		}
		for _, m := range matches {
			full := filepath.Join(dir, filepath.FromSlash(m))
			if isFile(full) {
				out = append(out, full)
			}
		}
	}
	sort.Strings(out)
	return dedupe(out), nil
}

// ImageReferences finds the local images referenced by markdown or html
// image tags in text, as absolute paths relative to dir.  Remote and inline
// images are skipped.
func ImageReferences(dir, text string) (out []string) {
	var refs []string
	for _, m := range markdownImageRe.FindAllStringSubmatch(text, -1) {
		refs = append(refs, m[1])
	}
	for _, m := range htmlImageRe.FindAllStringSubmatch(text, -1) {
		refs = append(refs, m[1])
	}
	for _, ref := range refs {
		if isRemoteRef(ref) {
			continue
		}
		p := filepath.FromSlash(ref)
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return dedupe(out)
}

func isRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	for _, prefix := range []string{"http://", "https://", "data:", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// dedupe drops repeated paths, keeping the first occurrence.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
