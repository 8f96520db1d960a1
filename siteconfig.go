package lessongen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/panyam/lessongen/logging"
	"gopkg.in/yaml.v2"
)

// SiteConfigNames are the site config templates looked for in the plan
// directory, in order.
var SiteConfigNames = []string{"config.yml", "config.yaml", "config.toml"}

// LoadSiteConfig reads the first site config template found in planDir.
func LoadSiteConfig(planDir string) (map[string]any, string, error) {
	for _, name := range SiteConfigNames {
		path := filepath.Join(planDir, name)
		if !isFile(path) {
			continue
		}
		raw := map[string]any{}
		if strings.HasSuffix(name, ".toml") {
			if _, err := toml.DecodeFile(path, &raw); err != nil {
				return nil, path, configError("parsing site config", path, err)
			}
		} else if err := readYAMLFile(path, &raw); err != nil {
			return nil, path, configError("parsing site config", path, err)
		}
		if len(raw) == 0 {
			return nil, path, configError("loading site config", path,
				fmt.Errorf("%w: file is empty", ErrSiteConfigInvalid))
		}
		config, _ := normalizeYAML(raw).(map[string]any)
		return config, path, nil
	}
	return nil, "", configError("loading site config from", planDir, ErrSiteConfigNotFound,
		"Create a config.yml in the lesson plan directory",
		"Create a config.toml in the lesson plan directory")
}

// SiteConfigPath is where the regenerated site config is written.
func (p *LessonPlan) SiteConfigPath() string {
	return filepath.Join(p.WebSrcDir, ".vuepress", "config.yml")
}

// UpdateConfig regenerates the site config: the plan directory's template
// with the plan's title, description, url base and sidebar.  The legacy
// config.js is removed.
func (p *LessonPlan) UpdateConfig(ctx context.Context, basedir string) error {
	_, err := p.writeSiteConfig(ctx, basedir)
	return err
}

func (p *LessonPlan) writeSiteConfig(ctx context.Context, basedir string) (*ResourceWrite, error) {
	logger := logging.FromContext(ctx)
	config, path, err := LoadSiteConfig(p.PlanDir)
	if err != nil {
		return nil, err
	}

	config["title"] = p.File.Title
	config["description"] = p.File.Description
	if b := strings.Trim(basedir, "/"); b != "" {
		config["base"] = "/" + b + "/"
	}

	theme, ok := config["themeConfig"].(map[string]any)
	if !ok {
		return nil, configError("updating site config", path,
			fmt.Errorf("%w: no themeConfig mapping", ErrSiteConfigInvalid))
	}
	sidebar, err := p.Sidebar(ctx)
	if err != nil {
		return nil, err
	}
	theme["sidebar"] = sidebar

	out, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}
	w := NewTextWrite(string(out), p.SiteConfigPath())
	logger.Info("Writing config", "path", w.Dest)
	if err := w.Write(); err != nil {
		return nil, err
	}

	jsConfig := filepath.Join(p.WebSrcDir, ".vuepress", "config.js")
	if isFile(jsConfig) {
		if err := os.Remove(jsConfig); err != nil {
			return nil, err
		}
	}
	return w, nil
}
