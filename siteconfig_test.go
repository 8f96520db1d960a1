package lessongen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestLoadSiteConfigFormats(t *testing.T) {
	dir := t.TempDir()
	_, _, err := LoadSiteConfig(dir)
	assert.ErrorIs(t, err, ErrSiteConfigNotFound)

	writeFile(t, dir, "config.toml", "title = \"From toml\"\n\n[themeConfig]\nrepo = \"league/python\"\n")
	config, path, err := LoadSiteConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), path)
	assert.Equal(t, "From toml", config["title"])
	theme, ok := config["themeConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "league/python", theme["repo"])

	// yaml wins over toml
	writeFile(t, dir, "config.yml", "title: From yaml\nthemeConfig: {}\n")
	config, _, err = LoadSiteConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "From yaml", config["title"])
}

func TestLoadSiteConfigEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yml", "\n")
	_, _, err := LoadSiteConfig(dir)
	assert.ErrorIs(t, err, ErrSiteConfigInvalid)
}

func TestUpdateConfigRequiresThemeConfig(t *testing.T) {
	plan := loadFixture(t)
	writeFile(t, plan.PlanDir, "config.yml", "title: no theme\n")
	err := plan.UpdateConfig(context.Background(), "")
	assert.ErrorIs(t, err, ErrSiteConfigInvalid)
	assert.NoFileExists(t, plan.SiteConfigPath())
}

func TestUpdateConfigMissingTemplate(t *testing.T) {
	plan := loadFixture(t)
	require.NoError(t, os.Remove(filepath.Join(plan.PlanDir, "config.yml")))
	err := plan.UpdateConfig(context.Background(), "")
	assert.ErrorIs(t, err, ErrSiteConfigNotFound)
}

func TestUpdateConfigFromToml(t *testing.T) {
	plan := loadFixture(t)
	require.NoError(t, os.Remove(filepath.Join(plan.PlanDir, "config.yml")))
	writeFile(t, plan.PlanDir, "config.toml", "dest = \"dist\"\n\n[themeConfig]\nlogo = \"/logo.png\"\n")

	require.NoError(t, plan.UpdateConfig(context.Background(), "/site/"))
	config := map[string]any{}
	require.NoError(t, yaml.Unmarshal([]byte(readString(t, plan.SiteConfigPath())), &config))
	assert.Equal(t, "dist", config["dest"])
	assert.Equal(t, "/site/", config["base"])
	theme := config["themeConfig"].(map[any]any)
	assert.Equal(t, "/logo.png", theme["logo"])
	assert.Len(t, theme["sidebar"], 3)
}
