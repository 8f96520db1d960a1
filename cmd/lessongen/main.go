// Command lessongen builds the site sources of a curriculum from its lesson plan.
//
// Configuration comes from, highest priority first: flags, LESSONGEN_*
// environment variables, the file named by --config, and lessongen.yaml in
// the current directory or ~/.config/lessongen.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/panyam/lessongen"
	"github.com/panyam/lessongen/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lessongen",
	Short: "Build a static site's lesson pages from a lesson plan",
	Long: `lessongen reads a lesson plan (lesson-plan.yaml), resolves the text, programs
and images of every lesson and assignment, and writes them as markdown pages
and the site config for the static site generator.`,
	SilenceUsage: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the lessons and regenerate the site config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		ctx := logging.WithLogger(context.Background(), logger)

		if err := cfg.Validate(); err != nil {
			return err
		}
		plan, err := cfg.NewLessonPlan()
		if err != nil {
			return err
		}
		if _, err := plan.Build(ctx, cfg.Base); err != nil {
			logger.Error("Build failed", "error", err)
			return err
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := lessongen.DefaultConfig()
	viper.SetDefault("plan", defaults.Plan)
	viper.SetDefault("docs", defaults.Docs)
	viper.SetDefault("assignments", defaults.Assignments)
	viper.SetDefault("lessons_subdir", defaults.LessonsSubdir)
	viper.SetDefault("base", defaults.Base)
	viper.SetDefault("templates", defaults.Templates)
	viper.SetDefault("repo_url", defaults.RepoURL)
	viper.SetDefault("image_extensions", defaults.ImageExtensions)
	viper.SetDefault("source_patterns", defaults.SourcePatterns)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("log_format", defaults.LogFormat)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./lessongen.yaml)")
	pf.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", defaults.LogFormat, "log format (text, json)")
	viper.BindPFlag("log_level", pf.Lookup("log-level"))
	viper.BindPFlag("log_format", pf.Lookup("log-format"))

	bf := buildCmd.Flags()
	bf.StringP("plan", "l", defaults.Plan, "lesson plan file or the directory holding lesson-plan.yaml")
	bf.StringP("docs", "d", defaults.Docs, "docs directory of the site")
	bf.StringP("assignments", "a", defaults.Assignments, "directory with the assignments (default is the plan directory)")
	bf.String("base", defaults.Base, "url path the site is served under")
	bf.StringSlice("templates", nil, "folders with page templates")
	for _, name := range []string{"plan", "docs", "assignments", "base", "templates"} {
		viper.BindPFlag(name, bf.Lookup(name))
	}

	rootCmd.AddCommand(buildCmd, configCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/lessongen")
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("lessongen")
	}

	viper.SetEnvPrefix("LESSONGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (*lessongen.Config, error) {
	cfg := lessongen.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
