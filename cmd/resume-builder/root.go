package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// AppConfig is the optional config.yaml. Every field has a default and an
// env override, so running with no config file at all works.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ExportConfig struct {
	OutputDir  string `yaml:"output_dir"`
	ChromePath string `yaml:"chrome_path"`
}

func loadConfig(path string) (AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if p := os.Getenv("RESUME_DB_PATH"); p != "" {
		cfg.Database.Path = p
	}
	if d := os.Getenv("EXPORT_DIR"); d != "" {
		cfg.Export.OutputDir = d
	}
	if p := os.Getenv("CHROME_PATH"); p != "" {
		cfg.Export.ChromePath = p
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":3000"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "resume.db"
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "exports"
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "resume-builder",
		Short:         "Local resume builder with live preview and PDF export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newResetCmd(&configPath))
	return root
}
