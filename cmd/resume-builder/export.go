package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/store"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/infrastructure"
)

func newExportCmd(configPath *string) *cobra.Command {
	var output string
	var strategy string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the persisted resume to a PDF without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runExport(cfg, output, strategy)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", usecase.DefaultFilename, "output file")
	cmd.Flags().StringVar(&strategy, "strategy", "structured", "export strategy (structured or raster)")
	return cmd
}

func runExport(cfg AppConfig, output, strategy string) error {
	ctx := context.Background()

	db, err := infrastructure.OpenDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := infrastructure.CloseDB(db); err != nil {
			log.Printf("warning: close db: %v", err)
		}
	}()

	repo, err := repository.New(db)
	if err != nil {
		return err
	}
	st := store.New(ctx, repo)
	exporter := usecase.NewExporter(st, repo, infrastructure.NewChromedpCapturer(cfg.Export.ChromePath), cfg.Export.OutputDir)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := exporter.ExportTo(ctx, f, strategy); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}
