package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	httpadapter "resume-builder/internal/adapter/http"
	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/store"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/infrastructure"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the resume builder server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg AppConfig) error {
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

	app := fiber.New()
	httpadapter.NewHandler(st, exporter).Register(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Server.Addr)
	}()
	log.Printf("listening on %s", cfg.Server.Addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		log.Printf("received %s, shutting down", s)
	}

	if err := app.Shutdown(); err != nil {
		log.Printf("warning: server shutdown: %v", err)
	}
	st.Close(ctx)
	return nil
}
