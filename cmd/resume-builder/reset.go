package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/store"
	"resume-builder/pkg/infrastructure"
)

func newResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the persisted resume to the default empty document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runReset(cfg)
		},
	}
}

func runReset(cfg AppConfig) error {
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
	st.Reset(ctx)
	fmt.Println("resume reset to defaults")
	return nil
}
