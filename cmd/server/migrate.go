package main

import (
	"fmt"

	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL migrations and MongoDB indexes, then exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	posts := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := posts.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	log.Info().Msg("Migrations completed")
	return nil
}
