package main

import (
	"context"
	"os"

	"github.com/TRK06/feedback-system/internal/app/repositories"
	"github.com/TRK06/feedback-system/internal/bootstrap"
	"github.com/TRK06/feedback-system/internal/config"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// env carries what every subcommand needs once the database is open
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	database *db.PostgresDB
	repos    *repositories.Repositories
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Administer the course feedback portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config file")

	// open loads config and connects; the caller closes the database
	open := func(ctx context.Context) (*env, error) {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return nil, err
		}
		database, err := bootstrap.ConnectDatabase(cfg, lgr)
		if err != nil {
			return nil, err
		}
		return &env{cfg: cfg, logger: lgr, database: database, repos: repositories.NewRepositories(database.Pool)}, nil
	}

	root.AddCommand(
		newMigrateCmd(open),
		newSeedCmd(open),
		newLoadSubjectsCmd(open),
		newCreateAdminCmd(open),
	)
	return root
}

type opener func(ctx context.Context) (*env, error)
