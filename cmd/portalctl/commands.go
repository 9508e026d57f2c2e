package main

import (
	"fmt"

	"github.com/TRK06/feedback-system/internal/app/migrations"
	"github.com/TRK06/feedback-system/internal/app/services"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/TRK06/feedback-system/internal/seed"
	"github.com/spf13/cobra"
)

func newMigrateCmd(open opener) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.database.Close()

			m := migrations.NewMigrator(e.database.Pool)
			if statusOnly {
				pending, err := m.Pending(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range pending {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d pending migration(s)\n", len(pending))
				return nil
			}
			return m.Up(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false, "list pending migrations without applying them")
	return cmd
}

func newSeedCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default parameters, subjects and admin when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.database.Close()
			return seed.CreateDefaultData(cmd.Context(), e.repos, e.logger)
		},
	}
}

func newLoadSubjectsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "load-subjects <file.yaml>",
		Short: "Replace the subject catalogue with the subjects in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readSubjectsFile(args[0])
			if err != nil {
				return err
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.database.Close()

			admin := services.NewAdminService(
				e.repos.SubjectRepository, e.repos.AdminRepository, e.repos.FeedbackRepository,
				e.cfg.Portal.Departments, logger.WithComponent("portalctl"),
			)
			loaded, err := admin.BulkLoadSubjects(cmd.Context(), rows)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d subject(s)\n", loaded)
			return nil
		},
	}
}

func newCreateAdminCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin <username> <password>",
		Short: "Create an administrator account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.database.Close()

			admin := services.NewAdminService(
				e.repos.SubjectRepository, e.repos.AdminRepository, e.repos.FeedbackRepository,
				e.cfg.Portal.Departments, logger.WithComponent("portalctl"),
			)
			created, err := admin.CreateAdmin(cmd.Context(), args[0], args[1])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (id %d)\n", created.Username, created.ID)
			return nil
		},
	}
}
