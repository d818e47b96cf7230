package cmd

import (
	"errors"

	"github.com/joy095/propertyops/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL not set")
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.migrate(cmd.Context())
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load room types and rooms from a YAML inventory file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if file == "" {
				file = cfg.InventoryFile
			}
			if file == "" {
				return errors.New("no inventory file; pass --file or set INVENTORY_FILE")
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL not set; seeding the in-memory store would be lost on exit")
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.migrate(cmd.Context()); err != nil {
				return err
			}
			return a.seed(cmd.Context(), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "inventory YAML (defaults to INVENTORY_FILE)")
	return cmd
}
