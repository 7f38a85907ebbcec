/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/store"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the task table in the configured store",
	Long: `Create the todos table if it does not exist. SQLite does this on every
start; for Postgres run it once, or set store.autoMigrate.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := store.Open(ctx, store.Config{
			Driver: appConfig.Store.Driver,
			Path:   appConfig.Store.Path,
			DSN:    appConfig.Store.DSN,
		})
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		m, ok := st.(store.Migrator)
		if !ok {
			return fmt.Errorf("store driver %q does not support migrations", appConfig.Store.Driver)
		}
		if err := m.EnsureSchema(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Schema ready (%s)\n", storeLocation(appConfig.Store.Driver, appConfig.Store.Path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// storeLocation describes the store without leaking a DSN.
func storeLocation(driver, path string) string {
	if driver == store.DriverPostgres {
		return "postgres"
	}
	return "sqlite: " + path
}
