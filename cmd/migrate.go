package cmd

import (
	"fmt"

	"github.com/frahmantamala/crm-console/internal/store"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the embedded migrations to the local store",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := store.Open(appConfig.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if migrateRollback {
		err = st.Rollback(ctx)
	} else {
		err = st.Migrate(ctx)
	}
	if err != nil {
		return err
	}

	version, err := st.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s store at version %d\n", appConfig.Store.Driver, version)
	return nil
}
