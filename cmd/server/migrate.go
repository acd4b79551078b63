package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the configured DB_DRIVER and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		st, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.close()
		if err := st.migrate(cmd.Context(), cfg.DBDriver, log); err != nil {
			return err
		}
		log.Info("migrations complete", zap.String("driver", cfg.DBDriver))
		return nil
	},
}
