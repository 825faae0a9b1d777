package cmd

import (
	"context"
	"fmt"

	"loot-restrictions/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkOnly bool

// migrateCmd prepares the database tables and the storage bucket.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the restriction tables and the storage bucket",
	Long: `Migrate the restriction and item tables and make sure the configured bucket exists.
With --check nothing is changed and the live schema is compared with the models.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only verify the schema")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, err := loadDeps(nil)
	if err != nil {
		return err
	}
	l := d.logger
	defer l.Sync()

	if !checkOnly {
		if err := d.service.Prepare(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		l.Info("Schema migrated")

		created, err := storage.EnsureBucket(ctx, d.client, d.cfg.Storage.Bucket, d.cfg.Storage.Region)
		if err != nil {
			return fmt.Errorf("failed to ensure bucket: %w", err)
		}
		l.Info("Bucket ready", zap.String("bucket", d.cfg.Storage.Bucket), zap.Bool("created", created))
	}

	report, err := d.service.VerifySchema()
	if err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	for table, t := range report.Tables {
		l.Info("Table checked",
			zap.String("table", table),
			zap.String("status", t.Status),
			zap.Strings("missing_columns", t.MissingColumns),
			zap.Strings("type_mismatches", t.TypeMismatches),
		)
	}
	if !report.Matched {
		return fmt.Errorf("schema mismatch: %v", report.Errors)
	}
	l.Info("Schema matches models")
	return nil
}
