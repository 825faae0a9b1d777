package cmd

import (
	"context"
	"fmt"

	"loot-restrictions/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the bucket, catalog and database schema",
	Long: `Checks that the storage bucket exists (and the item export, when items are read from
storage), counts catalog items and stored restrictions, and compares the database schema
with the models. Use --fix to create a missing bucket.`,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when it is missing")
	integrityCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the combined report as JSON")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, err := loadDeps(nil)
	if err != nil {
		return err
	}
	l := d.logger
	defer l.Sync()

	svc := integrity.NewService(d.client, d.cfg.Storage.Bucket, d.cfg.Storage.Region, l, d.db, d.cfg.Restrictions)
	failed := false

	storageReport, err := svc.CheckStorage(ctx)
	if err != nil {
		return fmt.Errorf("storage check failed: %w", err)
	}
	if !storageReport.Exists && fixFlag {
		if _, err := svc.FixStorage(ctx); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		l.Info("Bucket created", zap.String("bucket", storageReport.Bucket))
		if storageReport, err = svc.CheckStorage(ctx); err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}
	}
	failed = failed || storageReport.Status != "ok"

	catalogReport, err := svc.CheckCatalog(ctx)
	if err != nil {
		return fmt.Errorf("catalog check failed: %w", err)
	}

	serverReport, err := svc.CheckServer()
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	failed = failed || !serverReport.Matched

	if jsonFlag {
		if err := writeJSON(cmd.OutOrStdout(), map[string]any{
			"storage": storageReport,
			"catalog": catalogReport,
			"server":  serverReport,
		}); err != nil {
			return err
		}
	} else {
		l.Info("Storage check",
			zap.String("bucket", storageReport.Bucket),
			zap.Bool("exists", storageReport.Exists),
			zap.String("status", storageReport.Status),
		)
		if storageReport.Catalog != nil {
			l.Info("Catalog export",
				zap.String("key", storageReport.Catalog.Key),
				zap.Bool("exists", storageReport.Catalog.Exists),
				zap.Int64("size", storageReport.Catalog.Size),
			)
		}
		l.Info("Catalog check",
			zap.String("source", catalogReport.Source),
			zap.Int64("items", catalogReport.Items),
			zap.Int64("automated", catalogReport.Automated),
			zap.Int64("manual", catalogReport.Manual),
			zap.String("status", catalogReport.Status),
		)
		l.Info("Schema check", zap.Bool("matched", serverReport.Matched), zap.Strings("errors", serverReport.Errors))
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
