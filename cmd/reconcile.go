package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"loot-restrictions/feature/restrictions"
	"loot-restrictions/feature/restrictions/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	dryRunReconcile bool
	yesConfirm      bool
	matchMode       string
)

// reconcileCmd evaluates the catalog and synchronizes stored restrictions.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile stored restrictions with the rule set",
	Long: `Evaluate every item against the rule set and bring the automated restriction
records in line with the result. Manual records are never modified.

The plan is always printed first. Changes are committed in a single transaction
after confirmation.

Examples:
  # Report only
  reconcile --dry-run

  # Apply with interactive confirmation
  reconcile

  # Apply non-interactively, pairing records on every field
  reconcile --yes --match exact`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Plan only, never commit")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm changes (non-interactive)")
	reconcileCmd.Flags().StringVar(&matchMode, "match", "", "Match mode: reason or exact (default from config)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, err := loadDeps(nil)
	if err != nil {
		return err
	}
	l := d.logger
	defer l.Sync()

	var match reconcile.MatchMode
	if matchMode != "" {
		if match, err = reconcile.ParseMatchMode(matchMode); err != nil {
			return err
		}
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...")
	preview, err := d.service.RunReconciliation(ctx, restrictions.RunOptions{DryRun: true, Match: match})
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, preview)

	if preview.Plan.Empty() {
		l.Info("Restrictions are up to date.")
		return nil
	}
	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if !confirmChanges() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying changes...")
	report, err := d.service.RunReconciliation(ctx, restrictions.RunOptions{Match: match})
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully committed changes",
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("removed", report.Removed),
	)
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, report *restrictions.RunReport) {
	s := report.Plan.Summary

	l.Info("Reconciliation report",
		zap.Int("items", report.Items),
		zap.Int("flagged_items", report.Flagged),
		zap.Int("candidates", s.Candidates),
		zap.Int("persisted", s.Persisted),
		zap.Int("manual", s.Manual),
		zap.Int("suppressed", s.Suppressed),
		zap.Int("unchanged", s.Unchanged),
	)

	if len(report.Plan.Actions) == 0 {
		return
	}

	l.Info("Planned actions",
		zap.Int("create", s.Created),
		zap.Int("update", s.Updated),
		zap.Int("delete", s.Deleted),
	)

	// Show a sample of actions
	maxShow := min(len(report.Plan.Actions), 5)
	for _, action := range report.Plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.Uint32("item_id", action.Restriction.ItemID),
			zap.String("restriction", action.Restriction.Reason),
			zap.String("reason", action.Reason),
		)
	}
	if len(report.Plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(report.Plan.Actions)-maxShow))
	}
}

// confirmChanges prompts the user for confirmation or uses --yes flag.
func confirmChanges() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to commit the planned changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
