package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"loot-restrictions/feature/restrictions/specs"

	"github.com/spf13/cobra"
)

var (
	// Flags for query commands
	includeReview bool
	excludeReview bool
	querySpec     string
)

// queryCmd is the parent command for restriction lookups.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Look up restriction verdicts for a single item",
}

var querySpecsCmd = &cobra.Command{
	Use:   "specs <item-id>",
	Short: "List the specializations allowed to receive an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		d, err := loadDeps(nil)
		if err != nil {
			return err
		}

		allowed, err := d.service.AllowedSpecs(context.Background(), id, includeReview)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"item_id":        id,
			"include_review": includeReview,
			"specs":          allowed.Keys(),
		})
	},
}

var queryReasonsCmd = &cobra.Command{
	Use:   "reasons <item-id> --spec <specialization>",
	Short: "List why a specialization may not receive an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		spec, err := specs.ParseSpecialization(querySpec)
		if err != nil {
			return err
		}
		d, err := loadDeps(nil)
		if err != nil {
			return err
		}

		reasons, err := d.service.DisallowedReasons(context.Background(), id, spec, excludeReview)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"item_id": id,
			"spec":    spec,
			"reasons": reasons,
		})
	},
}

var queryDeterminationsCmd = &cobra.Command{
	Use:   "determinations <item-id>",
	Short: "List every determination for an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		d, err := loadDeps(nil)
		if err != nil {
			return err
		}

		report, err := d.service.Determinations(context.Background(), id)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	querySpecsCmd.Flags().BoolVar(&includeReview, "include-review", false, "Treat manual review as allowed")
	queryReasonsCmd.Flags().StringVar(&querySpec, "spec", "", "Specialization key or name (e.g. FireMage)")
	queryReasonsCmd.Flags().BoolVar(&excludeReview, "exclude-review", false, "Skip manual review reasons")
	_ = queryReasonsCmd.MarkFlagRequired("spec")

	queryCmd.AddCommand(querySpecsCmd, queryReasonsCmd, queryDeterminationsCmd)
	RootCmd.AddCommand(queryCmd)
}

func parseItemID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", raw)
	}
	return uint32(id), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
