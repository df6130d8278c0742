package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"alertscope/internal/model"
)

var (
	queryInclude   []string
	queryCondition string
	queryLimit     int
	queryCone      string
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an ad-hoc column query over the alert table",
	Long: `Projects the given dotted field paths from matching alerts and prints one
row per alert, tab-separated in the include order. Identifier columns keep
their exact digits.

Example:
  alertscope query \
    --include diaSource.diaSourceId --include diaSource.psfFlux \
    --condition "diaSource.snr > 5" \
    --cone 215.2,-12.4,0.5 --limit 100`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringSliceVar(&queryInclude, "include", nil, "Dotted field path to project (repeatable, required)")
	queryCmd.Flags().StringVar(&queryCondition, "condition", "", "Filter condition evaluated by the archive")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 200, "Maximum rows to return")
	queryCmd.Flags().StringVar(&queryCone, "cone", "", "Sky cone as ra,dec,radius in degrees")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print rows as JSON")
	queryCmd.MarkFlagRequired("include")
}

func parseCone(value string) (*model.Cone, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("cone must be ra,dec,radius, got %q", value)
	}
	var nums [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad cone component %q: %w", part, err)
		}
		nums[i] = v
	}
	return &model.Cone{RA: nums[0], Dec: nums[1], Radius: nums[2]}, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := model.AlertQuery{
		Include:   queryInclude,
		Condition: queryCondition,
		Limit:     queryLimit,
	}
	if queryCone != "" {
		cone, err := parseCone(queryCone)
		if err != nil {
			return err
		}
		query.Location = cone
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	rows, err := client.QueryAlerts(ctx, query)
	if err != nil {
		return err
	}

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Println(strings.Join(queryInclude, "\t"))
	for _, row := range rows {
		fields := make([]string, len(queryInclude))
		for i, path := range queryInclude {
			fields[i] = row.String(path)
		}
		fmt.Println(strings.Join(fields, "\t"))
	}
	return nil
}
