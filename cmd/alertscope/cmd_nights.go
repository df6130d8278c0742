package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alertscope/internal/model"
)

var nightsJSON bool

var nightsCmd = &cobra.Command{
	Use:   "nights",
	Short: "Print observing-night summaries",
	Long: `Lists every observing night with its visit count, alert count, the
derived alerts-per-visit ratio, and per-band alert totals.`,
	Args: cobra.NoArgs,
	RunE: runNights,
}

func init() {
	nightsCmd.Flags().BoolVar(&nightsJSON, "json", false, "Print the raw records as JSON")
}

func runNights(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	nights, err := client.Nights(ctx)
	if err != nil {
		return err
	}

	if nightsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nights)
	}

	fmt.Printf("%-10s %8s %8s %12s  %s\n", "night", "visits", "alerts", "alerts/visit", "by band")
	for _, n := range nights {
		var bands []string
		for _, band := range model.Bands {
			if count, ok := n.ByBand[band]; ok {
				bands = append(bands, fmt.Sprintf("%s:%d", band, count))
			}
		}
		fmt.Printf("%-10d %8d %8d %12.2f  %s\n",
			n.Night, n.NVisits, n.NAlerts, n.AlertsPerVisit(), strings.Join(bands, " "))
	}
	return nil
}
