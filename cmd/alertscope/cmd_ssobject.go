package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var ssobjectJSON bool

var ssobjectCmd = &cobra.Command{
	Use:   "ssobject [id]",
	Short: "Print a solar-system object's orbit and linked detections",
	Args:  cobra.ExactArgs(1),
	RunE:  runSSObject,
}

func init() {
	ssobjectCmd.Flags().BoolVar(&ssobjectJSON, "json", false, "Print the raw record as JSON")
}

func runSSObject(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad ssobject id %q: %w", args[0], err)
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	object, err := client.SSObject(ctx, id)
	if err != nil {
		return err
	}

	if ssobjectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(object)
	}

	fmt.Printf("ssobject %d\n", object.SSObjectID)
	if object.Designation != nil {
		fmt.Printf("  designation %s\n", *object.Designation)
	}
	if o := object.Orbit; o != nil {
		printElement := func(label string, v *float64) {
			if v != nil {
				fmt.Printf("  %-6s %g\n", label, *v)
			}
		}
		printElement("H", o.H)
		printElement("epoch", o.Epoch)
		printElement("e", o.Eccentricity)
		printElement("a", o.SemimajorAxis)
		printElement("q", o.PerihelionDist)
		printElement("incl", o.Inclination)
		printElement("node", o.AscendingNode)
		printElement("peri", o.ArgPerihelion)
	}
	for _, src := range object.Sources {
		fmt.Printf("  detection %d  mjd %.5f  ra %.6f  dec %.6f\n",
			src.DiaSourceID, src.MidpointMjdTai, src.RA, src.Dec)
	}
	return nil
}
