package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alertscope/internal/model"
)

var (
	objectJSON          bool
	objectSaveTemplates string
)

var objectCmd = &cobra.Command{
	Use:   "object [id]",
	Short: "Print an object's summary series and template availability",
	Long: `Fetches the summary plot series (lightcurve and centroid offsets) and the
per-band template stamps for one diaObjectId. The two endpoints are fetched
concurrently. Use --save-templates to write the stamps to a directory as
{id}_{band}.fits.`,
	Args: cobra.ExactArgs(1),
	RunE: runObject,
}

func init() {
	objectCmd.Flags().BoolVar(&objectJSON, "json", false, "Print the raw records as JSON")
	objectCmd.Flags().StringVar(&objectSaveTemplates, "save-templates", "", "Directory to write template FITS files to")
}

func runObject(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad object id %q: %w", args[0], err)
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	var (
		plots     *model.SummaryPlots
		templates *model.TemplateImages
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plots, err = client.SummaryPlots(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		templates, err = client.Templates(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if objectSaveTemplates != "" {
		if err := saveTemplates(templates, objectSaveTemplates); err != nil {
			return err
		}
	}

	if objectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Plots     *model.SummaryPlots   `json:"summaryPlots"`
			Templates *model.TemplateImages `json:"templates"`
		}{plots, templates})
	}

	fmt.Printf("object %d\n", id)
	fmt.Printf("  %d lightcurve points, %d centroid points\n",
		len(plots.Lightcurve), len(plots.Centroid))
	for _, band := range model.Bands {
		count := 0
		for _, pt := range plots.Lightcurve {
			if pt.Band == band {
				count++
			}
		}
		if count > 0 {
			fmt.Printf("    %s: %d points\n", band, count)
		}
	}
	for _, band := range model.Bands {
		if stamp, ok := templates.Templates[band]; ok {
			fmt.Printf("  template %s: %d bytes\n", band, len(stamp))
		}
	}
	return nil
}

func saveTemplates(t *model.TemplateImages, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating template directory: %w", err)
	}
	for band, stamp := range t.Templates {
		path := filepath.Join(dir, fmt.Sprintf("%d_%s.fits", t.DiaObjectID, band))
		if err := os.WriteFile(path, stamp, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("wrote template", zap.String("path", path), zap.Int("bytes", len(stamp)))
	}
	return nil
}
