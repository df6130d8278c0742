package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alertscope/internal/model"
)

var (
	alertJSON        bool
	alertSaveCutouts string
)

var alertCmd = &cobra.Command{
	Use:   "alert [id]",
	Short: "Print a single alert",
	Long: `Fetches one alert by diaSourceId and prints it. Cutout stamps are FITS
blobs; use --save-cutouts to write them to a directory as
{id}_{science,template,difference}.fits.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlert,
}

func init() {
	alertCmd.Flags().BoolVar(&alertJSON, "json", false, "Print the raw record as JSON")
	alertCmd.Flags().StringVar(&alertSaveCutouts, "save-cutouts", "", "Directory to write cutout FITS files to")
}

func runAlert(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad alert id %q: %w", args[0], err)
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	alert, err := client.Alert(ctx, id)
	if err != nil {
		return err
	}

	if alertSaveCutouts != "" {
		if err := saveCutouts(alert, alertSaveCutouts); err != nil {
			return err
		}
	}

	if alertJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(alert)
	}

	printAlert(alert)
	return nil
}

func printAlert(a *model.Alert) {
	fmt.Printf("alert %d\n", a.DiaSourceID)
	printSource("  ", &a.DiaSource)
	if a.DiaObject != nil {
		fmt.Printf("  object %d\n", a.DiaObject.DiaObjectID)
		for _, stat := range a.DiaObject.BandStats() {
			line := "    " + stat.Band
			if stat.FluxMean != nil {
				line += fmt.Sprintf("  mean flux %.4g", *stat.FluxMean)
			}
			if stat.NData != nil {
				line += fmt.Sprintf("  n %d", *stat.NData)
			}
			fmt.Println(line)
		}
	}
	if a.SSSource != nil && a.SSSource.SSObjectID != nil {
		fmt.Printf("  ssobject %d\n", *a.SSSource.SSObjectID)
	}
	if len(a.PrvDiaSources) > 0 {
		fmt.Printf("  %d previous detections\n", len(a.PrvDiaSources))
		for i := range a.PrvDiaSources {
			printSource("    ", &a.PrvDiaSources[i])
		}
	}
	if n := len(a.PrvDiaForcedSources); n > 0 {
		fmt.Printf("  %d forced photometry points\n", n)
	}

	cutouts := a.Cutouts()
	names := make([]string, 0, len(cutouts))
	for name := range cutouts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		digest := sha256.Sum256(cutouts[name])
		fmt.Printf("  cutout %s: %d bytes  sha256 %x\n", name, len(cutouts[name]), digest[:8])
	}
}

func printSource(indent string, s *model.DiaSource) {
	line := fmt.Sprintf("%s%d  mjd %.5f", indent, s.DiaSourceID, s.MidpointMjdTai)
	if s.Band != nil {
		line += "  band " + *s.Band
	}
	if s.PsfFlux != nil {
		line += fmt.Sprintf("  flux %.4g", *s.PsfFlux)
	}
	if s.SNR != nil {
		line += fmt.Sprintf("  snr %.1f", *s.SNR)
	}
	fmt.Println(line)
}

func saveCutouts(a *model.Alert, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cutout directory: %w", err)
	}
	for name, stamp := range a.Cutouts() {
		path := filepath.Join(dir, fmt.Sprintf("%d_%s.fits", a.DiaSourceID, name))
		if err := os.WriteFile(path, stamp, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("wrote cutout", zap.String("path", path), zap.Int("bytes", len(stamp)))
	}
	return nil
}
