package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rouletteCmd = &cobra.Command{
	Use:   "roulette",
	Short: "Print a randomly sampled alert identifier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
		defer cancel()

		id, err := client.Roulette(ctx)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}
