package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bloom/internal/cli"
	"github.com/Veraticus/bloom/internal/seed"
	"github.com/Veraticus/bloom/internal/service"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog and flower knowledge base",
		Long: `Insert demo categories, products and flower knowledge entries so the
recommendation and chat commands have something to work with.

Running it twice against the same database is refused.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	return withStorage(cmd.Context(), func(store service.Storage) error {
		var progress io.Writer = cmd.ErrOrStderr()
		if jsonOut {
			progress = nil
		}

		summary, err := seed.NewLoader(store, progress).Run(cmd.Context())
		if errors.Is(err, seed.ErrAlreadySeeded) {
			fmt.Fprintln(out, cli.FormatInfo("Demo catalog is already loaded."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		if jsonOut {
			return writeJSON(out, summary)
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
			"Loaded %d categories, %d products and %d knowledge entries.",
			summary.Categories, summary.Products, summary.Knowledge)))
		return nil
	})
}
