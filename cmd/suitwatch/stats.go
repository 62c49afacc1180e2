package main

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show win statistics for the stored rounds",
		RunE:  runStats,
	}

	cmd.Flags().Bool("rounds", false, "Also list every stored round")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	showRounds, _ := cmd.Flags().GetBool("rounds")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	fmt.Fprintln(out, cli.RenderStatistics(model.ComputeStatistics(records)))
	if showRounds {
		fmt.Fprintln(out, cli.RenderRecords(records))
	}
	return nil
}
