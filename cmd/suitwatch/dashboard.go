package main

import (
	"github.com/Veraticus/suitwatch/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show live statistics and recent rounds in the terminal",
		Long: `Dashboard opens a full-screen view of the win statistics and the most recent
rounds. It reloads the store periodically, so it can run next to "serve".`,
		RunE: runDashboard,
	}

	cmd.Flags().Duration("refresh", tui.DefaultRefreshInterval, "Reload interval")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	refresh, _ := cmd.Flags().GetDuration("refresh")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return tui.Run(ctx, store, refresh)
}
