package main

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/scheduler"
	"github.com/spf13/cobra"
)

func settimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settime [interval]",
		Short: "Show or change the auto-export interval",
		Long: `Without an argument, settime prints the current auto-export interval.
With one, it stores a new interval given in minutes ("30m") or hours ("2h").
The interval must be between 5 minutes and 24 hours.`,
		Example: `  suitwatch settime
  suitwatch settime 30m
  suitwatch settime 2h`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSettime,
	}
}

func runSettime(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runtime, err := newRuntime(store, nil, nil)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintf(out, "Auto-export interval: %s minutes\n", scheduler.Minutes(runtime.ExportInterval(ctx)))
		return nil
	}

	interval, err := scheduler.ParseInterval(args[0])
	if err != nil {
		return err
	}
	if err := runtime.SetExportInterval(ctx, interval); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Auto-export every %s minutes", scheduler.Minutes(interval))))
	return nil
}
