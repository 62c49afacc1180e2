package main

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored round and write an empty report",
		Long: `Reset clears the stored rounds, the same way the nightly reset does, and
writes an empty report for the new period. Settings such as the monitored
channel are kept.`,
		RunE: runReset,
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	cmd.Flags().String("format", formatCSV, "Format of the empty report (csv, sheets)")
	cmd.Flags().Bool("no-report", false, "Do not write an empty report")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	format, _ := cmd.Flags().GetString("format")
	noReport, _ := cmd.Flags().GetBool("no-report")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if !force {
		confirmed, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out,
			"Delete every stored round?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, cli.FormatInfo("Reset canceled."))
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var writer service.ReportWriter
	if !noReport {
		writer, err = initReportWriter(ctx, format)
		if err != nil {
			return err
		}
	}

	runtime, err := newRuntime(store, writer, nil)
	if err != nil {
		return err
	}

	locator, err := runtime.ResetAndExport(ctx)
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("All rounds deleted."))
	if locator != "" {
		fmt.Fprintln(out, cli.FormatInfo("Empty report: "+locator))
	}
	return nil
}
