package main

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored rounds as a report",
		Long: `Export writes every stored round to a report.

The csv format writes a timestamped file into the export directory
(export.dir, default ~/.local/share/suitwatch/exports). The sheets format
overwrites the results tab of the configured Google spreadsheet.`,
		RunE: runExport,
	}

	cmd.Flags().String("format", formatCSV, "Report format (csv, sheets)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	writer, err := initReportWriter(ctx, format)
	if err != nil {
		return err
	}

	runtime, err := newRuntime(store, writer, nil)
	if err != nil {
		return err
	}

	locator, err := runtime.Export(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Report written: "+locator))
	return nil
}
