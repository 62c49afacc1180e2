package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/storage"
	"github.com/spf13/cobra"
)

type versionedStore interface {
	SchemaVersion(ctx context.Context) (int, error)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE:  runMigrate,
	}

	cmd.Flags().Bool("status", false, "Print the schema version")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	// initStorage migrates on open.
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if !status {
		fmt.Fprintln(out, cli.FormatSuccess("Database is up to date."))
		return nil
	}

	versioned, ok := store.(versionedStore)
	if !ok {
		fmt.Fprintln(out, cli.FormatInfo("This storage backend has no schema version."))
		return nil
	}
	v, err := versioned.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Schema version: %d (expected %d)\n", v, storage.ExpectedSchemaVersion)
	return nil
}
