package main

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/feed"
	"github.com/spf13/cobra"
)

func channelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channel [id]",
		Short: "Show or set the monitored channel",
		Long: `Without an argument, channel prints the monitored channel id. With one,
it stores a new id. Legacy ids of the form -207XXXXXXXXXX are rewritten to
the -100XXXXXXXXXX form. Put -- before a negative id.`,
		Example: `  suitwatch channel
  suitwatch channel -- -1001234567890`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChannel,
	}
}

func runChannel(cmd *cobra.Command, args []string) error {
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
		id, ok, err := runtime.Channel(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatWarning("No monitored channel configured."))
			return nil
		}
		fmt.Fprintf(out, "Monitored channel: %d\n", id)
		return nil
	}

	id, err := feed.ParseChannelID(args[0])
	if err != nil {
		return err
	}
	id, err = runtime.SetChannel(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Monitoring channel %d", id)))
	return nil
}
