package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/suitwatch/internal/api"
	"github.com/Veraticus/suitwatch/internal/bot"
	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/feed"
	"github.com/Veraticus/suitwatch/internal/scheduler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot: feed consumer, scheduler and status server",
		Long: `Serve runs the long-lived bot process. It reads channel messages as JSON
lines from --input (stdin by default), classifies those from the monitored
channel, exports the results on the configured interval, resets them every
night, and serves /, /health and /status over HTTP.

Notifications are printed to stdout. Serve stops on SIGINT or SIGTERM; the
end of the input does not stop it.`,
		RunE: runServe,
	}

	cmd.Flags().String("input", "-", "Message feed to read (file path or - for stdin)")
	cmd.Flags().String("format", formatCSV, "Report format for exports (csv, sheets)")
	cmd.Flags().Int("port", 0, "HTTP port (default from server.port)")
	cmd.Flags().Bool("forward", false, "Forward every channel message to the notifications")

	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("bot.forward_messages", cmd.Flags().Lookup("forward"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	ctx := cli.NewInterruptHandler(out).HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	writer, err := initReportWriter(ctx, format)
	if err != nil {
		return err
	}

	runtime, err := newRuntime(store, writer, bot.NewWriterNotifier(out))
	if err != nil {
		return err
	}

	if _, ok, chanErr := runtime.Channel(ctx); chanErr == nil && !ok {
		slog.Warn("No monitored channel configured; messages will be ignored until one is set",
			"hint", "suitwatch channel <id>")
	}

	var in io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open feed %s: %w", input, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	sched := scheduler.New(runtime, scheduler.Config{
		Interval:       runtime.ExportInterval,
		TimezoneOffset: viper.GetInt("schedule.timezone_offset_hours"),
		ResetHour:      viper.GetInt("schedule.reset_hour"),
		Logger:         slog.Default(),
	})
	server := api.NewServer(runtime, slog.Default())
	addr := fmt.Sprintf(":%d", viper.GetInt("server.port"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error { return server.ListenAndServe(gctx, addr) })
	g.Go(func() error { return consumeFeed(gctx, runtime, in) })

	slog.Info("Bot started", "addr", addr, "input", input, "format", format)
	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Bot stopped")
	return nil
}

type feedItem struct {
	msg feed.Message
	err error
}

// consumeFeed hands every decoded message to the runtime. Malformed lines and
// classification failures are logged and skipped. At the end of the input it
// waits for ctx so the other components keep running.
func consumeFeed(ctx context.Context, runtime *bot.Runtime, in io.Reader) error {
	items := make(chan feedItem)
	dec := feed.NewDecoder(in)

	// Reads block on the input, so decoding runs apart from the select below.
	go func() {
		defer close(items)
		for {
			msg, err := dec.Next()
			select {
			case items <- feedItem{msg: msg, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !errors.Is(err, feed.ErrMalformedLine) {
				return
			}
		}
	}()

	for {
		var item feedItem
		var open bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, open = <-items:
		}
		if !open {
			<-ctx.Done()
			return ctx.Err()
		}

		switch {
		case errors.Is(item.err, io.EOF):
			slog.Info("Message feed ended")
			continue
		case errors.Is(item.err, feed.ErrMalformedLine):
			slog.Warn("Skipping malformed feed line", "error", item.err)
			continue
		case item.err != nil:
			return item.err
		}

		if _, err := runtime.Handle(ctx, item.msg); err != nil {
			slog.Error("Failed to handle message", "id", item.msg.ID, "error", err)
		}
	}
}
