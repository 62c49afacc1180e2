package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/engine"
	"github.com/Veraticus/suitwatch/internal/feed"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [message]",
		Short: "Classify a single result message",
		Long: `Classify one result message and record it when it qualifies.

The message is taken from the arguments, or read from stdin when none are given.
Use --dry-run to see the decision without touching the store.`,
		Example: `  suitwatch classify "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅"
  echo "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅" | suitwatch classify --dry-run`,
		RunE: runClassify,
	}

	cmd.Flags().Bool("dry-run", false, "Evaluate the message without storing it")
	cmd.Flags().Bool("edited", false, "Treat the message as an edit of an earlier one")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	edited, _ := cmd.Flags().GetBool("edited")
	out := cmd.OutOrStdout()

	message := strings.Join(args, " ")
	if message == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read message from stdin: %w", err)
		}
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		return fmt.Errorf("no message given")
	}

	if dryRun {
		rec, decision := engine.New(nil).Evaluate(message)
		if rec == nil {
			fmt.Fprintln(out, cli.FormatDecision(decision))
			return nil
		}
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("would record round #%d - winner: %s (%s %s, first group %s)",
			rec.RoundNumber, rec.Winner, rec.Date, rec.Time, rec.FirstGroupCards)))
		return nil
	}

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

	decision, err := runtime.Process(ctx, feed.Message{Text: message, Edited: edited})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatDecision(decision))
	return nil
}
