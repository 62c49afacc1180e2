package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/suitwatch/internal/cli"
	"github.com/Veraticus/suitwatch/internal/feed"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file|->",
		Short: "Classify a batch of messages from a JSON-lines file",
		Long: `Ingest reads one message per line, either a JSON object
({"chat_id": -100..., "text": "...", "edited": false}) or plain text, and
classifies each in order. Use "-" to read from stdin.

By default every message is classified. With --channel-only, messages whose
chat_id is not the monitored channel are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().Bool("channel-only", false, "Only classify messages from the monitored channel")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	return cmd
}

// ingestSummary counts outcomes across a batch.
type ingestSummary struct {
	outcomes  map[model.Outcome]int
	ignored   int
	malformed int
}

func runIngest(cmd *cobra.Command, args []string) error {
	channelOnly, _ := cmd.Flags().GetBool("channel-only")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	messages, malformed, err := feed.ReadAll(in)
	if err != nil {
		return err
	}
	for _, lineErr := range malformed {
		slog.Warn("Skipping malformed line", "error", lineErr)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runtime, err := newRuntime(store, nil, nil)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if !noProgress {
		bar = progressbar.NewOptions(len(messages),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Classifying messages...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	summary := ingestSummary{outcomes: make(map[model.Outcome]int), malformed: len(malformed)}
	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}

		if channelOnly {
			result, handleErr := runtime.Handle(ctx, msg)
			if handleErr != nil {
				return handleErr
			}
			if result.Ignored {
				summary.ignored++
			} else {
				summary.outcomes[result.Decision.Outcome]++
			}
		} else {
			decision, processErr := runtime.Process(ctx, msg)
			if processErr != nil {
				return processErr
			}
			summary.outcomes[decision.Outcome]++
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Processed %d messages: %d recorded",
		len(messages), summary.outcomes[model.OutcomeAccepted])))
	for _, outcome := range []model.Outcome{
		model.OutcomeRejectedInProgress,
		model.OutcomeRejectedNotFinalized,
		model.OutcomeRejectedNoRoundNumber,
		model.OutcomeRejectedGroupCount,
		model.OutcomeRejectedFirstNot3Suits,
		model.OutcomeRejectedBothThreeSuits,
		model.OutcomeRejectedTie,
		model.OutcomeRejectedDuplicate,
	} {
		if n := summary.outcomes[outcome]; n > 0 {
			fmt.Fprintf(out, "  %s: %d\n", outcome, n)
		}
	}
	if summary.ignored > 0 {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d messages from other channels skipped", summary.ignored)))
	}
	if summary.malformed > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d malformed lines skipped", summary.malformed)))
	}
	return nil
}
