package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
		expectError   bool
	}{
		{name: "successful read", input: "test input\n", expectedValue: "test input"},
		{name: "read with extra whitespace", input: "  test input  \n", expectedValue: "test input"},
		{name: "empty line", input: "\n", expectedValue: ""},
		{name: "last line without newline", input: "yes", expectedValue: "yes"},
		{name: "eof", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nbr := NewNonBlockingReader(strings.NewReader(tt.input))
			result, err := nbr.ReadLine(context.Background())

			if tt.expectError {
				assert.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, result)
		})
	}
}

func TestNonBlockingReader_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewNonBlockingReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "yes\n", want: true},
		{input: "Y\n", want: true},
		{input: "no\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(context.Background(), NewNonBlockingReader(strings.NewReader(tt.input)), &out, "Reset?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Reset? (yes/no)")
		})
	}
}

func TestInterruptHandler_Signal(t *testing.T) {
	var out bytes.Buffer
	handler := NewInterruptHandler(&out)
	ctx := handler.HandleInterrupts(context.Background())

	handler.signals <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not canceled")
	}
	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, out.String(), "Interrupted")
}

func TestInterruptHandler_ParentCancel(t *testing.T) {
	handler := NewInterruptHandler(io.Discard)
	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)

	cancel()
	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

func TestRenderRecords(t *testing.T) {
	out := RenderRecords([]model.ResultRecord{
		{Date: "2026-10-14", Time: "08:29:10", RoundNumber: 42, Winner: model.WinnerPlayer},
	})
	assert.Contains(t, out, "Date & Time")
	assert.Contains(t, out, "14/10/2026 - 08:29")
	assert.Contains(t, out, "042")
	assert.Contains(t, out, "Player")

	assert.Contains(t, RenderRecords(nil), "No results recorded.")
}

func TestFormatDecision(t *testing.T) {
	accepted := model.Accept(model.ResultRecord{RoundNumber: 3, Winner: model.WinnerBanker})
	assert.Contains(t, FormatDecision(accepted), "round #3 recorded - winner: Banker")

	rejected := model.Reject(model.OutcomeRejectedTie, model.ReasonTie)
	assert.Contains(t, FormatDecision(rejected), model.ReasonTie)
}

func TestRenderStatistics(t *testing.T) {
	out := RenderStatistics(model.ComputeStatistics(nil))
	assert.Contains(t, out, "Total: 0 rounds")
}
