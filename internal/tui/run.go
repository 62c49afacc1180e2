package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/suitwatch/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, store service.ResultStore, interval time.Duration) error {
	if store == nil {
		return fmt.Errorf("dashboard requires a store")
	}

	p := tea.NewProgram(NewModel(ctx, store, interval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
