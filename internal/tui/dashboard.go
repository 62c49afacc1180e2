// Package tui implements the live results dashboard.
package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/report"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/Veraticus/suitwatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultRefreshInterval is how often the dashboard reloads the store.
const DefaultRefreshInterval = 5 * time.Second

const minTableHeight = 5

type recordsLoadedMsg struct {
	loadedAt time.Time
	err      error
	records  []model.ResultRecord
}

type tickMsg struct{}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx      context.Context
	store    service.ResultStore
	now      func() time.Time
	lastLoad time.Time
	err      error
	theme    themes.Theme
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	share    progress.Model
	table    table.Model
	stats    model.Statistics
	interval time.Duration
	width    int
	height   int
	loading  bool
}

// NewModel creates a dashboard over store that reloads every interval.
func NewModel(ctx context.Context, store service.ResultStore, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	theme := themes.Default

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	share := progress.New(progress.WithSolidFill(string(theme.PlayerColor)))
	share.ShowPercentage = false
	share.Width = 40

	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Selected = theme.TableSelected

	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
		table.WithStyles(styles),
	)

	return Model{
		ctx:      ctx,
		store:    store,
		now:      time.Now,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		share:    share,
		table:    t,
		interval: interval,
		loading:  true,
	}
}

func columns() []table.Column {
	return []table.Column{
		{Title: report.HeaderDateTime, Width: 20},
		{Title: report.HeaderRound, Width: 8},
		{Title: report.HeaderWinner, Width: 24},
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.share.Width = min(max(msg.Width-20, 10), 40)
		m.table.SetHeight(max(msg.Height-16, minTableHeight))
		return m, nil

	case recordsLoadedMsg:
		m.loading = false
		m.lastLoad = msg.loadedAt
		m.err = msg.err
		if msg.err == nil {
			m.stats = model.ComputeStatistics(msg.records)
			m.table.SetRows(recentRows(msg.records))
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })

	case tickMsg:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.load(), m.spinner.Tick)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	header := m.theme.Title.Render("🃏 suitwatch")

	status := m.theme.StatusPending.Render("updated " + m.lastLoad.Format("15:04:05"))
	switch {
	case m.loading:
		status = m.spinner.View() + m.theme.StatusPending.Render(" loading results...")
	case m.err != nil:
		status = m.theme.StatusError.Render("load failed: " + m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.theme.RoundedBox.Render(m.renderStats()),
		m.table.View(),
		status,
		m.help.View(m.keys),
	)
}

func (m Model) renderStats() string {
	if m.stats.Total == 0 {
		return m.theme.Subtitle.Render(report.EmptyPlaceholder)
	}

	player := m.theme.Player.Render(fmt.Sprintf("Player %d (%.1f%%)", m.stats.PlayerWins, m.stats.PlayerRate))
	banker := m.theme.Banker.Render(fmt.Sprintf("Banker %d (%.1f%%)", m.stats.BankerWins, m.stats.BankerRate))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render(fmt.Sprintf("%d rounds", m.stats.Total)),
		player+"  "+banker,
		m.share.ViewAs(m.stats.PlayerRate/100),
	)
}

func (m Model) load() tea.Cmd {
	ctx, store, now := m.ctx, m.store, m.now
	return func() tea.Msg {
		records, err := store.ListAll(ctx)
		return recordsLoadedMsg{records: records, err: err, loadedAt: now()}
	}
}

// recentRows returns the table rows newest first.
func recentRows(records []model.ResultRecord) []table.Row {
	t := report.BuildTable(records)
	if t.Empty() {
		return nil
	}
	rows := make([]table.Row, 0, len(t.Rows))
	for _, row := range slices.Backward(t.Rows) {
		rows = append(rows, table.Row(row))
	}
	return rows
}
