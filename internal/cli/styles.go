// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/report"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (felt green).
	PrimaryColor = lipgloss.Color("#2E8B57")
	// PlayerColor marks Player wins.
	PlayerColor = lipgloss.Color("#4A90E2")
	// BankerColor marks Banker wins.
	BankerColor = lipgloss.Color("#E25A4A")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	playerStyle = lipgloss.NewStyle().Bold(true).Foreground(PlayerColor)
	bankerStyle = lipgloss.NewStyle().Bold(true).Foreground(BankerColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CardsIcon   = "🃏"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the cards icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CardsIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatWinner colors a winner label by side.
func FormatWinner(w model.Winner) string {
	switch w {
	case model.WinnerPlayer:
		return playerStyle.Render(w.String())
	case model.WinnerBanker:
		return bankerStyle.Render(w.String())
	default:
		return SubtleStyle.Render(w.String())
	}
}

// FormatDecision renders a classification outcome on one line.
func FormatDecision(d model.Decision) string {
	if d.Accepted() {
		return FormatSuccess(d.Reason)
	}
	return FormatWarning(fmt.Sprintf("%s: %s", d.Outcome, d.Reason))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderStatistics renders the statistics block in a box.
func RenderStatistics(stats model.Statistics) string {
	return RenderBox(ChartIcon+" Statistics", stats.Summary())
}

// RenderRecords renders the export table with aligned columns.
func RenderRecords(records []model.ResultRecord) string {
	table := report.BuildTable(records)
	if table.Empty() {
		return SubtleStyle.Render(report.EmptyPlaceholder)
	}

	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...)))
	b.WriteString("\n")

	for r, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 2 {
				cell = FormatWinner(records[r].Winner)
			}
			cells[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}
