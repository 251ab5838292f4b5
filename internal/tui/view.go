package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodverse/internal/chart"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMenu:
		content = m.viewMenu()
	case StateAddMood:
		content = m.form.View()
	case StateResult:
		content = m.viewResult()
	case StateRecords:
		content = m.viewRecords()
	case StateChart:
		content = m.viewChart()
	case StateFetching:
		content = m.spinner.View() + " " + MsgFetching
	case StateInspiration:
		content = m.viewInspiration()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewMenu() string {
	parts := []string{m.menu.View()}
	if m.status != "" {
		parts = append(parts, dangerStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewResult() string {
	if !m.outcome.Accepted {
		msg := ""
		if m.outcome.Err != nil {
			msg = m.outcome.Err.Error()
		}
		return joinLines(dangerStyle.Render(msg), "", mutedStyle.Render(MsgReturnToMenu))
	}

	lines := []string{RecordAdded(m.outcome.Record), ""}
	if m.outcome.Poem == nil {
		lines = append(lines, MsgNoPoem)
	} else {
		lines = append(lines, PoemHeading(m.outcome.Poem.Name, m.outcome.Poem.Author)...)
		lines = append(lines, m.writer.visible()...)
	}

	if m.writer.done() {
		if msg := TrendMessage(m.outcome.Trend); msg != "" {
			lines = append(lines, "", warningStyle.Render(msg))
		}
		lines = append(lines, "", mutedStyle.Render(MsgReturnToMenu))
	}
	return joinLines(lines...)
}

func (m Model) viewRecords() string {
	lines := []string{titleStyle.Render("Mood Records:"), ""}
	records := m.session.ListRecords()
	if len(records) == 0 {
		lines = append(lines, MsgNoRecords)
	}
	for _, r := range records {
		lines = append(lines, RecordLine(r))
	}
	lines = append(lines, "", mutedStyle.Render(MsgReturnToMenu))
	return joinLines(lines...)
}

// chartWidth is the room inside the chart frame; the chart itself reserves the axis labels.
func (m Model) chartWidth() int {
	return m.width - chartFrameStyle.GetHorizontalFrameSize()
}

func (m Model) viewChart() string {
	plot, ok := chart.Render(m.session.HistoryForChart(), chart.Options{Width: m.chartWidth()})
	if !ok {
		return joinLines(chart.EmptyMessage, "", mutedStyle.Render(MsgReturnToMenu))
	}
	return joinLines(chartFrameStyle.Render(plot), "", mutedStyle.Render(MsgReturnToMenu))
}

func (m Model) viewInspiration() string {
	lines := []string{inspirationStyle.Render("Inspirations"), ""}
	if !m.inspired {
		lines = append(lines, MsgFetchFailed)
	} else {
		lines = append(lines, PoemHeading(m.inspiration.Title, m.inspiration.Author)...)
		lines = append(lines, m.writer.visible()...)
	}
	if m.writer.done() {
		lines = append(lines, "", mutedStyle.Render(MsgReturnToMenu))
	}
	return joinLines(lines...)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
