package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodverse/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.menu.SetSize(max(msg.Width-4, 1), max(msg.Height-6, 1))
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - 4)
		}
		return m, nil

	case typeTickMsg:
		if msg.id != m.writer.id {
			return m, nil
		}
		m.writer.advance()
		return m, m.writer.tick()

	case inspirationMsg:
		if m.state != StateFetching {
			return m, nil
		}
		m.inspiration = msg.poem
		m.inspired = msg.ok
		m.state = StateInspiration
		return m, m.startTyping(m.inspirationLines())

	case spinner.TickMsg:
		if m.state != StateFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateAddMood:
		return m.updateForm(msg)
	case StateMenu:
		return m.updateMenu(msg)
	case StateFetching:
		return m, nil
	case StateResult, StateInspiration:
		if _, ok := msg.(tea.KeyMsg); ok {
			if !m.writer.done() {
				m.writer.finish()
				return m, nil
			}
			m.state = StateMenu
		}
		return m, nil
	default:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state = StateMenu
		}
		return m, nil
	}
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Enter):
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			return m.choose(item.action)
		}
		return m, nil
	}

	if keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) == 1 {
		r := keyMsg.Runes[0]
		if r >= '1' && r <= '5' {
			m.menu.Select(int(r - '1'))
			return m.choose(MenuAction(r-'1') + ActionAdd)
		}
		if r >= '0' && r <= '9' {
			m.status = MsgInvalidChoice
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) choose(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case ActionAdd:
		m.moodForm = &MoodFormModel{}
		m.form = newMoodForm(m.moodForm, m.session.Today())
		if m.width > 0 {
			m.form = m.form.WithWidth(m.width - 4)
		}
		m.state = StateAddMood
		return m, m.form.Init()
	case ActionRecords:
		m.state = StateRecords
	case ActionChart:
		m.state = StateChart
	case ActionInspire:
		m.state = StateFetching
		m.inspired = false
		return m, tea.Batch(m.spinner.Tick, fetchInspiration(m.ctx, m.session))
	case ActionExit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateMenu
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submitMood(m.moodForm.Date, m.moodForm.Score))
		m.form = nil
	case huh.StateAborted:
		m.state = StateMenu
		m.form = nil
	}
	return m, tea.Batch(cmds...)
}

// submitMood records the entry and starts typing out the matched poem.
func (m *Model) submitMood(date, score string) tea.Cmd {
	m.outcome = m.session.RecordMood(m.ctx, date, score)
	m.state = StateResult
	if !m.outcome.Accepted {
		logger.Debug("Mood entry rejected", "reason", m.outcome.Err.Reason)
		m.writer = typewriter{}
		return nil
	}
	if m.outcome.Poem == nil {
		m.writer = typewriter{}
		return nil
	}
	return m.startTyping(PreviewLines(*m.outcome.Poem, m.lineWidth()))
}

func (m *Model) startTyping(lines []string) tea.Cmd {
	m.writerSeq++
	m.writer = newTypewriter(m.writerSeq, lines)
	return m.writer.tick()
}

func (m Model) inspirationLines() []string {
	if !m.inspired {
		return nil
	}
	limit := 0
	if m.height > 0 {
		limit = max(m.height-12, 1)
	}
	return fitLines(m.inspiration.Lines, limit, m.lineWidth())
}

func (m Model) lineWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width - 6
}

var _ list.Item = menuItem{}
