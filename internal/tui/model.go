package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/session"
)

const (
	defaultMenuWidth  = 60
	defaultMenuHeight = 20
)

type SessionState int

const (
	StateMenu SessionState = iota
	StateAddMood
	StateResult
	StateRecords
	StateChart
	StateFetching
	StateInspiration
)

type MenuAction int

const (
	ActionAdd MenuAction = iota + 1
	ActionRecords
	ActionChart
	ActionInspire
	ActionExit
)

type menuItem struct {
	action MenuAction
	title  string
	desc   string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{ActionAdd, "1. Add mood record", "score today or a past day"},
		menuItem{ActionRecords, "2. View mood records", "entries from this session"},
		menuItem{ActionChart, "3. View mood chart", "mood over time"},
		menuItem{ActionInspire, "4. Inspirations", "a random poem from the poem service"},
		menuItem{ActionExit, "5. Exit", ""},
	}
}

type MoodFormModel struct {
	Date  string
	Score string
}

type inspirationMsg struct {
	poem models.ExternalPoem
	ok   bool
}

type Model struct {
	ctx     context.Context
	session *session.Session
	state   SessionState
	keys    journalKeys
	help    help.Model
	menu    list.Model
	spinner spinner.Model

	form     *huh.Form
	moodForm *MoodFormModel

	outcome     session.RecordOutcome
	inspiration models.ExternalPoem
	inspired    bool
	writer      typewriter
	writerSeq   int

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, s *session.Session) Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), defaultMenuWidth, defaultMenuHeight)
	menu.Title = "Mood Tracker"
	menu.SetFilteringEnabled(false)
	menu.SetShowStatusBar(false)
	menu.SetShowHelp(false)
	menu.Styles.Title = titleStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		session: s,
		state:   StateMenu,
		keys:    newJournalKeys(),
		help:    help.New(),
		menu:    menu,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateMenu:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Quit, m.keys.Help}
	case StateAddMood:
		return []key.Binding{m.keys.Back}
	default:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func newMoodForm(fm *MoodFormModel, today string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter Date (YYYY-MM-DD):").
				Description("Current date: "+today).
				Placeholder(today).
				CharLimit(10).
				Value(&fm.Date),
			huh.NewInput().
				Title("Enter mood score (1-10):").
				CharLimit(2).
				Value(&fm.Score).
				Validate(func(s string) error {
					if _, verr := session.ParseScore(s); verr != nil {
						return verr
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func fetchInspiration(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		poem, ok := s.Inspiration(ctx)
		return inspirationMsg{poem: poem, ok: ok}
	}
}
