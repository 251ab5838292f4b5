package journal

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/session"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/internal/tui"
)

type TuiCmd struct{}

// Run starts the journal. A missing or broken poem database only disables poems.
func (c *TuiCmd) Run(ctx *cli.Context) error {
	var poems storage.PoemStore
	store, err := ctx.Store()
	if err != nil {
		logger.Warn("Poem database unavailable, continuing without poems", "error", err)
	} else {
		if err := store.Load(); err != nil {
			logger.Warn("Poem database could not be loaded", "path", store.GetConfigPath(), "error", err)
		}
		poems = store
	}

	sess := session.New(poems, ctx.Poetry(), ctx.Now())
	logger.Info("Starting journal", "session", sess.ID().String())

	p := tea.NewProgram(tui.NewModel(context.Background(), sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running journal: %w", err)
	}
	return nil
}
