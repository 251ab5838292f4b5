package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodverse/internal/constants"
)

type typeTickMsg struct {
	id int
}

// typewriter reveals lines one rune per tick.
type typewriter struct {
	id    int
	lines [][]rune
	total int
	shown int
}

func newTypewriter(id int, lines []string) typewriter {
	t := typewriter{id: id, lines: make([][]rune, len(lines))}
	for i, l := range lines {
		t.lines[i] = []rune(l)
		t.total += len(t.lines[i])
	}
	return t
}

func (t typewriter) tick() tea.Cmd {
	if t.done() {
		return nil
	}
	id := t.id
	return tea.Tick(constants.TypewriterInterval, func(time.Time) tea.Msg {
		return typeTickMsg{id: id}
	})
}

func (t typewriter) done() bool {
	return t.shown >= t.total
}

func (t *typewriter) advance() {
	if t.shown < t.total {
		t.shown++
	}
}

func (t *typewriter) finish() {
	t.shown = t.total
}

// visible returns the lines revealed so far.
func (t typewriter) visible() []string {
	if t.done() {
		out := make([]string, len(t.lines))
		for i, l := range t.lines {
			out[i] = string(l)
		}
		return out
	}

	var out []string
	left := t.shown
	for _, l := range t.lines {
		if left <= 0 {
			break
		}
		n := min(left, len(l))
		out = append(out, string(l[:n]))
		left -= n
	}
	return out
}
