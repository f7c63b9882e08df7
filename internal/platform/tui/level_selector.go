package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minesweeper/internal/core"
	"github.com/vovakirdan/tui-minesweeper/internal/registry"
)

// LevelSelectorModel lets users pick a level before a single game.
type LevelSelectorModel struct {
	levels    []registry.GameInfo
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	quitting  bool
	back      bool
}

// NewLevelSelectorModel creates a selector over the registered levels.
func NewLevelSelectorModel(width, height int) LevelSelectorModel {
	return LevelSelectorModel{
		levels:    registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		} else if len(m.levels) > 0 {
			m.cursor = len(m.levels) - 1
		}
	case MenuActionDown:
		if len(m.levels) > 0 {
			m.cursor = (m.cursor + 1) % len(m.levels)
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the level list.
func (m LevelSelectorModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("SELECT LEVEL", m.width)))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := centerText(cursor+l.Title, m.width)
		if i == m.cursor {
			line = menuSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level id, or "" if none was chosen.
func (m LevelSelectorModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectorModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker and returns the chosen level id.
// An empty id means the user backed out or quit.
func RunLevelSelector(cfg core.RuntimeConfig) (string, error) {
	model := NewLevelSelectorModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(LevelSelectorModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
