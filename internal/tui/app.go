package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dialmaster/docktui/internal/config"
	"github.com/dialmaster/docktui/internal/docker"
)

// Run starts the dashboard and blocks until the user quits
func Run(cfg *config.Config, runtime docker.Runtime) error {
	model := NewModel(cfg, runtime)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
