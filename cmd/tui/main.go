package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/tui"
)

func main() {
	p := tea.NewProgram(
		tui.NewModel(entity.NewSession(uuid.NewString())),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
