// Package tui is a terminal presentation of a single local session. It keeps
// no game state of its own and re-renders from the session after every key.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/render"
)

const boardWidth = 3

type Model struct {
	session *entity.Session
	keys    KeyMap
	help    help.Model

	cursor int
	notice string
}

func NewModel(session *entity.Session) Model {
	return Model{
		session: session,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		cursor:  boardWidth + 1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.notice = ""
	case key.Matches(msg, m.keys.Cell):
		n, _ := strconv.Atoi(msg.String())
		m.cursor = n - 1
		m.place(m.cursor)
	case key.Matches(msg, m.keys.Place):
		m.place(m.cursor)
	case key.Matches(msg, m.keys.Up):
		if m.cursor >= boardWidth {
			m.cursor -= boardWidth
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < entity.BoardSize-boardWidth {
			m.cursor += boardWidth
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%boardWidth > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%boardWidth < boardWidth-1 {
			m.cursor++
		}
	}

	return m, nil
}

func (m *Model) place(cell int) {
	placement, err := m.session.PlaceMark(cell)
	if err != nil {
		m.notice = err.Error()
		return
	}

	switch placement {
	case entity.PlacementCellOccupied:
		m.notice = "cell " + strconv.Itoa(cell+1) + " is taken"
	case entity.PlacementGameOver:
		m.notice = "game over, press r for a new one"
	default:
		m.notice = ""
	}
}

func (m Model) View() string {
	snapshot := m.session.Snapshot()

	var b strings.Builder

	b.WriteString(m.renderBoard(snapshot.Board))
	b.WriteString("\n")

	if banner := render.Banner(snapshot.Outcome); banner != "" {
		b.WriteString(BannerStyle.Render(banner))
	} else {
		b.WriteString(markStyle(snapshot.Turn).Render(string(snapshot.Turn)) + " to move")
	}
	b.WriteString("\n")

	b.WriteString(render.Scoreboard(snapshot.Scores))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(StatusStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderBoard(board entity.Board) string {
	rows := make([]string, 0, boardWidth)

	for row := 0; row < boardWidth; row++ {
		cells := make([]string, 0, boardWidth)

		for col := 0; col < boardWidth; col++ {
			i := row*boardWidth + col

			style := CellStyle
			if i == m.cursor {
				style = CursorStyle
			}

			cells = append(cells, style.Render(renderMark(board[i], i)))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderMark(mark entity.Mark, cell int) string {
	if mark == entity.MarkEmpty {
		return EmptyStyle.Render(strconv.Itoa(cell + 1))
	}

	return markStyle(mark).Render(string(mark))
}

func markStyle(mark entity.Mark) lipgloss.Style {
	if mark == entity.MarkX {
		return XStyle
	}

	return OStyle
}
