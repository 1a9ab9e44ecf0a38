package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/render"
)

// Step sizes of keyboard resizing.
const (
	tuiWidthStep  = 5.0
	tuiHeightStep = 20.0
)

var (
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// tuiCommand creates the tui command.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the board interactively",
		Long: `Open the board in an interactive terminal editor. Changes are saved as they
are made.

Keys:
  ←/→/↑/↓ h/j/k/l   select a card
  H / L              move the card left / right in its row
  K / J              move the card to the row above / below
  + / -              widen / narrow the card
  ] / [              make the row taller / shorter
  a / n              add a card to this row / as a new row
  d                  delete the card
  q                  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				_, err := tea.NewProgram(NewBoardModel(e), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
				return err
			}, engine.WithGeometry(engine.GridGeometry()))
		},
	}
}

// =============================================================================
// BoardModel - Interactive board editor
// =============================================================================

// BoardModel is the bubbletea model of the board editor. The engine must use
// grid geometry so widths move in percentage points.
type BoardModel struct {
	Engine *engine.Engine
	Row    int
	Col    int
	Width  int
	Status string

	newID func() string
}

// NewBoardModel creates a board editor on e.
func NewBoardModel(e *engine.Engine) BoardModel {
	return BoardModel{Engine: e, Width: render.DefaultTextWidth, newID: uuid.NewString}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 20)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Col--
		case "right", "l":
			m.Col++
		case "up", "k":
			m.Row--
		case "down", "j":
			m.Row++
		case "H", "shift+left":
			m.reorder(-1)
		case "L", "shift+right":
			m.reorder(1)
		case "K", "shift+up":
			m.moveRow(-1)
		case "J", "shift+down":
			m.moveRow(1)
		case "+", "=":
			m.resizeWidth(tuiWidthStep)
		case "-":
			m.resizeWidth(-tuiWidthStep)
		case "]":
			m.resizeHeight(tuiHeightStep)
		case "[":
			m.resizeHeight(-tuiHeightStep)
		case "a":
			m.add(false)
		case "n":
			m.add(true)
		case "d", "x", "delete":
			m.remove()
		}
	}
	m.clamp()
	return m, nil
}

func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cardboard"))
	b.WriteString("\n\n")
	opts := []render.TextOption{render.WithWidth(m.Width), render.WithDetails()}
	if c, ok := m.selected(); ok {
		opts = append(opts, render.WithSelected(c.ID))
	}
	b.WriteString(render.Text(m.Engine.Rows(), opts...))
	b.WriteString("\n\n")
	if m.Status != "" {
		b.WriteString(tuiStatusStyle.Render(m.Status))
		b.WriteString("\n")
	}
	b.WriteString(tuiHelpStyle.Render("arrows select  H/L/K/J move  +/- width  [/] height  a/n add  d delete  q quit"))
	return b.String()
}

// =============================================================================
// Actions
// =============================================================================

func (m *BoardModel) selected() (board.Card, bool) {
	rows := m.Engine.Rows()
	if m.Row < 0 || m.Row >= len(rows) || m.Col < 0 || m.Col >= len(rows[m.Row].Cards) {
		return board.Card{}, false
	}
	return rows[m.Row].Cards[m.Col], true
}

// clamp keeps the cursor on an existing card.
func (m *BoardModel) clamp() {
	rows := m.Engine.Rows()
	if len(rows) == 0 {
		m.Row, m.Col = 0, 0
		return
	}
	m.Row = min(max(m.Row, 0), len(rows)-1)
	m.Col = min(max(m.Col, 0), len(rows[m.Row].Cards)-1)
}

func (m *BoardModel) report(action string, cs board.ChangeSet) {
	if cs.Empty() {
		m.Status = action + ": nothing changed"
		return
	}
	m.Status = fmt.Sprintf("%s: %d rows, %d cards updated", action, len(cs.UpdatedRows), len(cs.UpdatedCards))
}

func (m *BoardModel) reorder(step int) {
	c, ok := m.selected()
	if !ok {
		return
	}
	to := m.Col + step
	if to < 0 {
		return
	}
	cs := m.Engine.ReorderCard(board.RowIDFor(m.Row), m.Col, to)
	if !cs.Empty() {
		if row, ok := m.Engine.FindRow(board.RowIDFor(m.Row)); ok {
			m.Col = row.IndexOf(c.ID)
		}
	}
	m.report("move "+string(c.ID), cs)
}

func (m *BoardModel) moveRow(step int) {
	c, ok := m.selected()
	if !ok {
		return
	}
	target := m.Row + step
	if target < 0 || target >= len(m.Engine.Rows()) {
		return
	}
	cs := m.Engine.MoveCard(c.ID, board.RowIDFor(m.Row), board.RowIDFor(target), m.Col)
	if moved, ok := m.Engine.FindCard(c.ID); ok {
		m.Row, m.Col = moved.Layout.Row, moved.Layout.Col
	}
	m.report("move "+string(c.ID), cs)
}

// resizeWidth drags the card's right border, or its left border for the
// last card of a row.
func (m *BoardModel) resizeWidth(delta float64) {
	c, ok := m.selected()
	if !ok {
		return
	}
	row, _ := m.Engine.FindRow(board.RowIDFor(m.Row))
	index := m.Col
	if index == len(row.Cards)-1 {
		index, delta = index-1, -delta
	}
	if index < 0 {
		m.Status = "a single card always spans the row"
		return
	}
	h := m.Engine.WidthHandle(row.ID, index)
	if err := h.DragStart(engine.Pointer{}); err != nil {
		m.Status = err.Error()
		return
	}
	m.report("resize "+string(c.ID), h.Drop(engine.Pointer{X: delta}))
}

func (m *BoardModel) resizeHeight(delta float64) {
	if _, ok := m.selected(); !ok {
		return
	}
	rowID := board.RowIDFor(m.Row)
	h := m.Engine.HeightHandle(rowID)
	if err := h.DragStart(engine.Pointer{}); err != nil {
		m.Status = err.Error()
		return
	}
	m.report("resize "+string(rowID), h.Drop(engine.Pointer{Y: delta}))
}

func (m *BoardModel) add(newRow bool) {
	card := board.Card{ID: board.CardID(m.newID())}
	card.Content = board.Content{"title": "New card"}

	var rowID board.RowID
	if !newRow && len(m.Engine.Rows()) > 0 {
		rowID = board.RowIDFor(m.Row)
		card.Layout.WidthPercentage = 100 / float64(len(m.Engine.Rows()[m.Row].Cards)+1)
	}
	cs := m.Engine.AddCard(rowID, card)
	if added, ok := m.Engine.FindCard(card.ID); ok {
		m.Row, m.Col = added.Layout.Row, added.Layout.Col
	}
	m.report("add", cs)
}

func (m *BoardModel) remove() {
	c, ok := m.selected()
	if !ok {
		return
	}
	m.report("delete "+string(c.ID), m.Engine.DeleteCard(c.ID, board.RowIDFor(m.Row)))
}
