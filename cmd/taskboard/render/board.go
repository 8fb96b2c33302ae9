// Package render draws the board and tables for terminals.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskboard/taskboard/pkg/kanban"
)

// ColumnWidth is the default width of columns, borders included.
const ColumnWidth = 32

// most tags shown on a card. The rest are counted as "+N".
const maxTags = 2

type Styles struct {
	Column         lipgloss.Style
	ColumnOver     lipgloss.Style
	ColumnTitle    lipgloss.Style
	Card           lipgloss.Style
	CardSelected   lipgloss.Style
	CardOverdue    lipgloss.Style
	CardTitle      lipgloss.Style
	Muted          lipgloss.Style
	OverdueDate    lipgloss.Style
	Tag            lipgloss.Style
	PriorityBadges map[kanban.Priority]lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return Styles{
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		ColumnOver: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")),
		ColumnTitle:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Card:         card,
		CardSelected: card.BorderForeground(lipgloss.Color("39")),
		CardOverdue:  card.BorderForeground(lipgloss.Color("203")),
		CardTitle:    lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		OverdueDate:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Tag:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237")),
		PriorityBadges: map[kanban.Priority]lipgloss.Style{
			kanban.Low:    badge.Foreground(lipgloss.Color("114")),
			kanban.Medium: badge.Foreground(lipgloss.Color("221")),
			kanban.High:   badge.Foreground(lipgloss.Color("203")),
		},
	}
}

// Board tells what to draw.
type Board struct {
	Columns []kanban.Column
	Users   []kanban.User
	Today   time.Time

	// Width of each column. Zero is ColumnWidth.
	Width int

	// Selected card, as indexes of the column and of the card in it.
	// Column < 0 selects nothing.
	Column, Card int

	// Over is the status of the column a card is dragged over. Empty for none.
	Over kanban.Status
}

func tagsLine(s Styles, tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(shown) > maxTags {
		shown = shown[:maxTags]
	}
	parts := make([]string, 0, maxTags+1)
	for _, t := range shown {
		parts = append(parts, s.Tag.Render(t))
	}
	if rest := len(tags) - len(shown); rest > 0 {
		parts = append(parts, s.Muted.Render(fmt.Sprintf("+%d", rest)))
	}
	return strings.Join(parts, " ")
}

// Card draws a task. width includes borders.
func Card(s Styles, t kanban.Task, users []kanban.User, today time.Time, selected bool, width int) string {
	overdue := t.Status != kanban.Done && kanban.Overdue(t.EndDate, today)

	style := s.Card
	switch {
	case selected:
		style = s.CardSelected
	case overdue:
		style = s.CardOverdue
	}
	// Width of lipgloss excludes borders, and includes paddings.
	outer := width - style.GetHorizontalBorderSize()
	inner := outer - style.GetHorizontalPadding()

	badge, ok := s.PriorityBadges[t.Priority]
	if !ok {
		badge = s.Muted
	}
	deadline := s.Muted.Render(kanban.FormatDeadline(t.EndDate))
	if overdue {
		deadline = s.OverdueDate.Render(kanban.FormatDeadline(t.EndDate))
	}

	lines := []string{
		s.CardTitle.Width(inner).Render(fmt.Sprintf("#%s %s", t.Id, t.Title)),
		badge.Render(t.Priority.Label()) + " " + deadline,
		s.Muted.Render("@ " + kanban.UserName(users, t.Assignee)),
	}
	if tags := tagsLine(s, t.Tags); tags != "" {
		lines = append(lines, tags)
	}
	return style.Width(outer).Render(strings.Join(lines, "\n"))
}

// Column draws a column with its cards. selected is the index of the selected card, or -1.
func Column(s Styles, col kanban.Column, users []kanban.User, today time.Time, selected int, over bool, width int) string {
	style := s.Column
	if over {
		style = s.ColumnOver
	}
	inner := width - style.GetHorizontalBorderSize()

	parts := []string{
		s.ColumnTitle.Render(fmt.Sprintf("%s (%d)", col.Title(), len(col.Tasks))),
	}
	for i, t := range col.Tasks {
		parts = append(parts, Card(s, t, users, today, i == selected, inner))
	}
	if len(col.Tasks) == 0 {
		parts = append(parts, s.Muted.Padding(0, 1).Render("(vazio)"))
	}
	return style.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Render draws the board with columns side by side.
func (b Board) Render(s Styles) string {
	width := b.Width
	if width <= 0 {
		width = ColumnWidth
	}
	cols := make([]string, 0, len(b.Columns))
	for i, c := range b.Columns {
		selected := -1
		if i == b.Column {
			selected = b.Card
		}
		over := b.Over != "" && c.Status == b.Over
		cols = append(cols, Column(s, c, b.Users, b.Today, selected, over, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// Stats draws counts of tasks in a line.
func Stats(s Styles, st kanban.Stats) string {
	items := []string{
		fmt.Sprintf("Total: %d", st.Total),
		fmt.Sprintf("Concluídas: %d", st.Completed),
		fmt.Sprintf("Em Progresso: %d", st.InProgress),
	}
	overdue := fmt.Sprintf("Atrasadas: %d", st.Overdue)
	if st.Overdue > 0 {
		overdue = s.OverdueDate.Render(overdue)
	}
	items = append(items, overdue)
	return strings.Join(items, s.Muted.Render("  |  "))
}
