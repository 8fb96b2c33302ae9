package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/kanban"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func endDate(d apitasks.Detail) string {
	if d.EndDate == nil {
		return kanban.NoDeadline
	}
	return kanban.FormatBrazilian(d.EndDate.String())
}

// UserTable draws users in a table.
func UserTable(users []apiusers.Detail) string {
	t := newTable("ID", "NAME", "BIRTH DATE", "AGE")
	for _, u := range users {
		t.Row(
			strconv.FormatInt(u.Id, 10),
			u.FullName(),
			kanban.FormatBrazilian(u.BirthDate.String()),
			strconv.Itoa(u.Age),
		)
	}
	return t.String()
}

// TaskTable draws tasks in a table.
func TaskTable(tasks []apitasks.Detail) string {
	t := newTable("ID", "TITLE", "STATUS", "PRIORITY", "ASSIGNEE", "END DATE", "TAGS")
	for _, d := range tasks {
		t.Row(
			strconv.FormatInt(d.Id, 10),
			d.Title,
			d.Status,
			d.Priority,
			d.Assignee.FullName(),
			endDate(d),
			strings.Join(d.Tags, ", "),
		)
	}
	return t.String()
}

// TaskDetail draws all about a task.
func TaskDetail(d apitasks.Detail) string {
	label := lipgloss.NewStyle().Bold(true).Width(12)
	updated := "-"
	if d.UpdatedAt != nil {
		updated = d.UpdatedAt.String()
	}
	rows := [][2]string{
		{"id", strconv.FormatInt(d.Id, 10)},
		{"title", d.Title},
		{"status", fmt.Sprintf("%s (%s)", d.Status, kanban.StatusFromBackend(d.Status).Title())},
		{"priority", d.Priority},
		{"creator", fmt.Sprintf("%s (#%d)", d.Creator.FullName(), d.Creator.Id)},
		{"assignee", fmt.Sprintf("%s (#%d)", d.Assignee.FullName(), d.Assignee.Id)},
		{"end date", endDate(d)},
		{"tags", strings.Join(d.Tags, ", ")},
		{"created at", d.CreatedAt.String()},
		{"updated at", updated},
	}
	lines := make([]string, 0, len(rows)+2)
	for _, r := range rows {
		lines = append(lines, label.Render(r[0])+r[1])
	}
	if d.Description != "" {
		lines = append(lines, "", d.Description)
	}
	return strings.Join(lines, "\n")
}
