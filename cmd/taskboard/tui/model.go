// Package tui is the interactive board.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/pkg/kanban"
	"github.com/taskboard/taskboard/pkg/utils"
)

type SearchMode int

const (
	ByUser SearchMode = iota
	ByTag
)

func (m SearchMode) String() string {
	if m == ByTag {
		return "tag"
	}
	return "usuário"
}

// Deps is what the model works on.
type Deps struct {
	Board *kanban.Board
	Users []kanban.User

	// SearchTag returns ids of tasks having tags containing tag.
	// When nil, tags on the board are searched.
	SearchTag func(ctx context.Context, tag string) ([]string, error)

	Clock func() time.Time
}

// searchMsg is a search term settled after typing.
type searchMsg struct{ term string }

// matchedMsg is ids of tasks found by term. nil ids means no filter.
type matchedMsg struct {
	term string
	ids  []string
	err  error
}

type refreshedMsg struct{ err error }

type droppedMsg struct {
	id  string
	err error
}

type Model struct {
	ctx    context.Context
	deps   Deps
	styles render.Styles

	// selection, in the filtered columns.
	col, row int

	// column which the card being sent is dropped over.
	over kanban.Status

	input     textinput.Model
	searching bool
	mode      SearchMode
	term      string

	// ids of tasks matching term. nil when not filtering.
	matched []string

	debouncer *kanban.Debouncer[string]

	width   int
	message string
	err     error
}

// New creates a model on deps.
//
// notify is called from other goroutines with messages to the model,
// like (*tea.Program).Send.
func New(ctx context.Context, deps Deps, notify func(tea.Msg)) *Model {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "buscar"
	return &Model{
		ctx:    ctx,
		deps:   deps,
		styles: render.DefaultStyles(),
		input:  in,
		debouncer: kanban.NewDebouncer(kanban.SearchDelay, func(term string) {
			notify(searchMsg{term: term})
		}),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.refresh
}

func (m *Model) refresh() tea.Msg {
	return refreshedMsg{err: m.deps.Board.Refresh(m.ctx)}
}

// columns are columns on the board, narrowed down by the search.
func (m *Model) columns() []kanban.Column {
	tasks := m.deps.Board.Snapshot()
	if m.matched != nil {
		tasks = slices.DeleteFunc(tasks, func(t kanban.Task) bool {
			return !slices.Contains(m.matched, t.Id)
		})
	}
	return kanban.Columns(tasks)
}

// Selected returns the task selected.
func (m *Model) Selected() (kanban.Task, bool) {
	cols := m.columns()
	if m.col < 0 || len(cols) <= m.col {
		return kanban.Task{}, false
	}
	tasks := cols[m.col].Tasks
	if m.row < 0 || len(tasks) <= m.row {
		return kanban.Task{}, false
	}
	return tasks[m.row], true
}

// clamp keeps the selection on the board.
func (m *Model) clamp() {
	cols := m.columns()
	m.col = max(0, min(m.col, len(cols)-1))
	m.row = max(0, min(m.row, len(cols[m.col].Tasks)-1))
}

// follow selects the task with id.
func (m *Model) follow(id string) {
	for c, col := range m.columns() {
		if r := slices.IndexFunc(col.Tasks, func(t kanban.Task) bool { return t.Id == id }); 0 <= r {
			m.col, m.row = c, r
			return
		}
	}
	m.clamp()
}

// drag drops the selected task onto the column next to it, by step.
func (m *Model) drag(step int) tea.Cmd {
	task, ok := m.Selected()
	if !ok {
		return nil
	}
	n := slices.Index(kanban.Statuses, task.Status) + step
	if n < 0 || len(kanban.Statuses) <= n {
		return nil
	}
	target := kanban.Statuses[n]

	send, ok := m.deps.Board.Move(task.Id, target.DroppableId())
	if !ok {
		return nil
	}
	m.over = target
	m.follow(task.Id)
	return func() tea.Msg {
		return droppedMsg{id: task.Id, err: send(m.ctx)}
	}
}

func (m *Model) search(term string) tea.Cmd {
	if strings.TrimSpace(term) == "" {
		return func() tea.Msg { return matchedMsg{term: term} }
	}
	if m.mode == ByUser {
		found := kanban.SearchByUser(m.deps.Board.Snapshot(), m.deps.Users, term)
		ids := utils.Map(found, func(t kanban.Task) string { return t.Id })
		return func() tea.Msg { return matchedMsg{term: term, ids: ids} }
	}
	if m.deps.SearchTag == nil {
		ids := []string{}
		needle := strings.ToLower(strings.TrimSpace(term))
		for _, t := range m.deps.Board.Snapshot() {
			if slices.ContainsFunc(t.Tags, func(tag string) bool {
				return strings.Contains(strings.ToLower(tag), needle)
			}) {
				ids = append(ids, t.Id)
			}
		}
		return func() tea.Msg { return matchedMsg{term: term, ids: ids} }
	}
	return func() tea.Msg {
		ids, err := m.deps.SearchTag(m.ctx, term)
		if ids == nil {
			ids = []string{}
		}
		return matchedMsg{term: term, ids: ids, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.message = "quadro atualizado"
		}
		m.clamp()
		return m, nil

	case droppedMsg:
		m.over = ""
		m.err = msg.err
		if msg.err == nil {
			m.message = fmt.Sprintf("tarefa #%s movida", msg.id)
		}
		m.follow(msg.id)
		return m, nil

	case searchMsg:
		if msg.term != m.input.Value() {
			// stale; a newer term is on the way.
			return m, nil
		}
		return m, m.search(msg.term)

	case matchedMsg:
		if msg.term != m.input.Value() {
			return m, nil
		}
		m.err = msg.err
		m.term = msg.term
		if strings.TrimSpace(msg.term) == "" {
			m.matched = nil
		} else {
			m.matched = msg.ids
		}
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.debouncer.Stop()
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.debouncer.Stop()
		m.term, m.matched = "", nil
		m.clamp()
		return m, nil
	case "enter":
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.debouncer.Push(v)
	}
	return m, cmd
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.debouncer.Stop()
		return m, tea.Quit
	case "left", "h":
		m.col -= 1
		m.clamp()
	case "right", "l":
		m.col += 1
		m.clamp()
	case "up", "k":
		m.row -= 1
		m.clamp()
	case "down", "j":
		m.row += 1
		m.clamp()
	case "shift+left", "H":
		return m, m.drag(-1)
	case "shift+right", "L":
		return m, m.drag(+1)
	case "/":
		m.searching = true
		return m, m.input.Focus()
	case "t":
		if m.mode == ByUser {
			m.mode = ByTag
		} else {
			m.mode = ByUser
		}
		if m.input.Value() != "" {
			return m, m.search(m.input.Value())
		}
	case "r":
		m.message = "atualizando..."
		return m, m.refresh
	}
	return m, nil
}

func (m *Model) View() string {
	today := m.deps.Clock()
	s := m.styles

	width := render.ColumnWidth
	if m.width > 0 {
		width = max(24, m.width/len(kanban.Statuses))
	}

	board := render.Board{
		Columns: m.columns(),
		Users:   m.deps.Users,
		Today:   today,
		Width:   width,
		Column:  m.col,
		Card:    m.row,
		Over:    m.over,
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("taskboard") + "  " +
			render.Stats(s, kanban.Summarize(m.deps.Board.Snapshot(), today)),
		board.Render(s),
	}

	search := s.Muted.Render(fmt.Sprintf("busca por %s", m.mode))
	switch {
	case m.searching:
		search = search + " " + m.input.View()
	case m.term != "":
		search = search + fmt.Sprintf(": %q (%d)", m.term, len(m.matched))
	}
	lines = append(lines, search)

	switch {
	case m.err != nil:
		lines = append(lines, s.OverdueDate.Render("erro: "+m.err.Error()))
	case m.message != "":
		lines = append(lines, s.Muted.Render(m.message))
	}
	lines = append(lines, s.Muted.Render(
		"←↑↓→ selecionar • shift+←/→ mover • / buscar • t usuário/tag • r atualizar • q sair",
	))
	return strings.Join(lines, "\n")
}

// Run shows the interactive board until quit.
func Run(ctx context.Context, deps Deps, options ...tea.ProgramOption) error {
	var p *tea.Program
	m := New(ctx, deps, func(msg tea.Msg) { p.Send(msg) })
	defer m.debouncer.Stop()

	p = tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, options...)...)
	_, err := p.Run()
	return err
}
