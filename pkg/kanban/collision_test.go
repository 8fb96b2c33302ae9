package kanban_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/taskboard/taskboard/pkg/kanban"
)

func droppableIds(ds []kanban.Droppable) []string {
	ret := make([]string, 0, len(ds))
	for _, d := range ds {
		ret = append(ret, d.Id)
	}
	return ret
}

// four columns of 100x400 with 20 gaps: x = 0, 120, 240, 360.
var columns = kanban.ColumnDroppables(kanban.Point{X: 0, Y: 0}, 100, 400, 20)

func TestColumnDroppables(t *testing.T) {
	want := []string{"droppable-todo", "droppable-in-progress", "droppable-review", "droppable-done"}
	if diff := cmp.Diff(want, droppableIds(columns)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := columns[2].Rect; got != (kanban.Rect{X: 240, Y: 0, Width: 100, Height: 400}) {
		t.Errorf("third column: %+v", got)
	}
}

func TestCollisions(t *testing.T) {
	card := func(x, y float64) kanban.Rect {
		return kanban.Rect{X: x, Y: y, Width: 80, Height: 40}
	}

	for name, testcase := range map[string]struct {
		pointer kanban.Point
		active  kanban.Rect
		then    []string
	}{
		"pointer within a column": {
			pointer: kanban.Point{X: 130, Y: 50},
			active:  card(10, 30),
			then:    []string{"droppable-in-progress"},
		},
		"pointer on an edge": {
			pointer: kanban.Point{X: 340, Y: 400},
			active:  card(300, 380),
			then:    []string{"droppable-review"},
		},
		"pointer in a gap falls back to the closest center": {
			pointer: kanban.Point{X: 110, Y: 200},
			active:  card(75, 180),
			then: []string{
				"droppable-in-progress", "droppable-todo", "droppable-review", "droppable-done",
			},
		},
		"pointer out of the board": {
			pointer: kanban.Point{X: 600, Y: -50},
			active:  card(560, -70),
			then: []string{
				"droppable-done", "droppable-review", "droppable-in-progress", "droppable-todo",
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := droppableIds(kanban.Collisions(testcase.pointer, testcase.active, columns))
			if diff := cmp.Diff(testcase.then, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if over := kanban.Over(testcase.pointer, testcase.active, columns); over != testcase.then[0] {
				t.Errorf("over: %s", over)
			}
		})
	}

	t.Run("nothing to drop on", func(t *testing.T) {
		if over := kanban.Over(kanban.Point{}, card(0, 0), nil); over != "" {
			t.Errorf("over: %s", over)
		}
	})
}

func TestIsDrag(t *testing.T) {
	origin := kanban.Point{X: 10, Y: 10}
	for when, then := range map[kanban.Point]bool{
		{X: 10, Y: 10}: false,
		{X: 15, Y: 15}: false,
		{X: 18, Y: 10}: true,
		{X: 16, Y: 18}: true,
	} {
		if got := kanban.IsDrag(origin, when); got != then {
			t.Errorf("%+v: got %v, want %v", when, got, then)
		}
	}
}

func TestTargetStatus(t *testing.T) {
	for when, then := range map[string]kanban.Status{
		"droppable-todo":        kanban.Todo,
		"droppable-in-progress": kanban.InProgress,
		"droppable-review":      kanban.Review,
		"droppable-done":        kanban.Done,
		"done":                  kanban.Done,
	} {
		got, ok := kanban.TargetStatus(when)
		if !ok || got != then {
			t.Errorf("%s: got (%s, %v)", when, got, ok)
		}
	}
	for _, when := range []string{"", "droppable-archive", "42"} {
		if got, ok := kanban.TargetStatus(when); ok {
			t.Errorf("%q: got %s", when, got)
		}
	}
}
