package kanban

import (
	"math"
	"slices"
	"strings"
)

// ActivationDistance is the distance a pointer should travel to start a drag.
const ActivationDistance = 8

type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.Width &&
		r.Y <= p.Y && p.Y <= r.Y+r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// IsDrag tells a pointer moving from "from" to "to" starts a drag.
func IsDrag(from, to Point) bool {
	return ActivationDistance <= distance(from, to)
}

// Droppable is a drop target, a column usually.
type Droppable struct {
	Id   string
	Rect Rect
}

// ColumnDroppables makes droppables of columns laid out from left to right.
func ColumnDroppables(origin Point, width, height, gap float64) []Droppable {
	ds := make([]Droppable, 0, len(Statuses))
	for i, s := range Statuses {
		ds = append(ds, Droppable{
			Id: s.DroppableId(),
			Rect: Rect{
				X: origin.X + float64(i)*(width+gap), Y: origin.Y,
				Width: width, Height: height,
			},
		})
	}
	return ds
}

// PointerWithin returns droppables containing pointer, in the given order.
func PointerWithin(pointer Point, droppables []Droppable) []Droppable {
	hit := []Droppable{}
	for _, d := range droppables {
		if d.Rect.Contains(pointer) {
			hit = append(hit, d)
		}
	}
	return hit
}

// ClosestCenter returns droppables ordered by the distance of their centers
// from the center of active. Ties keep the given order.
func ClosestCenter(active Rect, droppables []Droppable) []Droppable {
	c := active.Center()
	sorted := slices.Clone(droppables)
	slices.SortStableFunc(sorted, func(a, b Droppable) int {
		da, db := distance(c, a.Rect.Center()), distance(c, b.Rect.Center())
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Collisions detects droppables under the dragged item.
//
// Droppables under the pointer win. When there is none,
// all droppables are returned ordered by the distance from active.
func Collisions(pointer Point, active Rect, droppables []Droppable) []Droppable {
	if hit := PointerWithin(pointer, droppables); len(hit) != 0 {
		return hit
	}
	return ClosestCenter(active, droppables)
}

// Over is the id of the droppable the item is dropped on, or "" for nothing.
func Over(pointer Point, active Rect, droppables []Droppable) string {
	c := Collisions(pointer, active, droppables)
	if len(c) == 0 {
		return ""
	}
	return c[0].Id
}

// TargetStatus finds the column whose name is in overId.
//
// Statuses are tried in display order.
func TargetStatus(overId string) (Status, bool) {
	for _, s := range Statuses {
		if strings.Contains(overId, string(s)) {
			return s, true
		}
	}
	return "", false
}
