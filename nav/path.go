package nav

import (
	"container/heap"
	"math"
	"slices"

	"github.com/plus3/sim2d/shape"
)

// DestinationReached reports whether actual is the expected square. Only a
// square with identical corners counts; a square that merely overlaps or
// contains the destination does not.
func DestinationReached(expected, actual shape.Rect) bool {
	return expected.Min == actual.Min && expected.Max() == actual.Max()
}

// FindPath returns the cheapest route from start to goal, both ends included,
// where stepping between squares costs the distance between their centres.
// It returns nil when either id is unknown or no route exists.
func (g *Graph) FindPath(start, goal SquareID) []SquareID {
	if !g.valid(start) || !g.valid(goal) {
		return nil
	}
	target := g.squares[goal]

	cost := make([]float64, len(g.squares))
	prev := make([]SquareID, len(g.squares))
	for i := range cost {
		cost[i] = math.Inf(1)
		prev[i] = NoSquare
	}
	cost[start] = 0

	open := &frontier{{id: start}}
	for open.Len() > 0 {
		current := heap.Pop(open).(frontierItem)
		if current.cost > cost[current.id] {
			continue
		}
		if DestinationReached(target, g.squares[current.id]) {
			return g.unwind(prev, current.id)
		}

		center := g.squares[current.id].Center()
		for _, next := range g.adjacency[current.id] {
			step := current.cost + g.squares[next].Center().Sub(center).Length()
			if step < cost[next] {
				cost[next] = step
				prev[next] = current.id
				heap.Push(open, frontierItem{id: next, cost: step})
			}
		}
	}
	return nil
}

func (g *Graph) unwind(prev []SquareID, end SquareID) []SquareID {
	var path []SquareID
	for id := end; id != NoSquare; id = prev[id] {
		path = append(path, id)
	}
	slices.Reverse(path)
	return path
}

type frontierItem struct {
	id   SquareID
	cost float64
}

// frontier is a min-heap on cost.
type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	item := old[len(old)-1]
	*f = old[:len(old)-1]
	return item
}
