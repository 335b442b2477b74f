// Package nav finds routes through a graph of rectangular navigation squares
// and steers agents along them.
package nav

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/shape"
)

var (
	ErrInvalidSquare   = errors.New("nav: square must have positive size")
	ErrDuplicateSquare = errors.New("nav: duplicate square")
	ErrUnknownSquare   = errors.New("nav: edge references unknown square")
	ErrSelfEdge        = errors.New("nav: edge connects a square to itself")
	ErrInvalidGrid     = errors.New("nav: grid dimensions must not be negative")
)

// SquareID addresses a square within one Graph.
type SquareID int

// NoSquare is returned where no square applies.
const NoSquare SquareID = -1

// Edge connects two squares. Edges are undirected.
type Edge struct {
	From, To SquareID
}

// Graph is an immutable navigation graph. It is validated on construction and
// safe for concurrent reads afterwards.
type Graph struct {
	squares   []shape.Rect
	adjacency [][]SquareID
}

// NewGraph validates squares and edges and builds the adjacency lists. Square
// ids are indices into squares. Repeated edges are collapsed.
func NewGraph(squares []shape.Rect, edges []Edge) (*Graph, error) {
	seen := make(map[shape.Rect]SquareID, len(squares))
	for i, sq := range squares {
		if sq.W <= 0 || sq.H <= 0 {
			return nil, fmt.Errorf("%w: square %d is %s", ErrInvalidSquare, i, sq)
		}
		if prev, ok := seen[sq]; ok {
			return nil, fmt.Errorf("%w: squares %d and %d are both %s", ErrDuplicateSquare, prev, i, sq)
		}
		seen[sq] = SquareID(i)
	}

	g := &Graph{
		squares:   append([]shape.Rect(nil), squares...),
		adjacency: make([][]SquareID, len(squares)),
	}
	for _, e := range edges {
		if !g.valid(e.From) || !g.valid(e.To) {
			return nil, fmt.Errorf("%w: %d-%d", ErrUnknownSquare, e.From, e.To)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: %d", ErrSelfEdge, e.From)
		}
		if g.adjacent(e.From, e.To) {
			continue
		}
		g.adjacency[e.From] = append(g.adjacency[e.From], e.To)
		g.adjacency[e.To] = append(g.adjacency[e.To], e.From)
	}
	return g, nil
}

// NewGridGraph lays out a cols x rows grid of square cells starting at origin
// and links each open cell to its open 4-neighbours. blocked may be nil.
// Ids are assigned to open cells in row-major order.
func NewGridGraph(origin cp.Vector, cell float64, cols, rows int, blocked func(col, row int) bool) (*Graph, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("%w: cell size %g", ErrInvalidSquare, cell)
	}
	if cols < 0 || rows < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, cols, rows)
	}

	ids := make([]SquareID, cols*rows)
	var squares []shape.Rect
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if blocked != nil && blocked(col, row) {
				ids[row*cols+col] = NoSquare
				continue
			}
			ids[row*cols+col] = SquareID(len(squares))
			squares = append(squares, shape.NewRect(
				origin.X+float64(col)*cell,
				origin.Y+float64(row)*cell,
				cell, cell,
			))
		}
	}

	var edges []Edge
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			from := ids[row*cols+col]
			if from == NoSquare {
				continue
			}
			if col+1 < cols {
				if to := ids[row*cols+col+1]; to != NoSquare {
					edges = append(edges, Edge{From: from, To: to})
				}
			}
			if row+1 < rows {
				if to := ids[(row+1)*cols+col]; to != NoSquare {
					edges = append(edges, Edge{From: from, To: to})
				}
			}
		}
	}

	return NewGraph(squares, edges)
}

// Len returns the number of squares.
func (g *Graph) Len() int {
	return len(g.squares)
}

// Square returns the rectangle for id.
func (g *Graph) Square(id SquareID) (shape.Rect, bool) {
	if !g.valid(id) {
		return shape.Rect{}, false
	}
	return g.squares[id], true
}

// Neighbors returns the squares sharing an edge with id. The result must not be
// modified.
func (g *Graph) Neighbors(id SquareID) []SquareID {
	if !g.valid(id) {
		return nil
	}
	return g.adjacency[id]
}

// SquareAt returns the first square containing p. Squares sharing a border both
// contain it, so the lower id wins.
func (g *Graph) SquareAt(p cp.Vector) (SquareID, bool) {
	for i, sq := range g.squares {
		if shape.Contains(sq, p) {
			return SquareID(i), true
		}
	}
	return NoSquare, false
}

func (g *Graph) valid(id SquareID) bool {
	return id >= 0 && int(id) < len(g.squares)
}

func (g *Graph) adjacent(a, b SquareID) bool {
	return slices.Contains(g.adjacency[a], b)
}
