package main

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/nav"
)

// WanderSystem gives agents a new random goal once they arrive or give up.
type WanderSystem struct {
	graph    *nav.Graph
	rng      *rand.Rand
	entities *ecs.Collector
	scratch  []ecs.EntityId

	Arrivals    int64
	Unreachable int64
}

func NewWanderSystem(scene *ecs.Scene, graph *nav.Graph, rng *rand.Rand) *WanderSystem {
	return &WanderSystem{
		graph:    graph,
		rng:      rng,
		entities: ecs.NewCollector(scene, component.KindNavAgent),
	}
}

func (s *WanderSystem) Execute(frame *ecs.UpdateFrame) {
	s.scratch = s.entities.AppendEntities(s.scratch[:0])
	for _, id := range s.scratch {
		agent, ok := ecs.Get[*nav.Agent](frame.Scene, id)
		if !ok {
			continue
		}
		switch agent.Status {
		case nav.StatusArrived:
			s.Arrivals++
		case nav.StatusUnreachable:
			s.Unreachable++
		default:
			continue
		}
		square, _ := s.graph.Square(nav.SquareID(s.rng.IntN(s.graph.Len())))
		agent.SetGoal(square.Center())
	}
}

func (s *WanderSystem) Close() error {
	return s.entities.Close()
}

// BoundsSystem keeps moving entities inside the world, reflecting their
// velocity off its edges.
type BoundsSystem struct {
	width, height float64
	entities      *ecs.Collector
	scratch       []ecs.EntityId
}

func NewBoundsSystem(scene *ecs.Scene, width, height float64) *BoundsSystem {
	return &BoundsSystem{
		width:    width,
		height:   height,
		entities: ecs.NewCollector(scene, component.KindTransform, component.KindMovement),
	}
}

func (s *BoundsSystem) Execute(frame *ecs.UpdateFrame) {
	s.scratch = s.entities.AppendEntities(s.scratch[:0])
	for _, id := range s.scratch {
		transform, ok := ecs.Get[*component.Transform](frame.Scene, id)
		if !ok {
			continue
		}
		movement, ok := ecs.Get[*component.Movement](frame.Scene, id)
		if !ok {
			continue
		}

		p := &transform.Position
		v := &movement.Velocity
		switch {
		case p.X < 0:
			p.X, v.X = 0, math.Abs(v.X)
		case p.X > s.width:
			p.X, v.X = s.width, -math.Abs(v.X)
		}
		switch {
		case p.Y < 0:
			p.Y, v.Y = 0, math.Abs(v.Y)
		case p.Y > s.height:
			p.Y, v.Y = s.height, -math.Abs(v.Y)
		}
	}
}

func (s *BoundsSystem) Close() error {
	return s.entities.Close()
}
