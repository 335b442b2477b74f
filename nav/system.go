package nav

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
	"go.uber.org/zap"
)

// ArriveTolerance is how close an agent must get to its goal point to arrive.
const ArriveTolerance = 1e-6

// System plans and follows routes for entities with a Transform, a Movement
// and an Agent. It only writes Movement.Velocity, so register it before the
// movement system.
type System struct {
	graph    *Graph
	entities *ecs.Collector
	logger   *zap.Logger
	scratch  []ecs.EntityId
}

// NewSystem creates a pathfinding system over graph, bound to scene.
func NewSystem(scene *ecs.Scene, graph *Graph) *System {
	return &System{
		graph:    graph,
		entities: ecs.NewCollector(scene, component.KindTransform, component.KindMovement, component.KindNavAgent),
		logger:   scene.Logger().Named("nav"),
	}
}

// Graph returns the graph the system navigates.
func (s *System) Graph() *Graph {
	return s.graph
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
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
		agent, ok := ecs.Get[*Agent](frame.Scene, id)
		if !ok {
			continue
		}
		s.steer(id, agent, transform.Position, movement, frame.DeltaTime)
	}
}

func (s *System) steer(id ecs.EntityId, agent *Agent, position cp.Vector, movement *component.Movement, dt float64) {
	switch agent.Status {
	case StatusArrived, StatusUnreachable:
		return
	case StatusIdle:
		if !s.plan(id, agent, position) {
			movement.Velocity = cp.Vector{}
			return
		}
	}

	if current, ok := s.graph.SquareAt(position); ok {
		for agent.Step < len(agent.Path) && agent.Path[agent.Step] == current {
			agent.Step++
		}
	}

	target := agent.Goal
	if agent.Step < len(agent.Path) {
		target = s.graph.squares[agent.Path[agent.Step]].Center()
	}

	delta := target.Sub(position)
	dist := delta.Length()
	if agent.Step >= len(agent.Path) && dist <= ArriveTolerance {
		agent.Status = StatusArrived
		movement.Velocity = cp.Vector{}
		if ce := s.logger.Check(zap.DebugLevel, "agent arrived"); ce != nil {
			ce.Write(zap.Stringer("entity", id), zap.Int("squares", len(agent.Path)))
		}
		return
	}
	if dist == 0 {
		return
	}

	// land exactly on the target instead of overshooting it
	speed := agent.Speed
	if dt > 0 && dist < speed*dt {
		speed = dist / dt
	}
	movement.Velocity = delta.Mult(speed / dist)
}

func (s *System) plan(id ecs.EntityId, agent *Agent, position cp.Vector) bool {
	agent.Path = nil
	agent.Step = 0

	start, okStart := s.graph.SquareAt(position)
	goal, okGoal := s.graph.SquareAt(agent.Goal)
	if okStart && okGoal && agent.Speed > 0 {
		agent.Path = s.graph.FindPath(start, goal)
	}
	if agent.Path == nil {
		agent.Status = StatusUnreachable
		s.logger.Debug("goal unreachable",
			zap.Stringer("entity", id),
			zap.Float64("goal_x", agent.Goal.X),
			zap.Float64("goal_y", agent.Goal.Y),
		)
		return false
	}

	agent.Status = StatusMoving
	return true
}

// Close releases the system's collector.
func (s *System) Close() error {
	return s.entities.Close()
}
