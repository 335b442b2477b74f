package nav

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
)

// Status is an agent's navigation state.
type Status uint8

const (
	// StatusIdle means the agent has a goal but no plan yet.
	StatusIdle Status = iota
	StatusMoving
	StatusArrived
	// StatusUnreachable means the agent or its goal lies outside the graph, or
	// no route connects them.
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusMoving:
		return "moving"
	case StatusArrived:
		return "arrived"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Agent steers an entity to Goal through the navigation graph at Speed units
// per second. Path and Step are owned by the System: Path[Step] is the next
// square to enter, and Step == len(Path) means the final approach to Goal.
// An agent without a positive Speed can never arrive and is marked
// StatusUnreachable when planned.
type Agent struct {
	Goal  cp.Vector
	Speed float64

	Path   []SquareID
	Step   int
	Status Status
}

func (*Agent) Kind() ecs.Kind { return component.KindNavAgent }

// SetGoal points the agent at a new goal and discards the current plan.
func (a *Agent) SetGoal(goal cp.Vector) {
	a.Goal = goal
	a.Path = nil
	a.Step = 0
	a.Status = StatusIdle
}
