// Package physics provides the per-tick movement and collision systems.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
)

// MovementSystem integrates acceleration and velocity for every entity with a
// Transform and a Movement.
type MovementSystem struct {
	entities *ecs.Collector
	scratch  []ecs.EntityId
}

// NewMovementSystem creates a movement system bound to scene.
func NewMovementSystem(scene *ecs.Scene) *MovementSystem {
	return &MovementSystem{
		entities: ecs.NewCollector(scene, component.KindTransform, component.KindMovement),
	}
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
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
		Integrate(id, transform, movement, frame.DeltaTime)
	}
}

// Close releases the system's collector.
func (s *MovementSystem) Close() error {
	return s.entities.Close()
}

// Integrate advances one entity by dt: velocity from acceleration (clamped to
// MaxSpeed), position from velocity, then facing. OnStop fires on the tick the
// velocity becomes exactly zero after the entity had been moving, and not
// again until it moves and stops once more.
func Integrate(id ecs.EntityId, t *component.Transform, m *component.Movement, dt float64) {
	wasMoving := m.Moving || !isZero(m.Velocity)

	m.Velocity = m.Velocity.Add(m.Acceleration.Mult(dt))
	if m.MaxSpeed > 0 {
		m.Velocity = m.Velocity.Clamp(m.MaxSpeed)
	}
	t.Position = t.Position.Add(m.Velocity.Mult(dt))
	m.Facing = component.FacingFor(m.Velocity, m.Facing)

	stopped := isZero(m.Velocity)
	if wasMoving && stopped && m.OnStop != nil {
		m.OnStop(id, t.Position)
	}
	m.Moving = !stopped
}

func isZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}
