package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/shape"
	"go.uber.org/zap"
)

// Pair is one colliding entity pair with every overlapping shape pair between
// them. Contacts are oriented from A's point of view.
type Pair struct {
	A, B     ecs.EntityId
	Contacts []component.Contact
}

// Flipped returns the contacts oriented from B's point of view.
func (p Pair) Flipped() []component.Contact {
	flipped := make([]component.Contact, len(p.Contacts))
	for i, c := range p.Contacts {
		flipped[i] = component.Contact{Self: c.Other, Other: c.Self}
	}
	return flipped
}

// Resolver decides the response to a colliding pair. It is called once per
// pair per tick. Structural changes should be queued on frame.Commands.
type Resolver interface {
	Resolve(frame *ecs.UpdateFrame, pair Pair)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(frame *ecs.UpdateFrame, pair Pair)

func (f ResolverFunc) Resolve(frame *ecs.UpdateFrame, pair Pair) {
	f(frame, pair)
}

// CollisionStats describes the most recent collision tick. The collision
// system publishes it as a scene resource.
type CollisionStats struct {
	Ticks          int64
	Bodies         int
	PairsTested    int
	ShapeTests     int
	PairsColliding int
	TotalColliding int64
}

type body struct {
	id         ecs.EntityId
	resolution *component.CollisionResolution
	shapes     []shape.Shape
	bounds     cp.BB
}

// CollisionSystem tests every pair of entities with a Transform, Hitbox and
// CollisionResolution. The pair loop is O(N²) with no spatial partitioning,
// which suits the small body counts of a single scene; a broad-phase index is
// the place to start if that stops being true.
type CollisionSystem struct {
	entities *ecs.Collector
	resolver Resolver
	stats    *ecs.Resource[CollisionStats]
	logger   *zap.Logger

	ids    []ecs.EntityId
	bodies []body
	shapes []shape.Shape
}

// CollisionOption configures a CollisionSystem.
type CollisionOption func(*CollisionSystem)

// WithResolver replaces the default PolicyResolver.
func WithResolver(resolver Resolver) CollisionOption {
	return func(s *CollisionSystem) {
		s.resolver = resolver
	}
}

// NewCollisionSystem creates a collision system bound to scene.
func NewCollisionSystem(scene *ecs.Scene, opts ...CollisionOption) *CollisionSystem {
	s := &CollisionSystem{
		entities: ecs.NewCollector(scene, component.KindTransform, component.KindHitbox, component.KindCollisionResolution),
		resolver: PolicyResolver{},
		stats:    ecs.NewResource[CollisionStats](scene),
		logger:   scene.Logger().Named("collision"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the statistics of the last tick.
func (s *CollisionSystem) Stats() CollisionStats {
	return *s.stats.Get()
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	s.snapshot(frame.Scene)

	stats := s.stats.Get()
	stats.Ticks++
	stats.Bodies = len(s.bodies)
	stats.PairsTested = 0
	stats.ShapeTests = 0
	stats.PairsColliding = 0

	for i := 0; i < len(s.bodies); i++ {
		a := &s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b := &s.bodies[j]
			if !a.resolution.Interacts(b.resolution) {
				continue
			}
			stats.PairsTested++
			if !a.bounds.Intersects(b.bounds) {
				continue
			}

			var contacts []component.Contact
			for _, sa := range a.shapes {
				for _, sb := range b.shapes {
					stats.ShapeTests++
					if shape.Intersects(sa, sb) {
						contacts = append(contacts, component.Contact{Self: sa, Other: sb})
					}
				}
			}
			if len(contacts) == 0 {
				continue
			}

			stats.PairsColliding++
			if ce := s.logger.Check(zap.DebugLevel, "collision"); ce != nil {
				ce.Write(zap.Stringer("a", a.id), zap.Stringer("b", b.id), zap.Int("contacts", len(contacts)))
			}
			s.resolver.Resolve(frame, Pair{A: a.id, B: b.id, Contacts: contacts})
		}
	}
	stats.TotalColliding += int64(stats.PairsColliding)
}

// snapshot copies the matching ids and computes each body's world-space shapes
// once for the whole tick.
func (s *CollisionSystem) snapshot(scene *ecs.Scene) {
	s.ids = s.entities.AppendEntities(s.ids[:0])
	s.bodies = s.bodies[:0]
	s.shapes = s.shapes[:0]

	for _, id := range s.ids {
		transform, ok := ecs.Get[*component.Transform](scene, id)
		if !ok {
			continue
		}
		hitbox, ok := ecs.Get[*component.Hitbox](scene, id)
		if !ok || len(hitbox.Shapes) == 0 {
			continue
		}
		resolution, ok := ecs.Get[*component.CollisionResolution](scene, id)
		if !ok {
			continue
		}

		start := len(s.shapes)
		s.shapes = hitbox.AppendWorldShapes(s.shapes, transform)
		world := s.shapes[start:len(s.shapes):len(s.shapes)]

		s.bodies = append(s.bodies, body{
			id:         id,
			resolution: resolution,
			shapes:     world,
			bounds:     boundsOf(world),
		})
	}
}

// Close releases the system's collector.
func (s *CollisionSystem) Close() error {
	return s.entities.Close()
}

func boundsOf(shapes []shape.Shape) cp.BB {
	bb := cp.BB{L: cp.INFINITY, B: cp.INFINITY, R: -cp.INFINITY, T: -cp.INFINITY}
	for _, sh := range shapes {
		bb = bb.Merge(sh.Bounds())
	}
	return bb
}
