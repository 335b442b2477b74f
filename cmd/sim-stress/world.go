package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/config"
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/nav"
	"github.com/plus3/sim2d/physics"
	"github.com/plus3/sim2d/shape"
	"go.uber.org/zap"
)

const wallDensity = 0.12

const (
	layerWall uint32 = 1 << iota
	layerBody
	layerAgent
)

// Simulation is a random world of walls, bouncing bodies and nav agents.
type Simulation struct {
	Scene     *ecs.Scene
	Scheduler *ecs.Scheduler
	Graph     *nav.Graph
	Collision *physics.CollisionSystem
	Agents    *WanderSystem

	Walls  int
	Bodies int
	Stops  int64
}

// NewSimulation builds a world from cfg. The layout depends only on cfg.Seed.
func NewSimulation(cfg *config.Config, logger *zap.Logger) (*Simulation, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	cols, rows := cfg.World.Cols(), cfg.World.Rows()
	cell := cfg.World.CellSize

	blocked := make([]bool, cols*rows)
	for i := range blocked {
		blocked[i] = rng.Float64() < wallDensity
	}
	graph, err := nav.NewGridGraph(cp.Vector{}, cell, cols, rows, func(col, row int) bool {
		return blocked[row*cols+col]
	})
	if err != nil {
		return nil, fmt.Errorf("build nav grid: %w", err)
	}
	if graph.Len() == 0 {
		return nil, fmt.Errorf("world has no open cells")
	}

	scene := ecs.NewScene(component.NewRegistry(), ecs.WithLogger(logger))
	sim := &Simulation{
		Scene:     scene,
		Scheduler: ecs.NewScheduler(scene),
		Graph:     graph,
		Collision: physics.NewCollisionSystem(scene),
		Agents:    NewWanderSystem(scene, graph, rng),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if !blocked[row*cols+col] {
				continue
			}
			scene.Spawn(
				&component.Transform{Position: cp.Vector{X: float64(col) * cell, Y: float64(row) * cell}},
				&component.Hitbox{Shapes: []shape.Shape{shape.NewRect(0, 0, cell, cell)}},
				&component.CollisionResolution{Policy: component.PolicyStatic, Layer: layerWall, Mask: layerBody},
			)
			sim.Walls++
		}
	}

	for range cfg.Bodies {
		sim.spawnBody(rng, cfg.MaxSpeed, cell/4)
	}
	for range cfg.Agents {
		sim.spawnAgent(rng, cfg.MaxSpeed/2, cell/4)
	}

	sim.Scheduler.Register(sim.Agents)
	sim.Scheduler.Register(nav.NewSystem(scene, graph))
	sim.Scheduler.Register(physics.NewMovementSystem(scene))
	sim.Scheduler.Register(sim.Collision)
	sim.Scheduler.Register(NewBoundsSystem(scene, cfg.World.Width, cfg.World.Height))

	logger.Info("world built",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("walls", sim.Walls),
		zap.Int("bodies", sim.Bodies),
		zap.Int("agents", cfg.Agents),
	)
	return sim, nil
}

func (s *Simulation) randomOpenCenter(rng *rand.Rand) cp.Vector {
	square, _ := s.Graph.Square(nav.SquareID(rng.IntN(s.Graph.Len())))
	return square.Center()
}

func (s *Simulation) spawnBody(rng *rand.Rand, maxSpeed, radius float64) {
	movement := &component.Movement{
		Velocity: randomVelocity(rng, maxSpeed),
		MaxSpeed: maxSpeed,
	}
	// bodies pinned against a wall get a fresh heading
	movement.OnStop = func(ecs.EntityId, cp.Vector) {
		s.Stops++
		movement.Velocity = randomVelocity(rng, maxSpeed)
	}

	s.Scene.Spawn(
		&component.Transform{Position: s.randomOpenCenter(rng)},
		movement,
		&component.Hitbox{Shapes: []shape.Shape{shape.NewCircle(0, 0, radius)}},
		&component.CollisionResolution{Policy: component.PolicySolid, Layer: layerBody, Mask: layerWall | layerBody},
	)
	s.Bodies++
}

func (s *Simulation) spawnAgent(rng *rand.Rand, speed, radius float64) {
	s.Scene.Spawn(
		&component.Transform{Position: s.randomOpenCenter(rng)},
		&component.Movement{MaxSpeed: speed},
		&nav.Agent{Goal: s.randomOpenCenter(rng), Speed: speed},
		&component.Hitbox{Shapes: []shape.Shape{shape.NewCircle(0, 0, radius)}},
		&component.CollisionResolution{Policy: component.PolicyTrigger, Layer: layerAgent, Mask: layerBody},
	)
}

func randomVelocity(rng *rand.Rand, speed float64) cp.Vector {
	angle := rng.Float64() * 2 * math.Pi
	return cp.Vector{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}
