package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/config"
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.World = config.World{Width: 160, Height: 160, CellSize: 16}
	cfg.Bodies = 30
	cfg.Agents = 5
	cfg.Seed = 42
	return cfg
}

func TestSimulationLayoutIsSeeded(t *testing.T) {
	a, err := NewSimulation(smallConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Scheduler.Close()
	b, err := NewSimulation(smallConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer b.Scheduler.Close()

	assert.Equal(t, a.Walls, b.Walls)
	assert.Equal(t, a.Graph.Len(), b.Graph.Len())
	assert.Equal(t, 100, a.Walls+a.Graph.Len())
	assert.Equal(t, 30, a.Bodies)
	assert.Equal(t, 5, a.Scene.Count(component.KindNavAgent))
}

func TestSimulationStaysInBounds(t *testing.T) {
	cfg := smallConfig()
	sim, err := NewSimulation(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer sim.Scheduler.Close()

	for range 300 {
		sim.Scheduler.Once(cfg.Tick.Seconds())
	}

	for _, id := range sim.Scene.EntitiesWith(component.KindMovement) {
		transform, ok := ecs.Get[*component.Transform](sim.Scene, id)
		require.True(t, ok)
		assert.GreaterOrEqual(t, transform.Position.X, 0.0)
		assert.LessOrEqual(t, transform.Position.X, cfg.World.Width)
		assert.GreaterOrEqual(t, transform.Position.Y, 0.0)
		assert.LessOrEqual(t, transform.Position.Y, cfg.World.Height)
	}

	stats := sim.Collision.Stats()
	assert.Equal(t, int64(300), stats.Ticks)
	assert.Equal(t, sim.Walls+sim.Bodies+cfg.Agents, stats.Bodies)
	assert.Equal(t, int64(300), sim.Scheduler.GetStats().Frames)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:     time.Second,
		Tick:         16 * time.Millisecond,
		Bodies:       3,
		TotalUpdates: 2,
		UpdateTime:   Stats{Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond}},
		Collision:    physics.CollisionStats{Ticks: 2, Bodies: 3, PairsTested: 7},
		Systems:      []ecs.SystemStats{{Name: "MovementSystem", ExecutionCount: 2}},
		Scene: ecs.SceneStats{
			TotalEntityCount: 3,
			KindBreakdown:    []ecs.KindStats{{Kind: 1, Name: "Transform", EntityCount: 3}},
		},
	}
	report.UpdateTime.Finalize()

	assert.Equal(t, 2*time.Millisecond, report.UpdateTime.Avg)
	assert.Equal(t, time.Millisecond, report.UpdateTime.Min)
	assert.Equal(t, 3*time.Millisecond, report.UpdateTime.Max)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "- Pairs Tested:    7")
	assert.Contains(t, out.String(), "**MovementSystem:**")
	assert.Contains(t, out.String(), "- Transform: 3")
	assert.NotContains(t, out.String(), "GC Pause")
}
