package ecs_test

import (
	"testing"

	"github.com/plus3/sim2d/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlush(t *testing.T) {
	t.Run("queued operations do not touch the scene", func(t *testing.T) {
		scene := newScene(t)
		id := scene.Spawn(&Position{})

		commands := ecs.NewCommands()
		commands.Spawn(&Position{}, &Health{})
		commands.AddComponent(id, &Velocity{})
		commands.RemoveComponent(id, KindPosition)
		commands.Defer(func() {})

		assert.Equal(t, 4, commands.Pending())
		assert.Equal(t, 1, scene.Len())
		assert.True(t, scene.HasComponent(id, KindPosition))

		commands.Flush(scene)

		assert.Zero(t, commands.Pending())
		assert.Equal(t, 2, scene.Len())
		assert.Equal(t, []ecs.Kind{KindVelocity}, scene.Kinds(id))
	})

	t.Run("removed entities skip their component changes", func(t *testing.T) {
		scene := newScene(t)
		id := scene.Spawn(&Position{})
		rec := &recorder{}
		scene.Subscribe(rec.handle)

		commands := ecs.NewCommands()
		commands.AddComponent(id, &Velocity{})
		commands.RemoveComponent(id, KindPosition)
		commands.RemoveEntity(id)
		commands.Flush(scene)

		assert.False(t, scene.Alive(id))
		assert.Equal(t, []ecs.Event{
			{Type: ecs.ComponentRemoved, Entity: id, Kind: KindPosition},
			{Type: ecs.EntityRemoved, Entity: id},
		}, rec.events)
	})

	t.Run("order is removals, detaches, attaches, spawns, defers", func(t *testing.T) {
		scene := newScene(t)
		a := scene.Spawn(&Position{})
		b := scene.Spawn(&Position{})

		var order []string
		scene.Subscribe(func(evt ecs.Event) {
			order = append(order, evt.Type.String())
		})

		commands := ecs.NewCommands()
		commands.Defer(func() { order = append(order, "defer") })
		commands.Spawn(&Tag{})
		commands.AddComponent(b, &Health{})
		commands.RemoveComponent(b, KindPosition)
		commands.RemoveEntity(a)
		commands.Flush(scene)

		assert.Equal(t, []string{
			"component_removed", "entity_removed", // a
			"component_removed", // b loses Position
			"component_added",   // b gains Health
			"component_added",   // spawned Tag
			"defer",
		}, order)
	})

	t.Run("buffer is reusable", func(t *testing.T) {
		scene := newScene(t)
		commands := ecs.NewCommands()

		commands.Spawn(&Position{})
		commands.Flush(scene)
		commands.Flush(scene)
		require.Equal(t, 1, scene.Len())

		commands.Spawn(&Position{})
		commands.Flush(scene)
		assert.Equal(t, 2, scene.Len())
	})
}
