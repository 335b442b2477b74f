package ecs_test

import (
	"testing"

	"github.com/plus3/sim2d/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newScene(t *testing.T) *ecs.Scene {
	t.Helper()
	return ecs.NewScene(newRegistry(), ecs.WithLogger(zaptest.NewLogger(t)))
}

func TestSceneEvents(t *testing.T) {
	scene := newScene(t)
	rec := &recorder{}
	scene.Subscribe(rec.handle)

	id := scene.CreateEntity()
	assert.Empty(t, rec.events, "creating an entity is silent")

	require.True(t, scene.AddComponent(id, &Position{}))
	require.True(t, scene.AddComponent(id, &Velocity{}))
	assert.False(t, scene.AddComponent(id, &Position{}), "duplicate emits nothing")
	_, ok := scene.RemoveComponent(id, KindVelocity)
	require.True(t, ok)
	_, ok = scene.RemoveComponent(id, KindVelocity)
	assert.False(t, ok, "absent component emits nothing")

	assert.Equal(t, []ecs.Event{
		{Type: ecs.ComponentAdded, Entity: id, Kind: KindPosition},
		{Type: ecs.ComponentAdded, Entity: id, Kind: KindVelocity},
		{Type: ecs.ComponentRemoved, Entity: id, Kind: KindVelocity},
	}, rec.events)
}

func TestSceneRemoveEntity(t *testing.T) {
	scene := newScene(t)
	id := scene.Spawn(&Tag{}, &Position{}, &Health{})

	rec := &recorder{}
	scene.Subscribe(rec.handle)

	require.True(t, scene.RemoveEntity(id))
	assert.Equal(t, []ecs.Event{
		{Type: ecs.ComponentRemoved, Entity: id, Kind: KindPosition},
		{Type: ecs.ComponentRemoved, Entity: id, Kind: KindHealth},
		{Type: ecs.ComponentRemoved, Entity: id, Kind: KindTag},
		{Type: ecs.EntityRemoved, Entity: id},
	}, rec.events)

	assert.False(t, scene.Alive(id))
	assert.False(t, scene.RemoveEntity(id))
	assert.False(t, scene.AddComponent(id, &Position{}))
	assert.Len(t, rec.events, 4)
}

func TestSceneSubscribersInRegistrationOrder(t *testing.T) {
	scene := newScene(t)

	var order []string
	scene.Subscribe(func(ecs.Event) { order = append(order, "first") })
	scene.Subscribe(func(ecs.Event) { order = append(order, "second") })
	scene.Subscribe(func(ecs.Event) { order = append(order, "third") })

	scene.Spawn(&Position{})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSubscriptionCloseDuringDispatch(t *testing.T) {
	scene := newScene(t)

	var second *ecs.Subscription
	calls := map[string]int{}
	first := scene.Subscribe(func(ecs.Event) {
		calls["first"]++
		second.Close()
	})
	second = scene.Subscribe(func(ecs.Event) { calls["second"]++ })
	third := scene.Subscribe(func(ecs.Event) { calls["third"]++ })

	scene.Spawn(&Position{})
	assert.Equal(t, 0, calls["second"], "closed before its turn in the same dispatch")
	assert.Equal(t, 1, calls["third"])
	assert.Equal(t, 2, scene.Subscribers())

	first.Close()
	first.Close()
	scene.Spawn(&Position{})
	assert.Equal(t, 1, calls["first"])
	assert.Equal(t, 2, calls["third"])
	assert.True(t, third.Active())
	assert.NotEqual(t, first.ID(), third.ID())
}

func TestSubscribeDuringDispatch(t *testing.T) {
	scene := newScene(t)

	late := &recorder{}
	subscribed := false
	scene.Subscribe(func(ecs.Event) {
		if !subscribed {
			subscribed = true
			scene.Subscribe(late.handle)
		}
	})

	scene.Spawn(&Position{})
	assert.Empty(t, late.events, "a handler added mid-dispatch starts with the next event")

	scene.Spawn(&Position{})
	assert.Len(t, late.events, 1)
}

func TestNestedMutationFromHandler(t *testing.T) {
	scene := newScene(t)

	// tag anything that gains a health component
	scene.Subscribe(func(evt ecs.Event) {
		if evt.Type == ecs.ComponentAdded && evt.Kind == KindHealth {
			scene.AddComponent(evt.Entity, &Tag{Value: "alive"})
		}
	})
	rec := &recorder{}
	scene.Subscribe(rec.handle)

	id := scene.Spawn(&Health{Current: 1})

	tag, ok := ecs.Get[*Tag](scene, id)
	require.True(t, ok)
	assert.Equal(t, "alive", tag.Value)
	assert.Equal(t, []ecs.Event{
		{Type: ecs.ComponentAdded, Entity: id, Kind: KindTag},
		{Type: ecs.ComponentAdded, Entity: id, Kind: KindHealth},
	}, rec.events, "the nested event is delivered before the outer dispatch resumes")
}

func TestGet(t *testing.T) {
	scene := newScene(t)
	id := scene.Spawn(&Position{X: 4, Y: 2})

	pos, ok := ecs.Get[*Position](scene, id)
	require.True(t, ok)
	assert.Equal(t, &Position{X: 4, Y: 2}, pos)

	pos.X = 10
	again, _ := ecs.Get[*Position](scene, id)
	assert.Equal(t, 10.0, again.X, "components are mutated in place")

	vel, ok := ecs.Get[*Velocity](scene, id)
	assert.False(t, ok)
	assert.Nil(t, vel)
}

func TestSceneSpawnSkipsRejected(t *testing.T) {
	scene := newScene(t)

	id := scene.Spawn(&Position{}, &Position{X: 1}, &unregistered{}, &Velocity{})
	assert.Equal(t, []ecs.Kind{KindPosition, KindVelocity}, scene.Kinds(id))

	pos, _ := ecs.Get[*Position](scene, id)
	assert.Equal(t, 0.0, pos.X, "first attach wins")
	assert.Equal(t, 1, scene.Len())
	assert.NotEqual(t, scene.ID(), newScene(t).ID())
}
