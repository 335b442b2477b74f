package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/sim2d/ecs"
)

type MovementSystem struct {
	entities     *ecs.Collector
	ExecuteCount int
}

func NewMovementSystem(scene *ecs.Scene) *MovementSystem {
	return &MovementSystem{entities: ecs.NewCollector(scene, KindPosition, KindVelocity)}
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, id := range s.entities.Entities() {
		pos, _ := ecs.Get[*Position](frame.Scene, id)
		vel, _ := ecs.Get[*Velocity](frame.Scene, id)
		pos.X += vel.DX * frame.DeltaTime
		pos.Y += vel.DY * frame.DeltaTime
	}
}

func (s *MovementSystem) Close() error {
	return s.entities.Close()
}

type HealthSystem struct {
	entities     *ecs.Collector
	ExecuteCount int
	TotalHealth  int
}

func NewHealthSystem(scene *ecs.Scene) *HealthSystem {
	return &HealthSystem{entities: ecs.NewCollector(scene, KindHealth)}
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for _, id := range s.entities.Entities() {
		health, _ := ecs.Get[*Health](frame.Scene, id)
		s.TotalHealth += health.Current
	}
}

type orderSystem struct {
	name  string
	log   *[]string
	err   error
	sleep time.Duration
}

func (s *orderSystem) Execute(*ecs.UpdateFrame) {
	*s.log = append(*s.log, "execute "+s.name)
	if s.sleep > 0 {
		time.Sleep(s.sleep)
	}
}

func (s *orderSystem) Close() error {
	*s.log = append(*s.log, "close "+s.name)
	return s.err
}

func TestScheduler(t *testing.T) {
	t.Run("systems run once per tick", func(t *testing.T) {
		scene := newScene(t)
		scheduler := ecs.NewScheduler(scene)

		movement := NewMovementSystem(scene)
		health := NewHealthSystem(scene)
		scheduler.Register(movement)
		scheduler.Register(health)
		defer scheduler.Close()

		mover := scene.Spawn(&Position{}, &Velocity{DX: 1, DY: 2})
		scene.Spawn(&Health{Current: 100, Max: 100})

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}
		if health.TotalHealth != 100 {
			t.Errorf("expected total health 100, got %d", health.TotalHealth)
		}

		scheduler.Once(0.5)

		pos, _ := ecs.Get[*Position](scene, mover)
		if pos.X != 1.5 || pos.Y != 3 {
			t.Errorf("expected position (1.5, 3), got (%v, %v)", pos.X, pos.Y)
		}
		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
	})

	t.Run("registration order", func(t *testing.T) {
		scene := newScene(t)
		scheduler := ecs.NewScheduler(scene)

		var log []string
		scheduler.Register(&orderSystem{name: "a", log: &log})
		scheduler.Register(&orderSystem{name: "b", log: &log})
		scheduler.Register(&orderSystem{name: "c", log: &log})

		scheduler.Once(0.016)

		want := []string{"execute a", "execute b", "execute c"}
		if len(log) != len(want) {
			t.Fatalf("expected %v, got %v", want, log)
		}
		for i := range want {
			if log[i] != want[i] {
				t.Errorf("step %d: expected %q, got %q", i, want[i], log[i])
			}
		}
	})

	t.Run("commands flush after the last system", func(t *testing.T) {
		scene := newScene(t)
		scheduler := ecs.NewScheduler(scene)

		var seenDuringTick int
		spawner := systemFunc(func(frame *ecs.UpdateFrame) {
			frame.Commands.Spawn(&Position{})
		})
		observer := systemFunc(func(frame *ecs.UpdateFrame) {
			seenDuringTick = frame.Scene.Len()
		})
		scheduler.Register(spawner)
		scheduler.Register(observer)

		scheduler.Once(0.016)

		if seenDuringTick != 0 {
			t.Errorf("expected spawn to be deferred, observer saw %d entities", seenDuringTick)
		}
		if scene.Len() != 1 {
			t.Errorf("expected 1 entity after flush, got %d", scene.Len())
		}
	})
}

type systemFunc func(frame *ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }

func TestSchedulerClose(t *testing.T) {
	scene := newScene(t)
	scheduler := ecs.NewScheduler(scene)

	errB := errors.New("b failed")
	errC := errors.New("c failed")

	var log []string
	scheduler.Register(&orderSystem{name: "a", log: &log})
	scheduler.Register(&orderSystem{name: "b", log: &log, err: errB})
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) {}))
	scheduler.Register(&orderSystem{name: "c", log: &log, err: errC})

	err := scheduler.Close()
	if !errors.Is(err, errB) || !errors.Is(err, errC) {
		t.Errorf("expected joined close errors, got %v", err)
	}

	want := []string{"close c", "close b", "close a"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("close %d: expected %q, got %q", i, want[i], log[i])
		}
	}
}

func TestSchedulerStats(t *testing.T) {
	scene := newScene(t)
	scheduler := ecs.NewScheduler(scene)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	var log []string
	scheduler.Register(&orderSystem{name: "fast", log: &log, sleep: time.Millisecond})
	scheduler.Register(&orderSystem{name: "slow", log: &log, sleep: 2 * time.Millisecond})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.GetStats()

	if stats.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", stats.Frames)
	}
	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}
	if len(stats.Systems) != 2 {
		t.Fatalf("expected 2 system stats, got %d", len(stats.Systems))
	}

	for _, sysStats := range stats.Systems {
		if sysStats.Name != "orderSystem" {
			t.Errorf("expected system name 'orderSystem', got '%s'", sysStats.Name)
		}
		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}
		if sysStats.MinDuration == 0 || sysStats.MaxDuration == 0 || sysStats.AvgDuration == 0 {
			t.Errorf("expected non-zero durations, got %+v", sysStats)
		}
		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}
		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}
}

func TestSchedulerRun(t *testing.T) {
	scene := newScene(t)
	scheduler := ecs.NewScheduler(scene)

	var ticks int
	var dts []float64
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		ticks++
		dts = append(dts, frame.DeltaTime)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}

	if ticks == 0 {
		t.Fatal("expected at least one tick")
	}
	for i, dt := range dts {
		if dt <= 0 {
			t.Errorf("tick %d: expected positive delta time, got %v", i, dt)
		}
	}
	if got := scheduler.GetStats().Frames; got != int64(ticks) {
		t.Errorf("expected %d frames, got %d", ticks, got)
	}
}
