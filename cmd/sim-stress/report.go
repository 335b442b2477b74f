package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/physics"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Tick     time.Duration
	Seed     uint64
	Cols     int
	Rows     int
	Walls    int
	Bodies   int
	Agents   int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Collision      physics.CollisionStats
	Scene          ecs.SceneStats
	Systems        []ecs.SystemStats
	Arrivals       int64
	Unreachable    int64
	Stops          int64
	Reloads        int64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Simulation Stress Report

## World
- **Run Duration:** {{.Duration}}
- **Tick:** {{.Tick}}
- **Seed:** {{.Seed}}
- **Grid:** {{.Cols}}x{{.Rows}} ({{.Walls}} walls)
- **Bodies:** {{.Bodies}}
- **Agents:** {{.Agents}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Scene
- Entities:    {{.Scene.TotalEntityCount}}
- Subscribers: {{.Scene.SubscriberCount}}
{{range .Scene.KindBreakdown}}- {{.Name}}: {{.EntityCount}}
{{end}}
## Collision (last tick)
- Bodies:          {{.Collision.Bodies}}
- Pairs Tested:    {{.Collision.PairsTested}}
- Shape Tests:     {{.Collision.ShapeTests}}
- Pairs Colliding: {{.Collision.PairsColliding}}
- Total Colliding: {{.Collision.TotalColliding}} over {{.Collision.Ticks}} ticks

## Navigation
- Arrivals:    {{.Arrivals}}
- Unreachable: {{.Unreachable}}
- Body Stops:  {{.Stops}}
- Config Reloads: {{.Reloads}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
