package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Entities int
	Capacity int
	Churn    int
	Seed     uint64
	Profile  string

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Phases         []ecs.SystemStats
	Events         []EventCount
	Spawned        int
	Failed         int
	Removed        int
	Slashes        int
	Peak           int
	Final          int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type EventCount struct {
	Kind  string
	Count int
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the simulation counters and per-phase timings.
func (r *Report) Collect(sim *Simulation, world *game.Context) {
	r.Phases = world.Scheduler().GetStats().Systems
	r.Spawned = sim.Spawned
	r.Failed = sim.Failed
	r.Removed = sim.Removed
	r.Slashes = sim.Slashes
	r.Peak = sim.Peak
	r.Final = world.Count()

	r.Events = r.Events[:0]
	for kind, n := range sim.Events {
		r.Events = append(r.Events, EventCount{Kind: kind.String(), Count: n})
	}
	slices.SortFunc(r.Events, func(a, b EventCount) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Entity Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Capacity:** {{.Capacity}}
- **Churn per Frame:** {{.Churn}}
- **Seed:** {{.Seed}}
{{- if .Profile}}
- **Profile:** {{.Profile}}
{{- end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Phases
| phase | runs | avg | max |
|---|---|---|---|
{{- range .Phases}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Entities
- Spawned: {{.Spawned}} (failed: {{.Failed}})
- Removed: {{.Removed}}
- Cross slashes: {{.Slashes}}
- Peak live: {{.Peak}}
- Final live: {{.Final}}

## Events
{{- range .Events}}
- {{.Kind}}: {{.Count}}
{{- else}}
- none
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
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
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
