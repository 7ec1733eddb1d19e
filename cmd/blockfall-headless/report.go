package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Games     int
	Workers   int
	MaxPieces int
	SeedBase  int64
	SeedStep  int64

	// Results
	TotalTime  time.Duration
	Finished   int
	Capped     int
	Score      IntStats
	Lines      IntStats
	Pieces     IntStats
	SystemTime Stats
	Kinds      []KindCount
	Top        []gameResult
	BestStored int

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type KindCount struct {
	Kind  tetris.Cell
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

type IntStats struct {
	Min     int
	Max     int
	Avg     float64
	Total   int
	Samples []int
}

func (s *IntStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	s.Total = 0
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		s.Total += sample
	}
	s.Avg = float64(s.Total) / float64(len(s.Samples))
}

// newReport aggregates finished games. top limits the leaderboard table.
func newReport(opts runOptions, results []gameResult, top int) *Report {
	r := &Report{
		Games:     opts.Games,
		Workers:   opts.Workers,
		MaxPieces: opts.MaxPieces,
		SeedBase:  opts.SeedBase,
		SeedStep:  opts.SeedStep,
		Finished:  len(results),
	}

	for _, res := range results {
		if res.Capped {
			r.Capped++
		}
		r.Score.Samples = append(r.Score.Samples, res.Final.Score)
		r.Lines.Samples = append(r.Lines.Samples, res.Final.Lines)
		r.Pieces.Samples = append(r.Pieces.Samples, res.Stats.Pieces())
		r.SystemTime.Samples = append(r.SystemTime.Samples, res.SystemTime)
	}
	r.Score.Finalize()
	r.Lines.Finalize()
	r.Pieces.Finalize()
	r.SystemTime.Finalize()

	totals := pieceTotals(results)
	for _, k := range tetris.Kinds {
		r.Kinds = append(r.Kinds, KindCount{Kind: k, Count: totals[k]})
	}

	r.Top = slices.Clone(results)
	slices.SortStableFunc(r.Top, func(a, b gameResult) int {
		if c := cmp.Compare(b.Final.Score, a.Final.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Seed, b.Seed)
	})
	if len(r.Top) > top {
		r.Top = r.Top[:top]
	}
	return r
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Headless Report

## Run Configuration
- **Games:** {{.Games}}
- **Workers:** {{.Workers}}
- **Piece Cap:** {{if .MaxPieces}}{{.MaxPieces}}{{else}}none{{end}}
- **Seeds:** {{.SeedBase}} step {{.SeedStep}}

## Results
- **Total Time:** {{.TotalTime}}
- **Finished:** {{.Finished}} ({{.Capped}} stopped at the piece cap, {{sub .Finished .Capped}} topped out)
- **Score:** avg {{printf "%.1f" .Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Lines:** avg {{printf "%.1f" .Lines.Avg}}, min {{.Lines.Min}}, max {{.Lines.Max}}, total {{.Lines.Total}}
- **Pieces:** avg {{printf "%.1f" .Pieces.Avg}}, total {{.Pieces.Total}}
- **System Time (per game):**
  - **Avg:** {{.SystemTime.Avg}}
  - **Min:** {{.SystemTime.Min}}
  - **Max:** {{.SystemTime.Max}}
{{- if .BestStored}}
- **Best Stored Score:** {{.BestStored}}
{{- end}}

## Piece Distribution
| Kind | Count | Share |
|------|------:|------:|
{{- range .Kinds}}
| {{.Kind}} | {{.Count}} | {{pct .Count $.Pieces.Total}} |
{{- end}}

## Top Games
| Seed | Score | Lines | Level | Pieces | Capped |
|-----:|------:|------:|------:|-------:|:------:|
{{- range .Top}}
| {{.Seed}} | {{.Final.Score}} | {{.Final.Lines}} | {{.Final.Level}} | {{.Stats.Pieces}} | {{if .Capped}}yes{{else}}no{{end}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"sub": func(a, b int) int {
			return a - b
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"pct": func(n, total int) string {
			if total == 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
