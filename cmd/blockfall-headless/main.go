package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/store"
)

func main() {
	games := flag.Int("games", 100, "Number of games to play.")
	seedBase := flag.Int64("seed-base", 1, "Seed of the first game.")
	seedStep := flag.Int64("seed-step", 1, "Seed increment between games.")
	maxPieces := flag.Int("max-pieces", 1000, "Stop each game after this many pieces. Zero plays until top out.")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of games played in parallel.")
	dbPath := flag.String("db", "", "Record results in this SQLite database.")
	top := flag.Int("top", 10, "Rows in the top games table.")
	timeout := flag.Duration("timeout", 0, "Abort the run after this long. Zero means no limit.")
	flag.Parse()

	log.Println("Starting headless run...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	var st store.Store
	if *dbPath != "" {
		sqlite, err := store.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer sqlite.Close()
		st = sqlite
	}

	opts := runOptions{
		Games:     *games,
		SeedBase:  *seedBase,
		SeedStep:  *seedStep,
		MaxPieces: *maxPieces,
		Workers:   *workers,
		Weights:   bot.DefaultWeights,
	}

	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)

	log.Printf("Playing %d games on %d workers...\n", opts.Games, opts.Workers)
	start := time.Now()
	results, err := runGames(ctx, opts, st)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&memEnd)
	log.Println("Run finished.")

	report := newReport(opts, results, *top)
	report.TotalTime = elapsed
	report.MemStatsStart = memStart
	report.MemStatsEnd = memEnd

	if st != nil {
		best, err := st.LoadBest(ctx)
		if err != nil {
			log.Fatalf("Failed to load best score: %v", err)
		}
		report.BestStored = best
	}

	fmt.Println("\n\n--- Headless Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
