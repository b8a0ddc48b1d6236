package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/fruitris/clock"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/store"
)

const frame = time.Second / 60

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", 0, "Stop after this many finished games. Zero runs for the full duration.")
	modeFlag := flag.String("mode", "marathon", "Mode the bot plays: sprint, marathon or zen.")
	seed := flag.Uint64("seed", 1, "Seed for the piece bag.")
	verbose := flag.Bool("v", false, "Log engine activity to stderr.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	id, ok := mode.ParseID(*modeFlag)
	if !ok {
		log.Fatalf("Unknown mode %q", *modeFlag)
	}

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	log.Println("Starting fruitris stress test...")

	// Simulated time lets the bot play far faster than real time.
	clk := clock.NewManual(time.Time{})
	e := engine.New(
		engine.WithClock(clk),
		engine.WithStore(store.NewMemory()),
		engine.WithSeed(*seed),
		engine.WithLogger(logger),
	)

	report := &Report{
		Duration:       *duration,
		Mode:           string(id),
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running bot for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	e.Start(id, 1)

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		if e.State().Terminal() {
			report.Record(e.Snapshot())
			if *games > 0 && report.Games >= *games {
				break Loop
			}
			e.Start(id, 1)
		}

		if act(e) {
			report.Pieces++
		}

		clk.Advance(frame)
		updateStart := time.Now()
		e.Update(frame)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Stages = e.Stats().Stages
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
