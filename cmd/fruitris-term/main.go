package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/sound"
	"github.com/plus3/fruitris/store"
)

const frame = 16 * time.Millisecond // ~60 FPS

func main() {
	modeFlag := flag.String("mode", "", "Start straight into a mode: sprint, marathon or zen.")
	level := flag.Int("level", 0, "Starting level (1-15). Zero uses the saved preference.")
	storePath := flag.String("store", "", "Preferences file. Defaults to the user config directory.")
	seed := flag.Uint64("seed", 0, "Seed the piece bag for a reproducible game. Zero seeds from the clock.")
	ascii := flag.Bool("ascii", false, "Draw coloured blocks instead of fruit emoji.")
	logPath := flag.String("log", "", "Write engine debug logs to this file.")
	flag.Parse()

	path := *storePath
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to locate preferences: %v", err)
		}
	}

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	kv := store.NewFile(path)
	prefs := store.NewSafe(kv, logger)
	settings := store.LoadSettings(prefs)
	if *level > 0 {
		settings.StartingLevel = *level
	}

	// The game runs without sound if the speaker cannot be opened.
	var out sound.Output
	speakerOut, err := sound.NewSpeakerOutput()
	if err != nil {
		logger.Warn("audio unavailable", "err", err)
	} else {
		out = speakerOut
		defer speakerOut.Close()
	}
	player := sound.NewPlayer(out, settings, logger)
	h := hud.New(time.Now)

	opts := []engine.Option{
		engine.WithStore(kv),
		engine.WithSink(event.Multi{player, h}),
		engine.WithLogger(logger),
	}
	if *seed != 0 {
		opts = append(opts, engine.WithSeed(*seed))
	}
	e := engine.New(opts...)

	a := &app{
		engine:   e,
		prefs:    prefs,
		settings: settings,
		player:   player,
		hud:      h,
		ascii:    *ascii,
	}

	if *modeFlag != "" {
		id, ok := mode.ParseID(*modeFlag)
		if !ok {
			log.Fatalf("Unknown mode %q", *modeFlag)
		}
		a.start(id)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialise screen: %v", err)
	}

	run(screen, a)
	screen.Fini()

	// Quitting mid-game still records the high score.
	score := e.Score()
	e.Quit()
	fmt.Printf("Final score %d, high score %d\n", score, e.HighScore())
}

// run drives the engine on its own ticker and redraws until the player exits.
func run(screen tcell.Screen, a *app) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.engine.Run(ctx, frame)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev.Key(), ev.Rune()) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			screen.Clear()
			a.draw(screen, a.engine.Snapshot(), a.hud.Active())
			screen.Show()
		}
	}
}
