package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fruitris/debugui"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/sound"
	"github.com/plus3/fruitris/store"

	debugui_ebiten "github.com/plus3/fruitris/debugui/ebiten"
)

func main() {
	modeFlag := flag.String("mode", "", "Start straight into a mode: sprint, marathon or zen.")
	level := flag.Int("level", 0, "Starting level (1-15). Zero uses the saved preference.")
	storePath := flag.String("store", "", "Preferences file. Defaults to the user config directory.")
	seed := flag.Uint64("seed", 0, "Seed the piece bag for a reproducible game. Zero seeds from the clock.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector and log engine activity.")
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
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	kv := store.NewFile(path)
	prefs := store.NewSafe(kv, logger)
	settings := store.LoadSettings(prefs)
	if *level > 0 {
		settings.StartingLevel = *level
	}

	player := sound.NewPlayer(sound.NewContextOutput(), settings, logger)
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

	game := &Game{
		engine:   e,
		prefs:    prefs,
		settings: settings,
		player:   player,
		hud:      h,
		controls: newControls(),
	}

	if *debug {
		overlay := debugui.NewOverlay()
		debugui.Install(overlay, e)
		game.debug = debugui_ebiten.New("Fruitris (debug)", 1280, 720, overlay)
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("Fruitris")
	}

	if *modeFlag != "" {
		id, ok := mode.ParseID(*modeFlag)
		if !ok {
			log.Fatalf("Unknown mode %q", *modeFlag)
		}
		game.start(id)
	}

	log.Printf("Preferences at %s", path)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
