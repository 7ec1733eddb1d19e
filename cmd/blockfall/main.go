package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	dbPath := flag.String("db", "", "SQLite database for scores; overrides store.path. Use \"-\" to keep scores in memory.")
	seed := flag.Int64("seed", 0, "Fix the piece order. Zero picks a random seed.")
	debug := flag.Bool("debug", false, "Open with the debug overlay visible.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = rand.Int64()
	}

	keys, err := parseKeys(cfg.Bindings())
	if err != nil {
		log.Fatalf("Invalid key bindings: %v", err)
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	best, err := st.LoadBest(ctx)
	if err != nil {
		log.Fatalf("Failed to load best score: %v", err)
	}
	log.Printf("Seed %d, best score %d", cfg.Game.Seed, best)

	session := tetris.NewSession(
		tetris.WithSeed(cfg.Game.Seed),
		tetris.WithMaxStep(time.Duration(cfg.Game.MaxStep)),
		tetris.WithBestScore(best),
		tetris.WithReporter(store.Reporter(ctx, st)),
		tetris.WithEventHandler(logEvent),
	)

	layout := render.DefaultLayout
	width, height := layout.ScreenSize()

	overlay := debugui.NewOverlay(120)
	overlay.Visible = cfg.Debug.Overlay
	imguiBackend := debugui_ebiten.NewImguiBackend("blockfall", width, height, overlay)

	game := &Game{
		Session:  session,
		Keyboard: &Keyboard{Keys: keys, Enabled: true},
		Renderer: render.NewRenderer(layout),
		Imgui:    imguiBackend,
		Store:    st,
		Seed:     cfg.Game.Seed,
	}

	scheduler := loop.NewScheduler(session)
	scheduler.Register(game.Keyboard)
	scheduler.Register(&loop.IntentSystem{})
	scheduler.Register(loop.ClockSystem{})
	scheduler.Register(&loop.GameOverSystem{OnGameOver: game.recordGame})
	game.Scheduler = scheduler
	game.refreshLeaderboard(ctx)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("blockfall")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
	if err := session.Err(); err != nil {
		log.Printf("Last best-score report failed: %v", err)
	}
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" || path == "-" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(ctx, path)
}
