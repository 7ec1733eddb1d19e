package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
)

// Game implements ebiten.Game around one session.
type Game struct {
	Session   *tetris.Session
	Scheduler *loop.Scheduler
	Keyboard  *Keyboard
	Renderer  *render.Renderer
	Imgui     *debugui_ebiten.ImguiBackend
	Store     store.Store
	Seed      int64

	last time.Time
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.Imgui.Overlay.Toggle()
	}

	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.Keyboard.Enabled = !g.Imgui.Overlay.Input.WantCaptureKeyboard
	g.Scheduler.Once(dt)
	g.Renderer.Render(g.Session.Snapshot())
	g.Imgui.Update(g.Scheduler, dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Draw(screen)
	g.Imgui.DrawOver(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// recordGame stores a finished game and refreshes the leaderboard.
func (g *Game) recordGame(snap tetris.Snapshot, stats tetris.Stats) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res := store.NewResult(snap, stats, g.Seed)
	if err := g.Store.RecordGame(ctx, res); err != nil {
		log.Printf("record game: %v", err)
		return
	}
	log.Printf("game %s finished: score=%d lines=%d level=%d pieces=%d",
		res.ID, res.Score, res.Lines, res.Level, res.Pieces)

	g.refreshLeaderboard(ctx)
}

func (g *Game) refreshLeaderboard(ctx context.Context) {
	top, err := g.Store.TopResults(ctx, 10)
	if err != nil {
		log.Printf("load leaderboard: %v", err)
		return
	}
	g.Imgui.Overlay.Leaderboard.Update(top)
}

func logEvent(ev tetris.Event) {
	switch ev.Kind {
	case tetris.EventLocked, tetris.EventHold:
		return
	case tetris.EventLinesCleared:
		log.Printf("%s: %d (score=%d lines=%d)", ev.Kind, ev.Cleared, ev.Score, ev.Lines)
	default:
		log.Printf("%s: score=%d lines=%d level=%d", ev.Kind, ev.Score, ev.Lines, ev.Level)
	}
}
