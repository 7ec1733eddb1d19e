// Package ebiten hosts the debug overlay inside an ebiten game loop.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/loop"
)

// ImguiBackend wraps the ebiten Dear ImGui backend together with the overlay
// it renders.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the ImGui context and window. It must be called
// before ebiten.RunGame.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
	}
}

// Update runs one ImGui frame for the overlay. Call it from the game's
// Update after the scheduler has stepped.
func (b *ImguiBackend) Update(scheduler *loop.Scheduler, dt time.Duration) {
	b.BeginFrame()
	b.Overlay.Render(scheduler, dt)
	b.EndFrame()
}

// DrawOver paints the overlay on top of screen when it is visible.
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	if b.Overlay.Visible {
		b.Draw(screen)
	}
}
