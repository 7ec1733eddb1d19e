// Package render draws session snapshots with ebiten.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/tetris"
)

var (
	Background = color.RGBA{7, 11, 20, 255}
	GridLine   = color.RGBA{255, 255, 255, 30}
	Ghost      = color.RGBA{255, 255, 255, 31}
	Bevel      = color.RGBA{0, 0, 0, 46}
	PanelFill  = color.RGBA{0, 0, 0, 38}
	Dim        = color.RGBA{0, 0, 0, 160}
)

var palette = map[tetris.Cell]color.RGBA{
	tetris.I: {0x51, 0xe3, 0xff, 0xff},
	tetris.O: {0xff, 0xe6, 0x6d, 0xff},
	tetris.T: {0xc7, 0x7d, 0xff, 0xff},
	tetris.S: {0x7d, 0xff, 0x8f, 0xff},
	tetris.Z: {0xff, 0x7d, 0x7d, 0xff},
	tetris.J: {0x7d, 0xa7, 0xff, 0xff},
	tetris.L: {0xff, 0xb8, 0x6b, 0xff},
}

// ColorOf returns the fill color of a kind; unknown kinds are white.
func ColorOf(c tetris.Cell) color.RGBA {
	if clr, ok := palette[c]; ok {
		return clr
	}
	return color.RGBA{255, 255, 255, 255}
}

// Layout positions the well and side panel on screen.
type Layout struct {
	CellSize  float32
	Margin    float32
	PanelSize float32
	MiniCell  float32
}

var DefaultLayout = Layout{
	CellSize:  30,
	Margin:    20,
	PanelSize: 120,
	MiniCell:  24,
}

// ScreenSize returns the window size needed for the layout.
func (l Layout) ScreenSize() (int, int) {
	w := l.Margin*3 + l.CellSize*tetris.Cols + l.PanelSize
	h := l.Margin*2 + l.CellSize*tetris.Rows
	return int(w), int(h)
}

// CellOrigin is the top-left pixel of a board cell.
func (l Layout) CellOrigin(col, row int) (float32, float32) {
	return l.Margin + float32(col)*l.CellSize, l.Margin + float32(row)*l.CellSize
}

// PanelOrigin is the top-left pixel of the side panel.
func (l Layout) PanelOrigin() (float32, float32) {
	return l.Margin*2 + l.CellSize*tetris.Cols, l.Margin
}

// Block is one cell to paint on the board.
type Block struct {
	Col, Row int
	Color    color.RGBA
	Ghost    bool
}

// Blocks lists what to paint for snap in back-to-front order: locked cells,
// then the ghost, then the active piece. Cells above the board are dropped.
func Blocks(snap tetris.Snapshot) []Block {
	var out []Block
	if snap.Board != nil {
		for row := 0; row < tetris.Rows; row++ {
			for col := 0; col < tetris.Cols; col++ {
				if c := snap.Board.Cell(col, row); c != tetris.Empty {
					out = append(out, Block{Col: col, Row: row, Color: ColorOf(c)})
				}
			}
		}
	}

	if snap.State == tetris.Ready || !snap.Active.Kind.IsPiece() {
		return out
	}

	ghost := snap.Active
	ghost.Row = snap.GhostRow
	ghost.Cells(func(col, row int) {
		if row >= 0 {
			out = append(out, Block{Col: col, Row: row, Color: Ghost, Ghost: true})
		}
	})
	snap.Active.Cells(func(col, row int) {
		if row >= 0 {
			out = append(out, Block{Col: col, Row: row, Color: ColorOf(snap.Active.Kind)})
		}
	})
	return out
}

// MiniBlocks centers a kind's spawn shape in a size×size preview box and
// returns pixel offsets of each filled cell.
func MiniBlocks(kind tetris.Cell, size, cell float32) [][2]float32 {
	if !kind.IsPiece() {
		return nil
	}
	m := tetris.ShapeOf(kind)
	w := float32(len(m[0])) * cell
	h := float32(len(m)) * cell
	ox := float32(int((size - w) / 2))
	oy := float32(int((size - h) / 2))

	var out [][2]float32
	for y := range m {
		for x, filled := range m[y] {
			if filled {
				out = append(out, [2]float32{ox + float32(x)*cell, oy + float32(y)*cell})
			}
		}
	}
	return out
}

// StatusLines is the text shown in the side panel.
func StatusLines(snap tetris.Snapshot) []string {
	return []string{
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("BEST  %d", snap.Best),
		fmt.Sprintf("LINES %d", snap.Lines),
		fmt.Sprintf("LEVEL %d", snap.Level),
		snap.State.String(),
	}
}

// Banner is the centered overlay text for non-running states.
func Banner(state tetris.State) (title, hint string) {
	switch state {
	case tetris.Ready:
		return "READY", "press Enter to start"
	case tetris.Paused:
		return "PAUSED", "press P to resume"
	case tetris.GameOver:
		return "GAME OVER", "press R to play again"
	default:
		return "", ""
	}
}

// Renderer keeps the latest snapshot and paints it on Draw. It satisfies
// tetris.Renderer.
type Renderer struct {
	Layout Layout
	snap   tetris.Snapshot
	ready  bool
}

func NewRenderer(l Layout) *Renderer {
	return &Renderer{Layout: l}
}

func (r *Renderer) Render(snap tetris.Snapshot) {
	r.snap = snap
	r.ready = true
}

// Draw paints the most recent snapshot onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(Background)
	if !r.ready {
		return
	}
	r.drawWell(screen)
	r.drawPanel(screen)
	r.drawBanner(screen)
}

func (r *Renderer) drawWell(screen *ebiten.Image) {
	l := r.Layout
	x0, y0 := l.CellOrigin(0, 0)
	w := l.CellSize * tetris.Cols
	h := l.CellSize * tetris.Rows

	for col := 1; col < tetris.Cols; col++ {
		x := x0 + float32(col)*l.CellSize
		vector.StrokeLine(screen, x, y0, x, y0+h, 1, GridLine, false)
	}
	for row := 1; row < tetris.Rows; row++ {
		y := y0 + float32(row)*l.CellSize
		vector.StrokeLine(screen, x0, y, x0+w, y, 1, GridLine, false)
	}
	vector.StrokeRect(screen, x0, y0, w, h, 1, GridLine, false)

	for _, b := range Blocks(r.snap) {
		x, y := l.CellOrigin(b.Col, b.Row)
		drawCell(screen, x, y, l.CellSize, b.Color)
	}
}

func drawCell(screen *ebiten.Image, x, y, size float32, clr color.RGBA) {
	vector.DrawFilledRect(screen, x, y, size, size, clr, false)
	vector.DrawFilledRect(screen, x, y, size, 1, Bevel, false)
	vector.DrawFilledRect(screen, x, y, 1, size, Bevel, false)
}

func (r *Renderer) drawPanel(screen *ebiten.Image) {
	l := r.Layout
	px, py := l.PanelOrigin()

	ebitenutil.DebugPrintAt(screen, "NEXT", int(px), int(py))
	r.drawMini(screen, r.snap.Next, px, py+16)

	holdY := py + 16 + l.PanelSize + l.Margin
	label := "HOLD"
	if r.snap.HoldUsed {
		label = "HOLD (used)"
	}
	ebitenutil.DebugPrintAt(screen, label, int(px), int(holdY))
	r.drawMini(screen, r.snap.Hold, px, holdY+16)

	textY := holdY + 16 + l.PanelSize + l.Margin
	for i, line := range StatusLines(r.snap) {
		ebitenutil.DebugPrintAt(screen, line, int(px), int(textY)+i*16)
	}
}

func (r *Renderer) drawMini(screen *ebiten.Image, kind tetris.Cell, x, y float32) {
	l := r.Layout
	vector.DrawFilledRect(screen, x, y, l.PanelSize, l.PanelSize, PanelFill, false)
	clr := ColorOf(kind)
	for _, off := range MiniBlocks(kind, l.PanelSize, l.MiniCell) {
		drawCell(screen, x+off[0], y+off[1], l.MiniCell, clr)
	}
}

func (r *Renderer) drawBanner(screen *ebiten.Image) {
	title, hint := Banner(r.snap.State)
	if title == "" {
		return
	}
	l := r.Layout
	x0, y0 := l.CellOrigin(0, 0)
	w := l.CellSize * tetris.Cols
	h := l.CellSize * tetris.Rows
	vector.DrawFilledRect(screen, x0, y0, w, h, Dim, false)

	cx := int(x0 + w/2)
	cy := int(y0 + h/2)
	// debug font glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, title, cx-len(title)*3, cy-16)
	ebitenutil.DebugPrintAt(screen, hint, cx-len(hint)*3, cy)
}
