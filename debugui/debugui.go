// Package debugui provides a Dear ImGui overlay for inspecting a running
// session and the scheduler that drives it.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
)

// InputState tracks whether ImGui is consuming mouse or keyboard input this
// frame. Hosts should skip game input while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay groups the debug windows. Render must be called between the
// backend's BeginFrame and EndFrame.
type Overlay struct {
	Visible bool
	Input   InputState

	Performance *PerformanceStats
	Inspector   *SessionInspector
	Leaderboard *Leaderboard
}

func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		Performance: NewPerformanceStats(historyFrames),
		Inspector:   &SessionInspector{},
		Leaderboard: &Leaderboard{},
	}
}

// Toggle flips visibility and returns the new value.
func (o *Overlay) Toggle() bool {
	o.Visible = !o.Visible
	return o.Visible
}

// Render draws every window for this frame. Input capture is refreshed even
// while hidden so a closing overlay releases the keyboard.
func (o *Overlay) Render(scheduler *loop.Scheduler, dt time.Duration) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !o.Visible {
		return
	}
	o.Performance.Render(scheduler.GetStats(), dt)
	o.Inspector.Render(scheduler.Session())
	o.Leaderboard.Render()
}

// Leaderboard shows the best stored results. Set it with Update whenever a
// game finishes.
type Leaderboard struct {
	results []store.Result
}

func (l *Leaderboard) Update(results []store.Result) {
	l.results = results
}

func (l *Leaderboard) Render() {
	if !imgui.BeginV("Leaderboard", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	if len(l.results) == 0 {
		imgui.Text("no finished games yet")
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("LeaderboardTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Score")
		imgui.TableSetupColumn("Lines")
		imgui.TableSetupColumn("Level")
		imgui.TableSetupColumn("Finished")
		imgui.TableHeadersRow()

		for i, r := range l.results {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(itoa(i + 1))
			imgui.TableNextColumn()
			imgui.Text(itoa(r.Score))
			imgui.TableNextColumn()
			imgui.Text(itoa(r.Lines))
			imgui.TableNextColumn()
			imgui.Text(itoa(r.Level))
			imgui.TableNextColumn()
			imgui.Text(r.FinishedAt.Local().Format(time.DateTime))
		}
		imgui.EndTable()
	}
	imgui.End()
}

// kindOrder is the display order for per-kind counters.
var kindOrder = tetris.Kinds
