package debugui

import (
	"fmt"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/tetris"
)

// SessionInspector shows the live state of a session with pause and restart
// buttons.
type SessionInspector struct {
	ShowBoard bool
}

func (si *SessionInspector) Render(s *tetris.Session) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	snap := s.Snapshot()
	for _, line := range SummaryLines(snap) {
		imgui.Text(line)
	}
	if err := s.Err(); err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "reporter: "+err.Error())
	}

	imgui.Separator()
	if imgui.Button("Pause/Resume") {
		s.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		s.Restart()
	}

	if imgui.TreeNodeStr("Pieces") {
		stats := s.Stats()
		for _, line := range PieceLines(stats) {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	imgui.Checkbox("Show board", &si.ShowBoard)
	if si.ShowBoard {
		imgui.Text(snap.Board.String())
	}

	imgui.End()
}

// SummaryLines formats the headline values of a snapshot.
func SummaryLines(snap tetris.Snapshot) []string {
	return []string{
		"State: " + snap.State.String(),
		fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.Best),
		fmt.Sprintf("Lines: %d  Level: %d", snap.Lines, snap.Level),
		"Interval: " + snap.Interval.String(),
		fmt.Sprintf("Active: %s at (%d, %d), ghost row %d", snap.Active.Kind, snap.Active.Col, snap.Active.Row, snap.GhostRow),
		fmt.Sprintf("Next: %s  Hold: %s (used %t)", snap.Next, snap.Hold, snap.HoldUsed),
		fmt.Sprintf("Stack height: %d  Holes: %d", snap.Board.Height(), snap.Board.Holes()),
	}
}

// PieceLines formats per-game counters, one kind per line.
func PieceLines(stats tetris.Stats) []string {
	out := make([]string, 0, len(kindOrder)+4)
	for _, k := range kindOrder {
		out = append(out, fmt.Sprintf("%s: %d", k, stats.Spawned[k]))
	}
	return append(out,
		"Locks: "+itoa(stats.Locks),
		"Holds: "+itoa(stats.Holds),
		"Hard drops: "+itoa(stats.HardDrops),
		"Soft drops: "+itoa(stats.SoftDrops),
	)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
