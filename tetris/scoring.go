package tetris

import "time"

// SoftDropBonus is awarded for every row a piece is manually soft-dropped.
const SoftDropBonus = 1

const (
	LinesPerLevel = 10

	baseInterval = 800 * time.Millisecond
	levelSpeedup = 60 * time.Millisecond
	minInterval  = 90 * time.Millisecond
)

var lineRewards = [...]int{0, 100, 300, 500, 800}

// LineClearReward returns the points for clearing lines rows in one lock at
// the given level (the level before any level-up from this clear).
func LineClearReward(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	if lines < len(lineRewards) {
		return lineRewards[lines] * level
	}
	return 200 * lines * level
}

// LevelForLines derives the level from the cumulative number of cleared lines.
func LevelForLines(lines int) int {
	return lines/LinesPerLevel + 1
}

// DropInterval returns the gravity period at the given level.
func DropInterval(level int) time.Duration {
	return max(minInterval, baseInterval-time.Duration(level-1)*levelSpeedup)
}
