package service

import "strconv"

// calculateScore maps (level, verdict) to points. Total and deterministic:
// a failed verdict is worth 0, level "0" is the demo level worth one
// standard level, and any level that does not parse as a non-negative
// integer falls back to level 1.
func calculateScore(level string, passed bool, pointsPerLevel int) int {
	if !passed {
		return 0
	}
	levelNum, err := strconv.Atoi(level)
	if err != nil || levelNum < 0 {
		levelNum = 1
	}
	if levelNum == 0 {
		return pointsPerLevel
	}
	return levelNum * pointsPerLevel
}
