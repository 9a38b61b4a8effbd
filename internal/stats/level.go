package stats

import "math"

// Level is a rank earned through accumulated XP.
type Level struct {
	Number int
	Name   string
	MinXP  int
}

var levels = []Level{
	{Number: 1, Name: "Novice", MinXP: 0},
	{Number: 2, Name: "Beginner", MinXP: 100},
	{Number: 3, Name: "Apprentice", MinXP: 300},
	{Number: 4, Name: "Intermediate", MinXP: 600},
	{Number: 5, Name: "Proficient", MinXP: 1000},
	{Number: 6, Name: "Advanced", MinXP: 2000},
	{Number: 7, Name: "Expert", MinXP: 4000},
	{Number: 8, Name: "Master", MinXP: 8000},
	{Number: 9, Name: "Grandmaster", MinXP: 16000},
	{Number: 10, Name: "Legend", MinXP: 32000},
}

// XPFor returns the XP earned by one test.
func XPFor(wpm, accuracy int) int {
	return int(math.Round(float64(wpm) * (float64(accuracy) / 100) * 10))
}

// LevelFor returns the highest level whose threshold xp reaches.
func LevelFor(xp int) Level {
	current := levels[0]
	for _, l := range levels {
		if xp >= l.MinXP {
			current = l
		}
	}
	return current
}

// Next returns the following level, or false at the top.
func (l Level) Next() (Level, bool) {
	if l.Number <= 0 || l.Number >= len(levels) {
		return Level{}, false
	}
	return levels[l.Number], true
}

// Progress returns the percentage of the way from l to the next level.
func (l Level) Progress(xp int) int {
	next, ok := l.Next()
	if !ok {
		return 100
	}
	return int(math.Round(float64(xp-l.MinXP) / float64(next.MinXP-l.MinXP) * 100))
}
