package domain

import "math"

type Player struct {
	ID         int64
	Name       string
	Team       string
	Position   string
	BattingAvg float64
	Bio        string
}

// RoundedBattingAvg returns the batting average rounded to 3 decimal places.
func (p Player) RoundedBattingAvg() float64 {
	return math.Round(p.BattingAvg*1000) / 1000
}
