package gcode

import "math"

// defaultRapidRate approximates travel speed in mm/min when rapids carry
// no feed word. Grbl-class diode machines default to about this.
const defaultRapidRate = 3000.0

// TravelStats aggregates parsed moves into cut/travel distances and a
// job time estimate.
type TravelStats struct {
	CutLength   float64 // mm of laser-on motion
	RapidLength float64 // mm of laser-off motion
	CutTime     float64 // minutes, from per-move feed rates
	RapidTime   float64 // minutes, at the assumed rapid rate
	MoveCount   int
}

// TotalTime returns the estimated job duration in minutes.
func (s TravelStats) TotalTime() float64 {
	return s.CutTime + s.RapidTime
}

// Stats measures a parsed move list. Cut time uses each move's own feed
// rate; moves with no feed rate contribute distance but no time.
func Stats(moves []GCodeMove) TravelStats {
	st := TravelStats{MoveCount: len(moves)}
	for _, m := range moves {
		dist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
		if dist == 0 {
			continue
		}
		if m.Type == MoveCut {
			st.CutLength += dist
			if m.FeedRate > 0 {
				st.CutTime += dist / m.FeedRate
			}
		} else {
			st.RapidLength += dist
			st.RapidTime += dist / defaultRapidRate
		}
	}
	return st
}
