package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of laser toolpath movement.
type MoveType int

const (
	MoveRapid MoveType = iota // G0, or any motion while the laser is off
	MoveCut                   // G1 while the laser is on
)

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
	Power    float64 // S value active during the move
}

var (
	coordRe = regexp.MustCompile(`([XYFS])(-?\d+\.?\d*)`)
	laserRe = regexp.MustCompile(`\bM0?([345])\b`)
)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute XY position and the laser on/off state (M3/M4 on,
// M5 off); motion counts as cutting only while the laser is on, so
// preview and stats match what the beam actually does.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY := 0.0, 0.0
	curFeed, curPower := 0.0, 0.0
	laserOn := false

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Strip inline comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)

		// Laser state words may share a line with an S power word.
		for _, m := range laserRe.FindAllStringSubmatch(upper, -1) {
			laserOn = m[1] == "3" || m[1] == "4"
		}

		isRapid := strings.HasPrefix(upper, "G0 ") || strings.HasPrefix(upper, "G00 ") || upper == "G0" || upper == "G00"
		isFeed := strings.HasPrefix(upper, "G1 ") || strings.HasPrefix(upper, "G01 ") || upper == "G1" || upper == "G01"

		newX, newY, newFeed, newPower := curX, curY, curFeed, curPower
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			case "S":
				newPower = val
			}
		}

		if !isRapid && !isFeed {
			curFeed, curPower = newFeed, newPower
			continue
		}

		moveType := MoveRapid
		if isFeed && laserOn {
			moveType = MoveCut
		}

		moves = append(moves, GCodeMove{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
			Power:    newPower,
		})

		curX, curY, curFeed, curPower = newX, newY, newFeed, newPower
	}

	return moves
}
