package engine

import "fmt"

// Direction is one of the four axis directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ParseDirection parses "up", "down", "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Up, fmt.Errorf("engine: unknown direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "up"
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	}
	return Left
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Sign is -1 for Up/Left and +1 for Down/Right.
func (d Direction) Sign() float64 {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

// Dirs is a per-axis sensor record, as reported for blocked and touching.
type Dirs struct {
	Up, Down, Left, Right bool
}

// Has reports whether the flag for d is set.
func (d Dirs) Has(dir Direction) bool {
	switch dir {
	case Up:
		return d.Up
	case Down:
		return d.Down
	case Left:
		return d.Left
	case Right:
		return d.Right
	}
	return false
}

// Set raises the flag for dir.
func (d *Dirs) Set(dir Direction) {
	switch dir {
	case Up:
		d.Up = true
	case Down:
		d.Down = true
	case Left:
		d.Left = true
	case Right:
		d.Right = true
	}
}

func (d Dirs) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Count returns the number of raised flags. Physics can report more than one
// axis at once for a single contact.
func (d Dirs) Count() int {
	n := 0
	for _, v := range []bool{d.Up, d.Down, d.Left, d.Right} {
		if v {
			n++
		}
	}
	return n
}

// Lateral reports whether Left or Right is set.
func (d Dirs) Lateral() bool {
	return d.Left || d.Right
}
