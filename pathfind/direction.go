package pathfind

import "fmt"

// Direction is one of the four cardinal moves, or None for "keep going".
type Direction uint8

const (
	None Direction = iota
	Left
	Up
	Right
	Down
)

var directionNames = [...]string{
	None:  "none",
	Left:  "left",
	Up:    "up",
	Right: "right",
	Down:  "down",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Opposite returns the reverse move. None is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return None
}

func (d Direction) IsOpposite(other Direction) bool {
	return d != None && d.Opposite() == other
}

// Delta is the grid step for d with Y growing downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 0, 0
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return None, fmt.Errorf("pathfind: unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
