package position

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar = 8
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Coord addresses a square by file and rank, both in [0, MaxComponentScalar).
// Rank 0 is the first row of the board notation.
type Coord struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func NewCoord(file, rank int) Coord {
	return Coord{File: file, Rank: rank}
}

// NewCoordFromNotation parses the "<file>-<rank>" form used by the board notation.
func NewCoordFromNotation(n string) (Coord, error) {
	f, r, ok := strings.Cut(n, "-")
	if !ok {
		return Coord{}, ErrInvalidNotation
	}
	file, err := notationToComponent(f)
	if err != nil {
		return Coord{}, err
	}
	rank, err := notationToComponent(r)
	if err != nil {
		return Coord{}, err
	}
	return Coord{File: file, Rank: rank}, nil
}

func (c Coord) String() string {
	return c.Notation()
}

// Notation formats c as "<file>-<rank>". Off-board coordinates are formatted too;
// use Valid to check them.
func (c Coord) Notation() string {
	return strconv.Itoa(c.File) + "-" + strconv.Itoa(c.Rank)
}

// Valid reports whether the coordinate lies on the board.
func (c Coord) Valid() bool {
	return InBounds(c.File, c.Rank)
}

// Add returns the coordinate offset by d, which may lie off the board.
func (c Coord) Add(d Direction) Coord {
	return Coord{File: c.File + d.File, Rank: c.Rank + d.Rank}
}

// Index returns the rank-major index of the coordinate.
func (c Coord) Index() int {
	return c.Rank*MaxComponentScalar + c.File
}

func InBounds(file, rank int) bool {
	return 0 <= file && file < MaxComponentScalar && 0 <= rank && rank < MaxComponentScalar
}

// Distance is the Chebyshev (king-step) distance between two coordinates.
func Distance(a, b Coord) int {
	return max(abs(a.File-b.File), abs(a.Rank-b.Rank))
}

func notationToComponent(s string) (int, error) {
	if len(s) != 1 {
		return 0, ErrInvalidNotation
	}
	v := int(s[0]) - '0'
	if v < 0 || MaxComponentScalar <= v {
		return 0, ErrInvalidNotation
	}
	return v, nil
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
