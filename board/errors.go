package board

import (
	"errors"
	"fmt"

	"github.com/daystram/brainrot/position"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrMissingSquare   = errors.New("missing square")
	ErrMissingPiece    = errors.New("missing piece")
	ErrUnsupportedMove = errors.New("unsupported move for piece")
)

// MoveError carries the move and square that caused an execution failure. It
// unwraps to one of the sentinel errors above.
type MoveError struct {
	Err   error
	Move  Move
	Coord position.Coord
}

func (e *MoveError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingSquare), errors.Is(e.Err, ErrMissingPiece):
		return fmt.Sprintf("%v at %v: %s", e.Err, e.Coord, e.Move)
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Move)
	}
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func moveErr(err error, mv Move, c position.Coord) error {
	return &MoveError{Err: err, Move: mv, Coord: c}
}
