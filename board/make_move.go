package board

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

// MakeMove validates mv against GetMoves and applies it, then runs the mover's
// effects and recomputes Brainrot. On error the board is left unchanged.
func (b *Board) MakeMove(mv Move) error {
	sq := b.square(mv.From)
	if sq == nil {
		return moveErr(ErrMissingSquare, mv, mv.From)
	}
	if sq.Piece == nil {
		return moveErr(ErrMissingPiece, mv, mv.From)
	}
	if !ContainsMove(b.GetMoves(mv.From), mv) {
		return moveErr(ErrIllegalMove, mv, mv.From)
	}

	before := b.Clone()
	if err := b.apply(before, sq.Piece, mv); err != nil {
		*b = *before
		log().Debug("move rolled back", zap.Stringer("move", mv), zap.Error(err))
		return err
	}
	RecalcBrainrot(b)
	return nil
}

func (b *Board) apply(before *Board, p Piece, mv Move) error {
	switch mv.Type.Kind {
	case MoveKindMoveTo:
		if err := b.relocate(mv.From, mv.Type.Target, p); err != nil {
			return moveErr(err, mv, mv.Type.Target)
		}
	case MoveKindPhaseShift:
		if err := shiftPhase(p); err != nil {
			return moveErr(err, mv, mv.From)
		}
	case MoveKindMoveIntoCarrier:
		if err := b.embark(mv.Type.Target, p); err != nil {
			return moveErr(err, mv, mv.Type.Target)
		}
		if err := b.SetPieceAt(mv.From, nil); err != nil {
			return moveErr(err, mv, mv.From)
		}
	case MoveKindPieceInCarrier:
		return b.applyCarried(before, p, mv)
	default:
		return moveErr(ErrUnsupportedMove, mv, mv.From)
	}
	return runEffects(p, before, b, mv)
}

// applyCarried applies mv.Type.Inner on behalf of passenger mv.Type.Index of the
// carrier standing on mv.From.
func (b *Board) applyCarried(before *Board, p Piece, mv Move) error {
	carrier, ok := p.(Carrier)
	if !ok || mv.Type.Inner == nil {
		return moveErr(ErrUnsupportedMove, mv, mv.From)
	}
	passengers := carrier.Passengers()
	if mv.Type.Index < 0 || mv.Type.Index >= len(passengers) {
		return moveErr(ErrMissingPiece, mv, mv.From)
	}
	passenger := passengers[mv.Type.Index]
	inner := Move{From: mv.From, Type: *mv.Type.Inner}

	switch inner.Type.Kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		if _, err := carrier.Unload(mv.Type.Index); err != nil {
			return moveErr(err, mv, mv.From)
		}
		var err error
		if inner.Type.Kind == MoveKindMoveTo {
			err = b.SetPieceAt(inner.Type.Target, passenger)
		} else {
			err = b.embark(inner.Type.Target, passenger)
		}
		if err != nil {
			return moveErr(err, mv, inner.Type.Target)
		}
		log().Debug("passenger left carrier",
			coordField("carrier", mv.From),
			zap.String("passenger", passenger.Symbol()),
			coordField("to", inner.Type.Target))
	case MoveKindPhaseShift:
		shifted := passenger.Clone()
		if err := shiftPhase(shifted); err != nil {
			return moveErr(err, mv, mv.From)
		}
		if err := carrier.Reload(mv.Type.Index, shifted); err != nil {
			return moveErr(err, mv, mv.From)
		}
		passenger = shifted
	case MoveKindPieceInCarrier:
		return b.applyCarried(before, passenger, inner)
	default:
		return moveErr(ErrUnsupportedMove, mv, mv.From)
	}
	return runEffects(passenger, before, b, inner)
}

func (b *Board) relocate(from, to position.Coord, p Piece) error {
	if err := b.SetPieceAt(from, nil); err != nil {
		return err
	}
	return b.SetPieceAt(to, p)
}

// embark loads p into the carrier standing on target.
func (b *Board) embark(target position.Coord, p Piece) error {
	carrier, ok := b.PieceAt(target).(Carrier)
	if !ok {
		return fmt.Errorf("%w: no carrier at %v", ErrUnsupportedMove, target)
	}
	return carrier.Load(p)
}

func shiftPhase(p Piece) error {
	ph, ok := p.(Phased)
	if !ok {
		return fmt.Errorf("%w: %s has no phase", ErrUnsupportedMove, p.Kind())
	}
	if err := ph.ShiftPhase(); err != nil {
		return err
	}
	log().Debug("phase shifted", zap.String("piece", p.Symbol()))
	return nil
}

func runEffects(p Piece, before, after *Board, mv Move) error {
	e, ok := p.(Effector)
	if !ok {
		return nil
	}
	if err := e.PostMoveEffects(before, after, mv); err != nil {
		return &MoveError{Err: err, Move: mv, Coord: mv.From}
	}
	return nil
}
