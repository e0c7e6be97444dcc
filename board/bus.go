package board

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

const BusCapacity = 5

// Bus steps like a king onto empty squares and carries friendly pieces. Each
// passenger moves as if it stood on the Bus's square.
type Bus struct {
	Colored
	Riders []Piece
}

func NewBus(s Side, passengers ...Piece) *Bus {
	return &Bus{Colored: Colored{s}, Riders: passengers}
}

func (*Bus) Kind() Kind { return KindBus }

// SetSide recolours the Bus together with its passengers.
func (bs *Bus) SetSide(s Side) {
	bs.Color = s
	for _, p := range bs.Riders {
		p.SetSide(s)
	}
}

func (bs *Bus) Clone() Piece {
	c := &Bus{Colored: bs.Colored}
	if bs.Riders != nil {
		c.Riders = make([]Piece, len(bs.Riders))
		for i, p := range bs.Riders {
			c.Riders[i] = p.Clone()
		}
	}
	return c
}

func (bs *Bus) Symbol() string {
	sym := bs.Color.Cased("BUS")
	if len(bs.Riders) == 0 {
		return sym
	}
	syms := make([]string, len(bs.Riders))
	for i, p := range bs.Riders {
		syms[i] = p.Symbol()
	}
	return sym + "(P=(" + strings.Join(syms, ",") + "))"
}

func (bs *Bus) CanCarry(p Piece) bool {
	return p != nil && p.Side() == bs.Color && p.Kind() != KindBus && len(bs.Riders) < BusCapacity
}

func (bs *Bus) Passengers() []Piece {
	return bs.Riders
}

func (bs *Bus) Load(p Piece) error {
	if p == nil {
		return fmt.Errorf("%w: no passenger", ErrMissingPiece)
	}
	if !bs.CanCarry(p) {
		return fmt.Errorf("%w: bus cannot carry %s", ErrIllegalMove, p.Symbol())
	}
	bs.Riders = append(bs.Riders, p)
	return nil
}

func (bs *Bus) Unload(index int) (Piece, error) {
	if index < 0 || index >= len(bs.Riders) {
		return nil, fmt.Errorf("%w: no passenger at index %d", ErrMissingPiece, index)
	}
	p := bs.Riders[index]
	bs.Riders = append(bs.Riders[:index:index], bs.Riders[index+1:]...)
	return p, nil
}

func (bs *Bus) Reload(index int, p Piece) error {
	if index < 0 || index >= len(bs.Riders) {
		return fmt.Errorf("%w: no passenger at index %d", ErrMissingPiece, index)
	}
	bs.Riders[index] = p
	return nil
}

func (bs *Bus) InitialMoves(b *Board, from position.Coord) []Move {
	mvs := step(b, from, toEmpty)
	for i, p := range bs.Riders {
		alone := b.Clone()
		_ = alone.SetPieceAt(from, p.Clone())
		for _, inner := range alone.GetMoves(from) {
			mvs = append(mvs, Move{From: from, Type: PieceInCarrier(i, inner.Type)})
		}
	}
	return mvs
}

func decodeBus(name, state string) Piece {
	bs := NewBus(sideOfSymbol(name))
	for _, f := range stateFields(state) {
		switch f.key {
		case "P":
			list := strings.TrimSpace(f.value)
			if !strings.HasPrefix(list, "(") || FindMatchingParen(list, 0) != len(list)-1 {
				log().Warn("invalid bus passenger list", zap.String("value", f.value))
				continue
			}
			// capacity only limits boarding; a decoded bus keeps every rider it was encoded with
			for _, tok := range SplitTopLevel(list[1 : len(list)-1]) {
				if p := parsePiece(tok); p != nil {
					bs.Riders = append(bs.Riders, p)
				}
			}
		default:
			log().Warn("unknown bus attribute", zap.String("field", f.raw))
		}
	}
	return bs
}
