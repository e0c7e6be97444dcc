package board

import (
	"fmt"
	"iter"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/brainrot/position"
)

// Board is an 8x8 grid addressed as grid[rank][file]. A Board is owned by a single
// caller; use Clone to hand out copies.
type Board struct {
	grid  [Height][Width]Square
	flags Flags
}

type boardConfig struct {
	flags Flags
}

type BoardOption func(*boardConfig)

func WithFlags(f Flags) BoardOption {
	return func(cfg *boardConfig) {
		cfg.flags = f
	}
}

// NewBoard returns an empty board.
func NewBoard(opts ...BoardOption) *Board {
	cfg := &boardConfig{
		flags: DefaultFlags(),
	}
	for _, f := range opts {
		f(cfg)
	}
	return &Board{flags: cfg.flags}
}

func (b *Board) square(c position.Coord) *Square {
	if !c.Valid() {
		return nil
	}
	return &b.grid[c.Rank][c.File]
}

func (b *Board) SquareAt(c position.Coord) (Square, error) {
	sq := b.square(c)
	if sq == nil {
		return Square{}, fmt.Errorf("%w: %v", ErrMissingSquare, c)
	}
	return *sq, nil
}

func (b *Board) SetSquare(c position.Coord, s Square) error {
	sq := b.square(c)
	if sq == nil {
		return fmt.Errorf("%w: %v", ErrMissingSquare, c)
	}
	*sq = s
	return nil
}

// PieceAt returns the occupant of c, or nil when c is empty or off the board.
func (b *Board) PieceAt(c position.Coord) Piece {
	sq := b.square(c)
	if sq == nil {
		return nil
	}
	return sq.Piece
}

// SetPieceAt replaces the occupant of c, keeping its terrain and conditions. A nil
// piece clears the square.
func (b *Board) SetPieceAt(c position.Coord, p Piece) error {
	sq := b.square(c)
	if sq == nil {
		return fmt.Errorf("%w: %v", ErrMissingSquare, c)
	}
	sq.Piece = p
	return nil
}

// SquareIsEmpty reports whether c is a Standard square without an occupant.
func (b *Board) SquareIsEmpty(c position.Coord) bool {
	sq := b.square(c)
	return sq != nil && sq.IsEmpty()
}

// AllPieces yields every occupied square in rank-major order.
func (b *Board) AllPieces() iter.Seq2[position.Coord, Piece] {
	return func(yield func(position.Coord, Piece) bool) {
		for rank := range Height {
			for file := range Width {
				p := b.grid[rank][file].Piece
				if p == nil {
					continue
				}
				if !yield(position.NewCoord(file, rank), p) {
					return
				}
			}
		}
	}
}

// GetMoves returns the moves available to the piece on from. Squares that are
// empty, off the board, Frozen or Brainrot yield none.
func (b *Board) GetMoves(from position.Coord) []Move {
	sq := b.square(from)
	if sq == nil || sq.Piece == nil || sq.Conditions.Immobilizing() {
		return nil
	}
	return PieceMoves(b, sq.Piece, from)
}

// AllMoves returns the moves of every piece of side s.
func (b *Board) AllMoves(s Side) []Move {
	var mvs []Move
	for c, p := range b.AllPieces() {
		if p.Side() == s {
			mvs = append(mvs, b.GetMoves(c)...)
		}
	}
	return mvs
}

func (b *Board) Flags() Flags {
	return b.flags.clone()
}

func (b *Board) SetFlags(f Flags) {
	b.flags = f.clone()
}

func (b *Board) Clone() *Board {
	c := &Board{flags: b.flags.clone()}
	for rank := range Height {
		for file := range Width {
			c.grid[rank][file] = b.grid[rank][file].clone()
		}
	}
	return c
}

func (b *Board) String() string {
	return Encode(b)
}

// Dump renders the grid with one column per square, rank 0 on top.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for rank := range Height {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", rank))
		for file := range Width {
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", glyph(b.grid[rank][file].Piece)))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for file := range Width {
		_, _ = builder.WriteString(fmt.Sprintf("  %d ", file))
	}
	return builder.String()
}

var (
	drawLight    = color.New(color.FgBlack, color.BgHiGreen)
	drawDark     = color.New(color.FgBlack, color.BgGreen)
	drawFrozen   = color.New(color.FgBlack, color.BgHiCyan)
	drawBrainrot = color.New(color.FgBlack, color.BgHiMagenta)
	drawTerrain  = color.New(color.FgBlack, color.BgHiYellow)
	drawLabel    = color.New(color.Bold)
)

// Draw renders the board for a terminal. Frozen, Brainrot and non-standard terrain
// squares are highlighted.
func (b *Board) Draw() string {
	builder := strings.Builder{}
	for rank := range Height {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", rank))
		for file := range Width {
			sq := b.grid[rank][file]
			var paint *color.Color
			switch {
			case sq.Conditions.Has(ConditionFrozen):
				paint = drawFrozen
			case sq.Conditions.Has(ConditionBrainrot):
				paint = drawBrainrot
			case sq.Type != SquareStandard:
				paint = drawTerrain
			case (rank+file)%2 == 0:
				paint = drawLight
			default:
				paint = drawDark
			}
			_, _ = builder.WriteString(paint.Sprintf(" %s ", glyph(sq.Piece)))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for file := range Width {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", file))
	}
	return builder.String()
}

func glyph(p Piece) string {
	if p == nil {
		return " "
	}
	if sym := p.Symbol(); sym != "" {
		return sym[:1]
	}
	return "?"
}
