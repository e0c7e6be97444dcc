package board

import (
	"github.com/daystram/brainrot/position"
)

type Pawn struct{ Colored }

func NewPawn(s Side) *Pawn { return &Pawn{Colored{s}} }

func (*Pawn) Kind() Kind       { return KindPawn }
func (p *Pawn) Symbol() string { return p.Color.Cased("P") }
func (p *Pawn) Clone() Piece   { c := *p; return &c }

func (p *Pawn) forward() int {
	if p.Color == SideWhite {
		return -1
	}
	return 1
}

func (p *Pawn) startingRank() int {
	if p.Color == SideWhite {
		return position.MaxComponentScalar - 2
	}
	return 1
}

// InitialMoves pushes toward rank 0 for White and toward the last rank for Black,
// with a double push from the starting rank and diagonal captures.
func (p *Pawn) InitialMoves(b *Board, from position.Coord) []Move {
	var mvs []Move
	dir := p.forward()
	one := from.Add(position.Direction{Rank: dir})
	if one.Valid() && b.PieceAt(one) == nil {
		mvs = append(mvs, Move{From: from, Type: MoveTo(one)})
		two := one.Add(position.Direction{Rank: dir})
		if from.Rank == p.startingRank() && two.Valid() && b.PieceAt(two) == nil {
			mvs = append(mvs, Move{From: from, Type: MoveTo(two)})
		}
	}
	for _, df := range []int{-1, 1} {
		to := from.Add(position.Direction{File: df, Rank: dir})
		if target := b.PieceAt(to); target != nil && target.Side() != p.Color {
			mvs = append(mvs, Move{From: from, Type: MoveTo(to)})
		}
	}
	return mvs
}

type Rook struct{ Colored }

func NewRook(s Side) *Rook { return &Rook{Colored{s}} }

func (*Rook) Kind() Kind       { return KindRook }
func (r *Rook) Symbol() string { return r.Color.Cased("R") }
func (r *Rook) Clone() Piece   { c := *r; return &c }
func (r *Rook) InitialMoves(b *Board, from position.Coord) []Move {
	return glide(b, from, position.DirectionsStraight, RangeUnbounded)
}

type Knight struct{ Colored }

func NewKnight(s Side) *Knight { return &Knight{Colored{s}} }

func (*Knight) Kind() Kind       { return KindKnight }
func (n *Knight) Symbol() string { return n.Color.Cased("N") }
func (n *Knight) Clone() Piece   { c := *n; return &c }
func (n *Knight) InitialMoves(_ *Board, from position.Coord) []Move {
	return jump(from, position.JumpsKnight)
}

type Bishop struct{ Colored }

func NewBishop(s Side) *Bishop { return &Bishop{Colored{s}} }

func (*Bishop) Kind() Kind        { return KindBishop }
func (bp *Bishop) Symbol() string { return bp.Color.Cased("B") }
func (bp *Bishop) Clone() Piece   { c := *bp; return &c }
func (bp *Bishop) InitialMoves(b *Board, from position.Coord) []Move {
	return glide(b, from, position.DirectionsDiagonal, RangeUnbounded)
}

type Queen struct{ Colored }

func NewQueen(s Side) *Queen { return &Queen{Colored{s}} }

func (*Queen) Kind() Kind       { return KindQueen }
func (q *Queen) Symbol() string { return q.Color.Cased("Q") }
func (q *Queen) Clone() Piece   { c := *q; return &c }
func (q *Queen) InitialMoves(b *Board, from position.Coord) []Move {
	return glide(b, from, position.DirectionsOmni, RangeUnbounded)
}

type King struct{ Colored }

func NewKing(s Side) *King { return &King{Colored{s}} }

func (*King) Kind() Kind       { return KindKing }
func (k *King) Symbol() string { return k.Color.Cased("K") }
func (k *King) Clone() Piece   { c := *k; return &c }
func (k *King) InitialMoves(b *Board, from position.Coord) []Move {
	return glide(b, from, position.DirectionsOmni, 1)
}
