package board

import (
	"fmt"
	"strings"

	"github.com/daystram/brainrot/position"
)

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteKingside
	CastleDirectionWhiteQueenside
	CastleDirectionBlackKingside
	CastleDirectionBlackQueenside
)

var castleSymbols = [...]struct {
	d   CastleDirection
	sym byte
}{
	{CastleDirectionWhiteKingside, 'K'},
	{CastleDirectionWhiteQueenside, 'Q'},
	{CastleDirectionBlackKingside, 'k'},
	{CastleDirectionBlackQueenside, 'q'},
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteKingside:
		return "White 0-0"
	case CastleDirectionWhiteQueenside:
		return "White 0-0-0"
	case CastleDirectionBlackKingside:
		return "Black 0-0"
	case CastleDirectionBlackQueenside:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteKingside || d == CastleDirectionWhiteQueenside
}

type CastleRights uint8

const CastleRightsAll = CastleRights(1<<CastleDirectionWhiteKingside | 1<<CastleDirectionWhiteQueenside |
	1<<CastleDirectionBlackKingside | 1<<CastleDirectionBlackQueenside)

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= 1 << d
	} else {
		*c &^= 1 << d
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&(1<<d) != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	for _, cs := range castleSymbols {
		if cs.d.IsWhite() == (s == SideWhite) && c.IsAllowed(cs.d) {
			return true
		}
	}
	return false
}

func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, cs := range castleSymbols {
		if c.IsAllowed(cs.d) {
			_ = sb.WriteByte(cs.sym)
		}
	}
	return sb.String()
}

func parseCastleRights(s string) (CastleRights, error) {
	var c CastleRights
	if s == "-" {
		return c, nil
	}
next:
	for _, r := range s {
		for _, cs := range castleSymbols {
			if rune(cs.sym) == r {
				c.Set(cs.d, true)
				continue next
			}
		}
		return c, fmt.Errorf("invalid castling rights %q", s)
	}
	return c, nil
}

// Flags holds castling rights and the en passant target. No rule reads them yet;
// they are kept so the notation can carry them through.
type Flags struct {
	Castle    CastleRights
	EnPassant *position.Coord
}

func DefaultFlags() Flags {
	return Flags{Castle: CastleRightsAll}
}

func (f Flags) IsDefault() bool {
	return f.Castle == CastleRightsAll && f.EnPassant == nil
}

func (f Flags) clone() Flags {
	if f.EnPassant != nil {
		ep := *f.EnPassant
		f.EnPassant = &ep
	}
	return f
}

func (f Flags) String() string {
	ep := "-"
	if f.EnPassant != nil {
		ep = f.EnPassant.Notation()
	}
	return f.Castle.String() + " " + ep
}
