package board

import "strings"

// SquareType is the terrain of a square. Terrain is recorded and encoded but does
// not change movement yet, except that only Standard squares count as empty.
type SquareType uint8

const (
	SquareStandard SquareType = iota
	SquareTurret
	SquareVent
)

func (t SquareType) String() string {
	switch t {
	case SquareStandard:
		return "STANDARD"
	case SquareTurret:
		return "TURRET"
	case SquareVent:
		return "VENT"
	default:
		return ""
	}
}

func parseSquareType(token string) (SquareType, bool) {
	switch token {
	case "STANDARD":
		return SquareStandard, true
	case "TURRET":
		return SquareTurret, true
	case "VENT":
		return SquareVent, true
	default:
		return SquareStandard, false
	}
}

// Condition is a single tag a square may carry.
type Condition uint8

const (
	ConditionFrozen Condition = 1 << iota
	ConditionBrainrot
)

// AllConditions lists the conditions in encoding order.
var AllConditions = []Condition{ConditionFrozen, ConditionBrainrot}

func (c Condition) String() string {
	switch c {
	case ConditionFrozen:
		return "FROZEN"
	case ConditionBrainrot:
		return "BRAINROT"
	default:
		return ""
	}
}

func parseCondition(token string) (Condition, bool) {
	for _, c := range AllConditions {
		if c.String() == token {
			return c, true
		}
	}
	return 0, false
}

// Conditions is the set of conditions on a square.
type Conditions uint8

func (cs Conditions) Has(c Condition) bool {
	return cs&Conditions(c) != 0
}

func (cs *Conditions) Set(c Condition) {
	*cs |= Conditions(c)
}

func (cs *Conditions) Unset(c Condition) {
	*cs &^= Conditions(c)
}

// Immobilizing reports whether a piece on the square is prevented from moving.
func (cs Conditions) Immobilizing() bool {
	return cs.Has(ConditionFrozen) || cs.Has(ConditionBrainrot)
}

func (cs Conditions) String() string {
	var names []string
	for _, c := range AllConditions {
		if cs.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, "|")
}

type Square struct {
	Piece      Piece
	Type       SquareType
	Conditions Conditions
}

// IsEmpty reports whether the square is a plain Standard square without an occupant.
func (s Square) IsEmpty() bool {
	return s.Piece == nil && s.Type == SquareStandard
}

// IsBlank reports whether the square carries nothing worth encoding.
func (s Square) IsBlank() bool {
	return s.IsEmpty() && s.Conditions == 0
}

func (s Square) clone() Square {
	if s.Piece != nil {
		s.Piece = s.Piece.Clone()
	}
	return s
}
