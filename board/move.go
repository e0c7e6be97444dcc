package board

import (
	"encoding/json"
	"fmt"

	"github.com/daystram/brainrot/position"
)

type MoveKind uint8

const (
	MoveKindUnknown MoveKind = iota
	MoveKindMoveTo
	MoveKindPhaseShift
	MoveKindMoveIntoCarrier
	MoveKindPieceInCarrier
)

func (k MoveKind) String() string {
	switch k {
	case MoveKindMoveTo:
		return "MoveTo"
	case MoveKindPhaseShift:
		return "PhaseShift"
	case MoveKindMoveIntoCarrier:
		return "MoveIntoCarrier"
	case MoveKindPieceInCarrier:
		return "PieceInCarrier"
	default:
		return ""
	}
}

func parseMoveKind(s string) (MoveKind, bool) {
	for k := MoveKindMoveTo; k <= MoveKindPieceInCarrier; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return MoveKindUnknown, false
}

// MoveType describes what a move does. Target is set for MoveTo and
// MoveIntoCarrier; Index and Inner are set for PieceInCarrier.
type MoveType struct {
	Kind   MoveKind
	Target position.Coord
	Index  int
	Inner  *MoveType
}

func MoveTo(target position.Coord) MoveType {
	return MoveType{Kind: MoveKindMoveTo, Target: target}
}

func PhaseShift() MoveType {
	return MoveType{Kind: MoveKindPhaseShift}
}

func MoveIntoCarrier(target position.Coord) MoveType {
	return MoveType{Kind: MoveKindMoveIntoCarrier, Target: target}
}

func PieceInCarrier(index int, inner MoveType) MoveType {
	return MoveType{Kind: MoveKindPieceInCarrier, Index: index, Inner: &inner}
}

// Destination returns the square a MoveTo or MoveIntoCarrier lands on.
func (t MoveType) Destination() (position.Coord, bool) {
	switch t.Kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		return t.Target, true
	default:
		return position.Coord{}, false
	}
}

func (t MoveType) Equal(o MoveType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		return t.Target == o.Target
	case MoveKindPieceInCarrier:
		if t.Index != o.Index || (t.Inner == nil) != (o.Inner == nil) {
			return false
		}
		return t.Inner == nil || t.Inner.Equal(*o.Inner)
	default:
		return true
	}
}

func (t MoveType) String() string {
	switch t.Kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Target)
	case MoveKindPieceInCarrier:
		if t.Inner == nil {
			return fmt.Sprintf("%s[%d]", t.Kind, t.Index)
		}
		return fmt.Sprintf("%s[%d](%s)", t.Kind, t.Index, t.Inner)
	default:
		return t.Kind.String()
	}
}

type Move struct {
	From position.Coord
	Type MoveType
}

func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.Type.Equal(o.Type)
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.From, m.Type)
}

// ContainsMove reports whether mv is a member of mvs.
func ContainsMove(mvs []Move, mv Move) bool {
	for _, m := range mvs {
		if m.Equal(mv) {
			return true
		}
	}
	return false
}

type moveJSON struct {
	From     position.Coord `json:"from"`
	MoveType moveTypeJSON   `json:"move_type"`
}

type moveTypeJSON struct {
	Kind   string          `json:"kind"`
	Target json.RawMessage `json:"target,omitempty"`
}

type carrierTargetJSON struct {
	PieceIndex int          `json:"piece_index"`
	MoveType   moveTypeJSON `json:"move_type"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	t, err := m.Type.toJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(moveJSON{From: m.From, MoveType: t})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := raw.MoveType.toMoveType()
	if err != nil {
		return err
	}
	*m = Move{From: raw.From, Type: t}
	return nil
}

func (t MoveType) MarshalJSON() ([]byte, error) {
	j, err := t.toJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

func (t *MoveType) UnmarshalJSON(data []byte) error {
	var raw moveTypeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mt, err := raw.toMoveType()
	if err != nil {
		return err
	}
	*t = mt
	return nil
}

func (t MoveType) toJSON() (moveTypeJSON, error) {
	out := moveTypeJSON{Kind: t.Kind.String()}
	var target any
	switch t.Kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		target = t.Target
	case MoveKindPhaseShift:
		return out, nil
	case MoveKindPieceInCarrier:
		if t.Inner == nil {
			return out, fmt.Errorf("%w: %s without inner move", ErrUnsupportedMove, t.Kind)
		}
		inner, err := t.Inner.toJSON()
		if err != nil {
			return out, err
		}
		target = carrierTargetJSON{PieceIndex: t.Index, MoveType: inner}
	default:
		return out, fmt.Errorf("%w: unknown move kind %d", ErrUnsupportedMove, t.Kind)
	}
	b, err := json.Marshal(target)
	if err != nil {
		return out, err
	}
	out.Target = b
	return out, nil
}

func (j moveTypeJSON) toMoveType() (MoveType, error) {
	kind, ok := parseMoveKind(j.Kind)
	if !ok {
		return MoveType{}, fmt.Errorf("%w: unknown move kind %q", ErrUnsupportedMove, j.Kind)
	}
	switch kind {
	case MoveKindMoveTo, MoveKindMoveIntoCarrier:
		var c position.Coord
		if err := json.Unmarshal(j.Target, &c); err != nil {
			return MoveType{}, fmt.Errorf("%s target: %w", kind, err)
		}
		return MoveType{Kind: kind, Target: c}, nil
	case MoveKindPieceInCarrier:
		var ct carrierTargetJSON
		if err := json.Unmarshal(j.Target, &ct); err != nil {
			return MoveType{}, fmt.Errorf("%s target: %w", kind, err)
		}
		inner, err := ct.MoveType.toMoveType()
		if err != nil {
			return MoveType{}, err
		}
		return PieceInCarrier(ct.PieceIndex, inner), nil
	default:
		return MoveType{Kind: kind}, nil
	}
}
