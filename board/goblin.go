package board

import (
	"strings"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

type GoblinState uint8

const (
	GoblinFree GoblinState = iota
	GoblinKidnapping
)

func (s GoblinState) String() string {
	switch s {
	case GoblinFree:
		return "Free"
	case GoblinKidnapping:
		return "Kidnapping"
	default:
		return ""
	}
}

// Goblin glides like a queen while free. Capturing an enemy kidnaps it: the goblin
// then only steps to empty squares until it reaches Home, where the cargo joins the
// goblin's side and takes the goblin's place.
type Goblin struct {
	Colored
	Home  position.Coord
	Cargo Piece
}

func NewGoblin(s Side, home position.Coord) *Goblin {
	return &Goblin{Colored: Colored{s}, Home: home}
}

// DefaultGoblinHome is the home square assumed when the notation omits one.
func DefaultGoblinHome(s Side) position.Coord {
	if s == SideBlack {
		return position.Coord{File: position.MaxComponentScalar - 1, Rank: position.MaxComponentScalar - 1}
	}
	return position.Coord{}
}

func (*Goblin) Kind() Kind { return KindGoblin }

func (g *Goblin) State() GoblinState {
	if g.Cargo != nil {
		return GoblinKidnapping
	}
	return GoblinFree
}

func (g *Goblin) Clone() Piece {
	c := *g
	if g.Cargo != nil {
		c.Cargo = g.Cargo.Clone()
	}
	return &c
}

func (g *Goblin) Symbol() string {
	fields := []string{"H=" + g.Home.Notation()}
	if g.Cargo != nil {
		fields = append(fields, "P="+g.Cargo.Symbol())
	}
	return g.Color.Cased("G") + "(" + strings.Join(fields, ",") + ")"
}

func (g *Goblin) InitialMoves(b *Board, from position.Coord) []Move {
	if g.State() == GoblinKidnapping {
		return step(b, from, toEmpty)
	}
	return glide(b, from, position.DirectionsOmni, RangeUnbounded)
}

func (g *Goblin) PostMoveEffects(before, after *Board, mv Move) error {
	if mv.Type.Kind != MoveKindMoveTo {
		return nil
	}
	to := mv.Type.Target
	switch g.State() {
	case GoblinFree:
		captured := before.PieceAt(to)
		if captured == nil || captured.Side() == g.Color {
			return nil
		}
		g.Cargo = captured.Clone()
		log().Debug("goblin kidnapped piece",
			coordField("at", to),
			zap.String("cargo", g.Cargo.Symbol()),
			coordField("home", g.Home))
	case GoblinKidnapping:
		if to != g.Home {
			return nil
		}
		cargo := g.Cargo
		g.Cargo = nil
		cargo.SetSide(g.Color)
		log().Debug("goblin dropped off cargo",
			coordField("at", to),
			zap.String("piece", cargo.Symbol()))
		return after.SetPieceAt(to, cargo)
	}
	return nil
}

func decodeGoblin(name, state string) Piece {
	s := sideOfSymbol(name)
	g := NewGoblin(s, DefaultGoblinHome(s))
	var hasHome bool
	for _, f := range stateFields(state) {
		switch f.key {
		case "H":
			home, err := position.NewCoordFromNotation(f.value)
			if err != nil {
				log().Warn("invalid goblin home", zap.String("value", f.value), zap.Error(err))
				continue
			}
			g.Home, hasHome = home, true
		case "P":
			cargo := parsePiece(f.value)
			if cargo == nil {
				continue
			}
			g.Cargo = cargo
		default:
			log().Warn("unknown goblin attribute", zap.String("field", f.raw))
		}
	}
	if !hasHome {
		log().Warn("goblin without home square", zap.String("symbol", name), coordField("default", g.Home))
	}
	return g
}
