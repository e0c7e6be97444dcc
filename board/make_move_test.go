package board

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/brainrot/position"
)

func brainrotSquares(b *Board) []position.Coord {
	var cs []position.Coord
	for rank := range Height {
		for file := range Width {
			if b.grid[rank][file].Conditions.Has(ConditionBrainrot) {
				cs = append(cs, position.NewCoord(file, rank))
			}
		}
	}
	return cs
}

func within(center position.Coord, radius int) []position.Coord {
	var cs []position.Coord
	for rank := range Height {
		for file := range Width {
			c := position.NewCoord(file, rank)
			if c != center && position.Distance(c, center) <= radius {
				cs = append(cs, c)
			}
		}
	}
	return cs
}

func mv(fromFile, fromRank int, t MoveType) Move {
	return Move{From: position.NewCoord(fromFile, fromRank), Type: t}
}

func to(file, rank int) MoveType {
	return MoveTo(position.NewCoord(file, rank))
}

func TestMakeMoveRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		move    Move
		wantErr error
	}{
		{name: "not generated", move: mv(0, 0, to(1, 1)), wantErr: ErrIllegalMove},
		{name: "own piece", move: mv(0, 0, to(0, 3)), wantErr: ErrIllegalMove},
		{name: "phase shift on rook", move: mv(0, 0, PhaseShift()), wantErr: ErrIllegalMove},
		{name: "off board", move: mv(8, 0, to(0, 0)), wantErr: ErrMissingSquare},
		{name: "empty origin", move: mv(4, 4, to(4, 5)), wantErr: ErrMissingPiece},
		{name: "frozen origin", move: mv(7, 0, to(6, 0)), wantErr: ErrIllegalMove},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := Decode("R6(P=Q,C=FROZEN)/8/8/P7/8/8/8/7k")
			want := b.Clone()
			text := Encode(b)

			err := b.MakeMove(tt.move)
			require.ErrorIs(t, err, tt.wantErr)
			var moveErr *MoveError
			require.ErrorAs(t, err, &moveErr)
			assert.True(t, moveErr.Move.Equal(tt.move))

			assert.Equal(t, text, Encode(b))
			if diff := cmp.Diff(want, b, boardCmpOpts...); diff != "" {
				t.Errorf("board changed after rejected move (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMakeMoveCapture(t *testing.T) {
	t.Parallel()
	b := Decode("R7/8/8/8/8/8/8/r6k")
	require.NoError(t, b.MakeMove(mv(0, 0, to(0, 7))))
	assert.Equal(t, "8/8/8/8/8/8/8/R6k", Encode(b))
}

func TestSkibidiPhaseShiftBrainrot(t *testing.T) {
	t.Parallel()

	at := position.NewCoord(3, 3)
	b := Decode("8/8/8/3S4/8/8/8/8")
	for phase := SkibidiMinPhase + 1; phase <= SkibidiMaxPhase; phase++ {
		require.NoError(t, b.MakeMove(Move{From: at, Type: PhaseShift()}), "phase=%d", phase)
		sk := b.PieceAt(at).(*Skibidi)
		assert.Equal(t, phase, sk.Phase)
		assert.ElementsMatch(t, within(at, phase-1), brainrotSquares(b), "phase=%d", phase)
	}
	assert.Len(t, brainrotSquares(b), 48)

	err := b.MakeMove(Move{From: at, Type: PhaseShift()})
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, SkibidiMaxPhase, b.PieceAt(at).(*Skibidi).Phase)
}

func TestSkibidiMoveResetsPhase(t *testing.T) {
	t.Parallel()

	b := Decode("8/8/8/3(P=S(PHASE=3))4/8/8/8/8")
	require.NoError(t, b.MakeMove(mv(3, 3, to(4, 4))))
	assert.Equal(t, "8/8/8/8/4S3/8/8/8", Encode(b))
	assert.Empty(t, brainrotSquares(b))
}

func TestBrainrotRecomputedAfterAnyMove(t *testing.T) {
	t.Parallel()

	b := Decode("(P=s(PHASE=2))7/8/8/8/8/8/8/7R")
	assert.Empty(t, brainrotSquares(b))
	require.NoError(t, b.MakeMove(mv(7, 7, to(7, 6))))
	assert.ElementsMatch(t, coords([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}), brainrotSquares(b))

	// stale tags are cleared
	require.NoError(t, b.SetSquare(position.NewCoord(5, 5), Square{Conditions: Conditions(ConditionBrainrot)}))
	require.NoError(t, b.MakeMove(mv(7, 6, to(7, 7))))
	assert.ElementsMatch(t, coords([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}), brainrotSquares(b))
}

func TestGoblinKidnapAndDropOff(t *testing.T) {
	t.Parallel()

	b := Decode("8/8/8/(P=G(H=0-0))7/8/n7/8/8")
	require.NoError(t, b.MakeMove(mv(0, 3, to(0, 5))))
	g, ok := b.PieceAt(position.NewCoord(0, 5)).(*Goblin)
	require.True(t, ok)
	assert.Equal(t, GoblinKidnapping, g.State())
	require.IsType(t, &Knight{}, g.Cargo)
	assert.Equal(t, SideBlack, g.Cargo.Side())
	assert.Equal(t, "8/8/8/8/8/(P=G(H=0-0,P=n))7/8/8", Encode(b))

	for rank := 4; rank >= 1; rank-- {
		require.NoError(t, b.MakeMove(mv(0, rank+1, to(0, rank))), "rank=%d", rank)
	}
	require.NoError(t, b.MakeMove(mv(0, 1, to(0, 0))))

	n, ok := b.PieceAt(position.NewCoord(0, 0)).(*Knight)
	require.True(t, ok)
	assert.Equal(t, SideWhite, n.Side())
	assert.Equal(t, "N7/8/8/8/8/8/8/8", Encode(b))
}

func TestGoblinDropOffRecoloursBusRiders(t *testing.T) {
	t.Parallel()

	b := Decode("(P=G(H=0-0))1(P=bus(P=(n)))5/8/8/8/8/8/8/8")
	require.NoError(t, b.MakeMove(mv(0, 0, to(2, 0))))
	assert.Equal(t, "2(P=G(H=0-0,P=bus(P=(n))))5/8/8/8/8/8/8/8", Encode(b))
	require.NoError(t, b.MakeMove(mv(2, 0, to(1, 0))))
	require.NoError(t, b.MakeMove(mv(1, 0, to(0, 0))))

	bs, ok := b.PieceAt(position.NewCoord(0, 0)).(*Bus)
	require.True(t, ok)
	assert.Equal(t, SideWhite, bs.Side())
	require.Len(t, bs.Passengers(), 1)
	assert.Equal(t, SideWhite, bs.Passengers()[0].Side())

	text := Encode(b)
	assert.Equal(t, "(P=BUS(P=(N)))7/8/8/8/8/8/8/8", text)
	assert.Equal(t, text, Encode(Decode(text)))
	assert.Len(t, b.AllMoves(SideWhite), 5)
}

func TestGoblinKidnappingCannotCapture(t *testing.T) {
	t.Parallel()

	b := Decode("8/8/8/1p6/(P=G(H=7-7,P=r))7/8/8/8")
	err := b.MakeMove(mv(0, 4, to(1, 3)))
	require.ErrorIs(t, err, ErrIllegalMove)
}

func TestBusBoardAndExit(t *testing.T) {
	t.Parallel()

	b := Decode("R(P=BUS)6/8/8/8/8/8/8/8")
	require.NoError(t, b.MakeMove(mv(0, 0, MoveIntoCarrier(position.NewCoord(1, 0)))))
	assert.Equal(t, "1(P=BUS(P=(R)))6/8/8/8/8/8/8/8", Encode(b))

	require.NoError(t, b.MakeMove(mv(1, 0, PieceInCarrier(0, to(1, 5)))))
	assert.Equal(t, "1(P=BUS)6/8/8/8/8/1R6/8/8", Encode(b))
}

func TestBusPassengerCapture(t *testing.T) {
	t.Parallel()

	b := Decode("8/8/8/3(P=BUS(P=(N,G(H=0-0))))4/8/4q3/8/8")
	require.NoError(t, b.MakeMove(mv(3, 3, PieceInCarrier(0, to(4, 5)))))
	assert.Equal(t, "8/8/8/3(P=BUS(P=(G(H=0-0))))4/8/4N3/8/8", Encode(b))

	err := b.MakeMove(mv(3, 3, PieceInCarrier(1, to(4, 5))))
	require.ErrorIs(t, err, ErrIllegalMove)
}

func TestBusGoblinPassengerKidnaps(t *testing.T) {
	t.Parallel()

	b := Decode("8/8/8/3(P=BUS(P=(G(H=0-0))))4/8/5q2/8/8")
	require.NoError(t, b.MakeMove(mv(3, 3, PieceInCarrier(0, to(5, 5)))))
	assert.Equal(t, "8/8/8/3(P=BUS)4/8/5(P=G(H=0-0,P=q))2/8/8", Encode(b))
}

func TestBusPassengerPhaseShift(t *testing.T) {
	t.Parallel()

	b := Decode("(P=BUS(P=(S)))7/8/8/8/8/8/8/8")
	require.NoError(t, b.MakeMove(mv(0, 0, PieceInCarrier(0, PhaseShift()))))
	assert.Equal(t, "(P=BUS(P=(S(PHASE=2))))7/8/8/8/8/8/8/8", Encode(b))
	assert.Empty(t, brainrotSquares(b))
}

type dragon struct {
	breaths int
	fail    bool
}

func (d *dragon) Token() string {
	if d.fail {
		return "WYRM"
	}
	return "DRAGON"
}

func (d *dragon) State() string {
	if d.breaths == 0 {
		return ""
	}
	return "B=" + strconv.Itoa(d.breaths)
}

func (d *dragon) InitialMoves(b *Board, from position.Coord, _ Side) []Move {
	return glide(b, from, position.DirectionsOmni, 2)
}

func (d *dragon) Clone() Capability {
	c := *d
	return &c
}

func (d *dragon) PostMoveEffects(_ *Custom, _, _ *Board, _ Move) error {
	if d.fail {
		return errors.New("wyrm refuses to move")
	}
	d.breaths++
	return nil
}

func decodeDragon(fail bool) CustomDecoder {
	return func(state string) (Capability, error) {
		d := &dragon{fail: fail}
		if state == "" {
			return d, nil
		}
		v, ok := strings.CutPrefix(state, "B=")
		if !ok {
			return nil, errors.New("unknown dragon state")
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		d.breaths = n
		return d, nil
	}
}

func TestCustomPiece(t *testing.T) {
	t.Parallel()

	require.NoError(t, RegisterCustom("dragon", decodeDragon(false)))
	require.NoError(t, RegisterCustom("WYRM", decodeDragon(true)))
	require.Error(t, RegisterCustom("bus", decodeDragon(false)))

	b := Decode("(P=DRAGON)7/8/8/8/8/8/8/(P=wyrm)7")
	d, ok := b.PieceAt(position.NewCoord(0, 0)).(*Custom)
	require.True(t, ok)
	assert.Equal(t, SideWhite, d.Side())
	assert.Len(t, b.GetMoves(position.NewCoord(0, 0)), 6)
	assert.Equal(t, SideBlack, b.PieceAt(position.NewCoord(0, 7)).Side())

	require.NoError(t, b.MakeMove(mv(0, 0, to(2, 2))))
	assert.Equal(t, "8/8/2(P=DRAGON(B=1))5/8/8/8/8/(P=wyrm)7", Encode(b))
	assert.Equal(t, Encode(b), Encode(Decode(Encode(b))))

	before := Encode(b)
	err := b.MakeMove(mv(0, 7, to(0, 6)))
	require.Error(t, err)
	var moveErr *MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, before, Encode(b))

	assert.False(t, CanCarry(d, NewPawn(SideWhite)))
	_, err = d.Unload(0)
	require.ErrorIs(t, err, ErrNotCarrier)
}

// ferry is a carrier that counts Reload calls.
type ferry struct {
	riders  []Piece
	reloads int
}

func (*ferry) Token() string { return "FERRY" }

func (*ferry) State() string { return "" }

func (f *ferry) InitialMoves(_ *Board, from position.Coord, _ Side) []Move {
	mvs := make([]Move, len(f.riders))
	for i := range f.riders {
		mvs[i] = Move{From: from, Type: PieceInCarrier(i, PhaseShift())}
	}
	return mvs
}

func (f *ferry) Clone() Capability {
	c := &ferry{reloads: f.reloads, riders: make([]Piece, len(f.riders))}
	for i, p := range f.riders {
		c.riders[i] = p.Clone()
	}
	return c
}

func (f *ferry) CanCarry(Piece) bool { return false }

func (f *ferry) Passengers() []Piece { return f.riders }

func (f *ferry) Load(Piece) error { return ErrIllegalMove }

func (f *ferry) Unload(int) (Piece, error) { return nil, ErrIllegalMove }

func (f *ferry) Reload(index int, p Piece) error {
	if index < 0 || index >= len(f.riders) {
		return ErrMissingPiece
	}
	f.riders[index] = p
	f.reloads++
	return nil
}

func TestCarriedPhaseShiftReloads(t *testing.T) {
	t.Parallel()

	sk := NewSkibidi(SideWhite)
	f := &ferry{riders: []Piece{sk}}
	b := NewBoard()
	require.NoError(t, b.SetPieceAt(position.NewCoord(0, 0), NewCustom(SideWhite, f)))

	require.NoError(t, b.MakeMove(mv(0, 0, PieceInCarrier(0, PhaseShift()))))
	assert.Equal(t, 1, f.reloads)
	assert.Equal(t, 1, sk.Phase, "the original passenger is replaced, not mutated")
	shifted, ok := f.riders[0].(*Skibidi)
	require.True(t, ok)
	assert.Equal(t, 2, shifted.Phase)

	err := b.MakeMove(mv(0, 0, PieceInCarrier(1, PhaseShift())))
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, 1, f.reloads)
}
