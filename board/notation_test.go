package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/daystram/brainrot/position"
)

var boardCmpOpts = []cmp.Option{
	cmp.AllowUnexported(Board{}),
	cmpopts.EquateEmpty(),
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()
	tests := []string{
		EmptyNotation,
		"R7/8/8/8/8/8/8/7k",
		"(P=R,T=VENT)7/8/8/8/8/8/8/8",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"8/8/3(P=S(PHASE=3))4/8/8/8/8/8",
		"S7/s7/8/8/8/8/8/8",
		"(P=G(H=0-0))7/8/8/8/8/8/8/7(P=g(H=7-7,P=N))",
		"(P=G(H=0-0,P=n),T=VENT)7/8/8/8/8/8/8/8",
		"(P=BUS)7/8/(P=bus(P=(n,s(PHASE=2),p)))7/8/8/8/8/8",
		"M6m/8/8/8/8/8/8/8",
		"(C=FROZEN)7/(T=TURRET)7/(C=BRAINROT)7/(P=K,C=FROZEN,C=BRAINROT)7/8/8/8/8",
		"8/8/8/8/8/8/8/8 - -",
		"8/8/8/8/8/8/8/8 Kq 2-5",
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt, func(t *testing.T) {
			t.Parallel()
			got := Encode(Decode(tt))
			assert.Equal(t, tt, got)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	assert.Equal(t, "8/8/8/8/8/8/8/8", Encode(b))

	require.NoError(t, b.SetPieceAt(position.NewCoord(0, 0), NewRook(SideWhite)))
	require.NoError(t, b.SetPieceAt(position.NewCoord(7, 7), NewKing(SideBlack)))
	assert.Equal(t, "R7/8/8/8/8/8/8/7k", Encode(b))

	vent := NewBoard()
	require.NoError(t, vent.SetSquare(position.NewCoord(0, 0), Square{Piece: NewRook(SideWhite), Type: SquareVent}))
	assert.Equal(t, "(P=R,T=VENT)7/8/8/8/8/8/8/8", Encode(vent))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	b := Decode("(P=R,T=VENT)7/8/8/8/8/8/8/8")
	sq, err := b.SquareAt(position.NewCoord(0, 0))
	require.NoError(t, err)
	assert.Equal(t, SquareVent, sq.Type)
	require.IsType(t, &Rook{}, sq.Piece)
	assert.Equal(t, SideWhite, sq.Piece.Side())

	b = Decode("()7/8/8/8/8/8/8/8")
	assert.Equal(t, EmptyNotation, Encode(b))

	b = Decode("(P=g(H=3-4,P=(P=Q)))7/8/8/8/8/8/8/8")
	g, ok := b.PieceAt(position.NewCoord(0, 0)).(*Goblin)
	require.True(t, ok)
	assert.Equal(t, SideBlack, g.Side())
	assert.Equal(t, position.NewCoord(3, 4), g.Home)
	assert.Equal(t, GoblinFree, g.State())

	b = Decode("(P=G(H=3-4,P=q))7/8/8/8/8/8/8/8")
	g = b.PieceAt(position.NewCoord(0, 0)).(*Goblin)
	assert.Equal(t, GoblinKidnapping, g.State())
	require.IsType(t, &Queen{}, g.Cargo)
	assert.Equal(t, SideBlack, g.Cargo.Side())

	b = Decode("8/(P=BUS(P=(N,S(PHASE=4))))7/8/8/8/8/8/8")
	bs := b.PieceAt(position.NewCoord(0, 1)).(*Bus)
	require.Len(t, bs.Passengers(), 2)
	assert.Equal(t, KindKnight, bs.Passengers()[0].Kind())
	assert.Equal(t, 4, bs.Passengers()[1].(*Skibidi).Phase)
}

func TestDecodeRoundTripBoard(t *testing.T) {
	t.Parallel()

	ep := position.NewCoord(4, 5)
	b := NewBoard(WithFlags(Flags{Castle: CastleRightsAll &^ (1 << CastleDirectionBlackQueenside), EnPassant: &ep}))
	sk := NewSkibidi(SideBlack)
	sk.Phase = 3
	require.NoError(t, b.SetPieceAt(position.NewCoord(2, 2), sk))
	require.NoError(t, b.SetPieceAt(position.NewCoord(5, 6), &Goblin{Colored: Colored{SideWhite}, Home: position.NewCoord(1, 7), Cargo: NewBishop(SideBlack)}))
	require.NoError(t, b.SetPieceAt(position.NewCoord(7, 0), NewBus(SideWhite, NewKnight(SideWhite), NewMonkey(SideWhite))))
	require.NoError(t, b.SetSquare(position.NewCoord(3, 3), Square{Type: SquareTurret, Conditions: Conditions(ConditionFrozen)}))
	RecalcBrainrot(b)

	got := Decode(Encode(b))
	if diff := cmp.Diff(b, got, boardCmpOpts...); diff != "" {
		t.Errorf("Decode(Encode(b)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSpacedAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "(P=R, T=VENT)7/8/8/8/8/8/8/8", want: "(P=R,T=VENT)7/8/8/8/8/8/8/8"},
		{text: "(P=R, T=VENT)7/8/8/8/8/8/8/8 Kq", want: "(P=R,T=VENT)7/8/8/8/8/8/8/8 Kq -"},
		{text: "(P=BUS(P=(N, R)))7/8/8/8/8/8/8/(C=FROZEN )7", want: "(P=BUS(P=(N,R)))7/8/8/8/8/8/8/(C=FROZEN)7"},
	}
	for _, tt := range tests {
		b := Decode(tt.text)
		if got := Encode(b); got != tt.want {
			t.Errorf("unexpected encoding of %q: got=%s want=%s", tt.text, got, tt.want)
		}
	}

	b := Decode("(P=R, T=VENT)7/8/8/8/8/8/8/8")
	sq, err := b.SquareAt(position.NewCoord(0, 0))
	require.NoError(t, err)
	assert.Equal(t, SquareVent, sq.Type)
	require.NotNil(t, sq.Piece)
	assert.Equal(t, KindRook, sq.Piece.Kind())
	assert.True(t, b.Flags().IsDefault())
}

func TestDecodeRoundTripFullBus(t *testing.T) {
	t.Parallel()

	riders := func(n int) []Piece {
		ps := make([]Piece, n)
		for i := range ps {
			ps[i] = NewKnight(SideWhite)
		}
		return ps
	}
	tests := []struct {
		name string
		bus  *Bus
	}{
		{name: "at capacity", bus: NewBus(SideWhite, riders(BusCapacity)...)},
		{name: "over capacity", bus: NewBus(SideWhite, riders(BusCapacity+1)...)},
		{name: "mixed riders", bus: NewBus(SideBlack, NewKnight(SideWhite), NewBus(SideBlack))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			require.NoError(t, b.SetPieceAt(position.NewCoord(3, 4), tt.bus))

			got := Decode(Encode(b))
			if diff := cmp.Diff(b, got, boardCmpOpts...); diff != "" {
				t.Errorf("Decode(Encode(b)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	tests := []struct {
		text    string
		want    string
		wantLog string
	}{
		{text: "X7/8/8/8/8/8/8/8", want: EmptyNotation, wantLog: "unknown piece"},
		{text: "(T=LAVA)7/8/8/8/8/8/8/8", want: EmptyNotation, wantLog: "unknown square type"},
		{text: "(C=ON_FIRE)7/8/8/8/8/8/8/8", want: EmptyNotation, wantLog: "unknown square condition"},
		{text: "(Z=1,P=R)7/8/8/8/8/8/8/8", want: "R7/8/8/8/8/8/8/8", wantLog: "unknown square attribute"},
		{text: "8/8/8", want: EmptyNotation, wantLog: "unexpected row count"},
		{text: "R8/8/8/8/8/8/8/8", want: "R7/8/8/8/8/8/8/8", wantLog: "unexpected square count"},
		{text: "G7/8/8/8/8/8/8/8", want: "(P=G(H=0-0))7/8/8/8/8/8/8/8", wantLog: "goblin without home square"},
		{text: "(P=s(PHASE=9))7/8/8/8/8/8/8/8", want: "s7/8/8/8/8/8/8/8", wantLog: "invalid skibidi phase"},
		{text: "8/8/8/8/8/8/8/8 XY -", want: EmptyNotation, wantLog: "invalid castling rights"},
	}
	for _, tt := range tests {
		_ = logs.TakeAll()
		got := Encode(Decode(tt.text))
		assert.Equal(t, tt.want, got, "text=%q", tt.text)
		assert.NotZero(t, logs.FilterMessage(tt.wantLog).Len(), "text=%q missing log %q", tt.text, tt.wantLog)
	}
}

func TestDecodeBlackGoblinDefaultHome(t *testing.T) {
	t.Parallel()
	b := Decode("g7/8/8/8/8/8/8/8")
	g := b.PieceAt(position.NewCoord(0, 0)).(*Goblin)
	assert.Equal(t, position.NewCoord(7, 7), g.Home)
}

func TestFindMatchingParen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s    string
		open int
		want int
	}{
		{s: "()", open: 0, want: 1},
		{s: "(P=G(H=0-0,P=n),T=VENT)7", open: 0, want: 22},
		{s: "(P=G(H=0-0,P=n),T=VENT)7", open: 4, want: 14},
		{s: "((", open: 0, want: -1},
		{s: "abc", open: 1, want: -1},
		{s: "", open: 0, want: -1},
	}
	for _, tt := range tests {
		if got := FindMatchingParen(tt.s, tt.open); got != tt.want {
			t.Errorf("FindMatchingParen(%q, %d): got=%d want=%d", tt.s, tt.open, got, tt.want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s    string
		want []string
	}{
		{s: "", want: nil},
		{s: "P=R", want: []string{"P=R"}},
		{s: "P=G(H=0-0,P=n),T=VENT", want: []string{"P=G(H=0-0,P=n)", "T=VENT"}},
		{s: "P=(N,S(PHASE=2)),C=FROZEN", want: []string{"P=(N,S(PHASE=2))", "C=FROZEN"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTopLevel(tt.s), "s=%q", tt.s)
	}
}
