package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/brainrot/board"
)

const (
	ScoreInfinite int32 = math.MaxInt32 / 2
)

var ErrNoMove = errors.New("cannot resolve best move")

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type PVLine struct {
	mvs []board.Move
}

func (pvl *PVLine) GetPV() (board.Move, bool) {
	if len(pvl.mvs) == 0 {
		return board.Move{}, false
	}
	return pvl.mvs[0], true
}

func (pvl *PVLine) Set(mv board.Move, nextPVL PVLine) {
	if pvl == nil {
		return
	}
	pvl.mvs = append([]board.Move{mv}, nextPVL.mvs...)
}

func (pvl *PVLine) Clear() {
	pvl.mvs = pvl.mvs[:0]
}

func (pvl *PVLine) Len() int {
	return len(pvl.mvs)
}

func (pvl *PVLine) String() string {
	if pvl == nil {
		return ""
	}
	parts := make([]string, len(pvl.mvs))
	for i, mv := range pvl.mvs {
		parts[i] = mv.String()
	}
	return strings.Join(parts, " | ")
}

type EngineConfig struct {
	HashTableSize uint64
	Logger        func(...any)
}

type SearchConfig struct {
	ClockConfig ClockConfig
	Debug       bool
}

// Engine searches pseudo-legal moves with iterative deepening negamax. An Engine
// is not safe for concurrent searches.
type Engine struct {
	tt    *TranspositionTable
	clock *Clock

	nodes       uint64
	elapsedTime time.Duration
	logger      func(...any)
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}

	return &Engine{
		tt:     NewTranspositionTable(cfg.HashTableSize),
		clock:  NewClock(),
		logger: cfg.Logger,
	}
}

// Search returns the best move for side. The search stops at the configured depth,
// at the movetime, or when ctx is done, whichever comes first.
func (e *Engine) Search(ctx context.Context, b *board.Board, side board.Side, cfg *SearchConfig) (board.Move, error) {
	if side != board.SideWhite && side != board.SideBlack {
		return board.Move{}, fmt.Errorf("invalid side %d", side)
	}
	mv, ok := e.search(ctx, b, side, cfg)
	if !ok {
		if err := ctx.Err(); err != nil {
			return board.Move{}, fmt.Errorf("%w: %w", ErrNoMove, err)
		}
		return board.Move{}, ErrNoMove
	}
	return mv, nil
}

func (e *Engine) search(ctx context.Context, b *board.Board, side board.Side, cfg *SearchConfig) (board.Move, bool) {
	var bestMove board.Move
	var found bool
	var pvl PVLine
	e.nodes = 0
	e.elapsedTime = 0
	e.tt.ResetStats()

	e.clock.Start(ctx, &cfg.ClockConfig)
	defer e.clock.Stop()

	for d := uint8(1); !e.clock.DoneByDepth(d); d++ {
		startTime := time.Now()
		score := e.negamax(b, side, &pvl, d, 0, -ScoreInfinite, ScoreInfinite)
		e.elapsedTime += time.Since(startTime)

		// an interrupted iteration is only trusted when nothing better is known
		if e.clock.DoneByMovetime() && found {
			break
		}
		mv, ok := pvl.GetPV()
		if !ok {
			break
		}
		bestMove, found = mv, true

		if cfg.Debug {
			hits, misses, writes := e.tt.Stats()
			e.logger(message.NewPrinter(language.English).
				Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s tt:%d/%d/%d\n    %s",
					d, formatScore(score), e.nodes, float64(e.nodes)/((e.elapsedTime + 1).Seconds()), e.elapsedTime,
					hits, misses, writes, pvl.String()))
		} else {
			e.logger(fmt.Sprintf("info depth %d score cp %d time %d nodes %d pv %s",
				d, score, e.elapsedTime.Milliseconds(), e.nodes, pvl.String()))
		}

		if e.clock.DoneByMovetime() {
			break
		}
		pvl.Clear()
	}
	return bestMove, found
}

// negamax scores the board for side; the score is always maximised for the side
// to move.
func (e *Engine) negamax(b *board.Board, side board.Side, pvl *PVLine, depth, dist uint8, alpha, beta int32) int32 {
	e.nodes++

	if e.clock.DoneByMovetime() {
		return 0
	}
	if depth == 0 {
		return Evaluate(b, side)
	}

	isRoot := dist == 0
	alphaOrig := alpha

	ttType, ttMove, ttScore, ttDepth, ok := e.tt.Get(b, side)
	if !isRoot && ok && ttDepth >= depth {
		switch ttType {
		case EntryTypeExact:
			return ttScore
		case EntryTypeLowerBound:
			if ttScore >= beta {
				return beta
			}
		case EntryTypeUpperBound:
			if ttScore <= alpha {
				return alpha
			}
		}
	}

	mvs := scoreMoves(b, ttMove, b.AllMoves(side))
	if len(mvs) == 0 {
		return Evaluate(b, side)
	}

	var moveCount int
	var bestMove board.Move
	var childPVL PVLine
	bestScore := -ScoreInfinite
	for i := range mvs {
		sortMoves(mvs, i)
		mv := mvs[i].mv

		bb := b.Clone()
		if err := bb.MakeMove(mv); err != nil {
			continue
		}
		moveCount++
		score := -e.negamax(bb, side.Opposite(), &childPVL, depth-1, dist+1, -beta, -alpha)

		if score > bestScore {
			bestMove = mv
			bestScore = score
		}
		if score >= beta {
			e.tt.Set(EntryTypeLowerBound, b, side, bestMove, beta, depth)
			return beta // fail-hard cutoff
		}
		if score > alpha {
			alpha = score
			pvl.Set(mv, childPVL)
		}

		if e.clock.DoneByMovetime() {
			return alpha
		}
		childPVL.Clear()
	}

	if moveCount == 0 {
		return Evaluate(b, side)
	}

	ttType = EntryTypeUpperBound
	if alpha > alphaOrig {
		ttType = EntryTypeExact
	}
	e.tt.Set(ttType, b, side, bestMove, alpha, depth)

	return alpha
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

func formatScore(s int32) string {
	switch {
	case s >= ScoreInfinite:
		return "+inf"
	case s <= -ScoreInfinite:
		return "-inf"
	case s > 0:
		return fmt.Sprintf("+%.2f", float64(s)/100)
	case s < 0:
		return fmt.Sprintf("-%.2f", float64(abs(s))/100)
	default:
		return "0"
	}
}
