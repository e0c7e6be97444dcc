package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/brainrot/board"
)

// Counters tallies the leaf moves of a perft run.
type Counters struct {
	Nodes   atomic.Uint64
	Capture atomic.Uint64
	Board   atomic.Uint64
	Exit    atomic.Uint64
	Phase   atomic.Uint64
}

func (c *Counters) String() string {
	return fmt.Sprintf("nodes=%d cap=%d brd=%d ext=%d phs=%d",
		c.Nodes.Load(), c.Capture.Load(), c.Board.Load(), c.Exit.Load(), c.Phase.Load())
}

// Perft walks every pseudo-legal line of the given depth, sides alternating from
// side, and reports the totals on out.
func Perft(depth int, text string, side board.Side, parallel, verbose bool, out chan string) error {
	if depth < 0 {
		return fmt.Errorf("invalid depth %d", depth)
	}
	if side != board.SideWhite && side != board.SideBlack {
		return fmt.Errorf("invalid side %d", side)
	}
	b := board.Decode(text)

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var c Counters
	start := time.Now()
	run(b, side, depth, true, verbose, out, &c)
	end := time.Now()

	nodes := c.Nodes.Load()
	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d brd=%d ext=%d phs=%d (%.3fs elapsed)",
			depth, nodes, int(float64(nodes)/end.Sub(start).Seconds()),
			c.Capture.Load(), c.Board.Load(), c.Exit.Load(), c.Phase.Load(), end.Sub(start).Seconds())

	return nil
}

type perftFunc func(b *board.Board, s board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64

func runPerft(b *board.Board, s board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		c.Nodes.Add(1)
		return 1
	}

	var sum uint64
	for _, mv := range b.AllMoves(s) {
		child := expand(b, s, d, mv, c, runPerft)
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv, child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, s board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		c.Nodes.Add(1)
		return 1
	}

	var sum atomic.Uint64
	var wg sync.WaitGroup
	for _, mv := range b.AllMoves(s) {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := expand(b, s, d, mv, c, runPerftParallel)
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv, child)
			}
			sum.Add(child)
		}()
	}
	wg.Wait()
	return sum.Load()
}

// expand counts the subtree below mv. At the last ply the move is tallied in place
// instead of being applied.
func expand(b *board.Board, s board.Side, d int, mv board.Move, c *Counters, next perftFunc) uint64 {
	if d == 1 {
		c.Nodes.Add(1)
		tally(b, mv, c)
		return 1
	}
	bb := b.Clone()
	if err := bb.MakeMove(mv); err != nil {
		return 0
	}
	return next(bb, s.Opposite(), d-1, false, false, nil, c)
}

func tally(b *board.Board, mv board.Move, c *Counters) {
	t := mv.Type
	if t.Kind == board.MoveKindPieceInCarrier {
		for t.Kind == board.MoveKindPieceInCarrier && t.Inner != nil {
			t = *t.Inner
		}
		if t.Kind != board.MoveKindPhaseShift {
			c.Exit.Add(1)
		}
	}
	switch t.Kind {
	case board.MoveKindMoveTo:
		mover := b.PieceAt(mv.From)
		if target := b.PieceAt(t.Target); target != nil && mover != nil && target.Side() != mover.Side() {
			c.Capture.Add(1)
		}
	case board.MoveKindMoveIntoCarrier:
		c.Board.Add(1)
	case board.MoveKindPhaseShift:
		c.Phase.Add(1)
	}
}
