package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/daystram/brainrot/board"
)

// step plays random moves for both sides, printing every position, and reports
// the average time spent generating and applying moves.
func step(w io.Writer, text string, s board.Side, count int, seed int64) error {
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
	)
	b := board.Decode(text)
	r := rand.New(rand.NewSource(seed))

	for ply := 0; ply < count; ply++ {
		t1 := time.Now()
		mvs := b.AllMoves(s)
		t2 := time.Now()
		timesGenerateMoves = append(timesGenerateMoves, t2.Sub(t1))
		if len(mvs) == 0 {
			_, _ = fmt.Fprintf(w, "\n%s has no moves\n", s)
			break
		}
		mv := mvs[r.Intn(len(mvs))]

		t1 = time.Now()
		err := b.MakeMove(mv)
		t2 = time.Now()
		timesApply = append(timesApply, t2.Sub(t1))
		if err != nil {
			return fmt.Errorf("ply %d: %w", ply+1, err)
		}

		_, _ = fmt.Fprintf(w, "\n===== [#%d] %s: %s\n", ply+1, s, mv)
		_, _ = fmt.Fprintln(w, b.Draw())
		_, _ = fmt.Fprintln(w, board.Encode(b))
		s = s.Opposite()
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var sum time.Duration
		for _, d := range ds {
			sum += d
		}
		return sum / time.Duration(len(ds))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "genmv:", avg(timesGenerateMoves))
	_, _ = fmt.Fprintln(w, "apply:", avg(timesApply))
	return nil
}
