package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/engine"
)

// search lets the engine play s against a random opponent for the given number of
// plies.
func search(ctx context.Context, w io.Writer, text string, s board.Side, steps, maxDepth int, timeout time.Duration) error {
	b := board.Decode(text)
	e := engine.NewEngine(&engine.EngineConfig{
		Logger: func(a ...any) { _, _ = fmt.Fprintln(w, a...) },
	})
	cfg := &engine.SearchConfig{
		ClockConfig: engine.ClockConfig{
			Depth:    uint8(min(max(maxDepth, 0), int(engine.MaxDepth))),
			Movetime: timeout,
		},
	}
	if cfg.ClockConfig.Depth == 0 && cfg.ClockConfig.Movetime == 0 {
		cfg.ClockConfig.Movetime = engine.DefaultMovetime
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	_, _ = fmt.Fprintln(w, b.Draw())
	_, _ = fmt.Fprintln(w, board.Encode(b))

	playingSide, turn := s, s
	var history []board.Move
	for ply := 1; ply <= steps; ply++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var mv board.Move
		if turn == playingSide {
			var err error
			mv, err = e.Search(ctx, b, turn, cfg)
			if err != nil {
				return err
			}
		} else {
			mvs := b.AllMoves(turn)
			if len(mvs) == 0 {
				_, _ = fmt.Fprintf(w, "\n%s has no moves\n", turn)
				break
			}
			mv = mvs[r.Intn(len(mvs))]
		}
		if err := b.MakeMove(mv); err != nil {
			return err
		}
		history = append(history, mv)

		_, _ = fmt.Fprintf(w, "\n>>> [#%d] %s: %s\n", ply, turn, mv)
		_, _ = fmt.Fprintln(w, board.Encode(b))
		_, _ = fmt.Fprintln(w, b.Draw())
		turn = turn.Opposite()
	}

	_, _ = fmt.Fprintln(w, "=============== game ended")
	_, _ = fmt.Fprintln(w, board.Encode(b))
	dumpHistory(w, history)
	return nil
}

func dumpHistory(w io.Writer, mvs []board.Move) {
	for i, mv := range mvs {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, mv)
	}
}
