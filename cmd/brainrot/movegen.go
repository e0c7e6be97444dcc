package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/position"
)

func movegen(w io.Writer, text string, s board.Side, from string, draw bool) error {
	b := board.Decode(text)
	_, _ = fmt.Fprintln(w, "to move:", s)
	_, _ = fmt.Fprintln(w, b.Dump())
	_, _ = fmt.Fprintln(w, b.Draw())

	var mvs []board.Move
	if from != "" {
		c, err := position.NewCoordFromNotation(from)
		if err != nil {
			return fmt.Errorf("invalid square %q: %w", from, err)
		}
		mvs = b.GetMoves(c)
	} else {
		mvs = b.AllMoves(s)
	}
	dumpMoves(w, b, mvs)

	if draw {
		for _, mv := range mvs {
			bb := b.Clone()
			if err := bb.MakeMove(mv); err != nil {
				_, _ = fmt.Fprintf(w, "%s: %v\n", mv, err)
				continue
			}
			_, _ = fmt.Fprintln(w, mv)
			_, _ = fmt.Fprintln(w, bb.Draw())
			_, _ = fmt.Fprintln(w, board.Encode(bb))
		}
	}
	return nil
}

func dumpMoves(w io.Writer, b *board.Board, mvs []board.Move) {
	for i, mv := range mvs {
		sym := "?"
		if p := b.PieceAt(mv.From); p != nil {
			sym = p.Symbol()
		}
		_, _ = fmt.Fprintf(w, "option %*d: %s %s => %s\n", len(strconv.Itoa(len(mvs))), i+1, sym, mv.From, mv.Type)
	}
	_, _ = fmt.Fprintf(w, "total: %d\n", len(mvs))
}

// move applies a single JSON encoded move and prints the resulting notation.
func move(w io.Writer, text, raw string) error {
	var mv board.Move
	if err := json.Unmarshal([]byte(raw), &mv); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}
	b := board.Decode(text)
	if err := b.MakeMove(mv); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, board.Encode(b))
	return nil
}
