package main

import (
	"fmt"
	"io"

	"github.com/daystram/brainrot/bench"
	"github.com/daystram/brainrot/board"
)

func perft(w io.Writer, text string, s board.Side, depth int, parallel bool) error {
	_, _ = fmt.Fprintf(w, "============ perft(%d) parallel=%v\n", depth, parallel)

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range out {
			_, _ = fmt.Fprintln(w, line)
		}
	}()

	err := bench.Perft(depth, text, s, parallel, true, out)
	close(out)
	<-done
	return err
}
