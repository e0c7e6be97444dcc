// Package image renders boards as SVG documents.
package image

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/position"
)

const (
	SquareSize = 64

	labelMargin = 20
)

var (
	colorLight    = "#f0d9b5"
	colorDark     = "#b58863"
	colorFrozen   = "#a8d8f0"
	colorBrainrot = "#d8a8f0"
	colorTurret   = "#c9c27a"
	colorVent     = "#8a8a8a"
)

type options struct {
	labels bool
}

type Option func(*options)

// WithLabels draws file and rank indexes along the board edges.
func WithLabels() Option {
	return func(o *options) {
		o.labels = true
	}
}

// SVG writes b to w. Each square carries its full notation symbol as a title.
func SVG(w io.Writer, b *board.Board, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ew := &errWriter{w: w}
	offset := 0
	if o.labels {
		offset = labelMargin
	}
	size := board.Width*SquareSize + offset

	canvas := svg.New(ew)
	canvas.Start(size, board.Height*SquareSize+offset)
	canvas.Title(board.Encode(b))
	for rank := range board.Height {
		for file := range board.Width {
			c := position.NewCoord(file, rank)
			sq, err := b.SquareAt(c)
			if err != nil {
				return err
			}
			drawSquare(canvas, offset+file*SquareSize, rank*SquareSize, c, sq)
		}
	}
	if o.labels {
		for i := range board.Width {
			canvas.Text(offset+i*SquareSize+SquareSize/2, board.Height*SquareSize+labelMargin-5,
				fmt.Sprint(i), "text-anchor:middle;font-size:12px;font-family:monospace")
		}
		for i := range board.Height {
			canvas.Text(labelMargin/2, i*SquareSize+SquareSize/2+4,
				fmt.Sprint(i), "text-anchor:middle;font-size:12px;font-family:monospace")
		}
	}
	canvas.End()
	return ew.err
}

func drawSquare(canvas *svg.SVG, x, y int, c position.Coord, sq board.Square) {
	canvas.Gid("sq-" + c.Notation())
	canvas.Rect(x, y, SquareSize, SquareSize, "fill:"+squareColor(c, sq))
	if sq.Piece == nil {
		canvas.Gend()
		return
	}
	sym := sq.Piece.Symbol()
	canvas.Title(sym)
	label, _, _ := strings.Cut(sym, "(")
	fill, stroke := "#ffffff", "#000000"
	if sq.Piece.Side() == board.SideBlack {
		fill, stroke = "#000000", "#ffffff"
	}
	fontSize := SquareSize / 2
	if len(label) > 1 {
		fontSize = SquareSize / (len(label) + 1)
	}
	canvas.Text(x+SquareSize/2, y+SquareSize/2+fontSize/3, label,
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-family:sans-serif;font-weight:bold;fill:%s;stroke:%s;stroke-width:1", fontSize, fill, stroke))
	if n := passengers(sq.Piece); n > 0 {
		canvas.Circle(x+SquareSize-10, y+10, 8, "fill:#ffcc00")
		canvas.Text(x+SquareSize-10, y+14, fmt.Sprint(n), "text-anchor:middle;font-size:11px;font-family:monospace")
	}
	canvas.Gend()
}

func squareColor(c position.Coord, sq board.Square) string {
	switch {
	case sq.Conditions.Has(board.ConditionFrozen):
		return colorFrozen
	case sq.Conditions.Has(board.ConditionBrainrot):
		return colorBrainrot
	case sq.Type == board.SquareTurret:
		return colorTurret
	case sq.Type == board.SquareVent:
		return colorVent
	case (c.File+c.Rank)%2 == 0:
		return colorLight
	default:
		return colorDark
	}
}

// passengers counts the pieces a carrier or goblin is holding.
func passengers(p board.Piece) int {
	switch pp := p.(type) {
	case *board.Goblin:
		if pp.Cargo != nil {
			return 1
		}
	case board.Carrier:
		return len(pp.Passengers())
	}
	return 0
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
