package main

import (
	"os"

	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/image"
)

func writeSVG(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := image.SVG(f, board.Decode(text), image.WithLabels()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
