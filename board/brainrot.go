package board

import (
	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

// RecalcBrainrot clears every Brainrot tag and re-applies it around each Skibidi on
// the board. Carried Skibidis do not radiate.
func RecalcBrainrot(b *Board) {
	for rank := range Height {
		for file := range Width {
			b.grid[rank][file].Conditions.Unset(ConditionBrainrot)
		}
	}
	var tagged int
	for at, p := range b.AllPieces() {
		sk, ok := p.(*Skibidi)
		if !ok {
			continue
		}
		radius := sk.BrainrotRadius()
		for dr := -radius; dr <= radius; dr++ {
			for df := -radius; df <= radius; df++ {
				sq := b.square(at.Add(position.Direction{File: df, Rank: dr}))
				if sq == nil || (df == 0 && dr == 0) {
					continue
				}
				if !sq.Conditions.Has(ConditionBrainrot) {
					tagged++
				}
				sq.Conditions.Set(ConditionBrainrot)
			}
		}
	}
	log().Debug("brainrot recomputed", zap.Int("squares", tagged))
}
