package position

// Direction is a signed (file, rank) step.
type Direction struct {
	File, Rank int
}

var (
	// DirectionsStraight are the orthogonal rays.
	DirectionsStraight = []Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	// DirectionsDiagonal are the diagonal rays.
	DirectionsDiagonal = []Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	// DirectionsOmni are all eight king directions.
	DirectionsOmni = []Direction{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	// JumpsKnight are the knight offsets.
	JumpsKnight = []Direction{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}
)
