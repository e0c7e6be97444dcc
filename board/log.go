package board

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger used by the codec and the effects engine. A nil
// logger silences output. It returns the previous logger.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return logger.Swap(l)
}

func log() *zap.Logger {
	return logger.Load()
}

func coordField(key string, c position.Coord) zap.Field {
	return zap.String(key, c.Notation())
}
