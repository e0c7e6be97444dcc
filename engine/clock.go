package engine

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	DefaultMovetime = 10 * time.Second

	MaxMovetime       = 24 * time.Hour
	MaxDepth    uint8 = 64

	minMovetime    = 50 * time.Millisecond
	movetimeMargin = 10 * time.Millisecond
)

type ClockMode uint8

const (
	ClockModeInfinite ClockMode = iota
	ClockModeMovetime
	ClockModeDepth
)

func (m ClockMode) String() string {
	switch m {
	case ClockModeInfinite:
		return "infinite"
	case ClockModeMovetime:
		return "movetime"
	case ClockModeDepth:
		return "depth"
	default:
		return ""
	}
}

// Clock bounds a search by wall time, depth or the caller's context.
type Clock struct {
	mode           ClockMode
	targetMovetime time.Duration
	targetDepth    uint8

	done   *atomic.Bool
	cancel context.CancelFunc
}

func NewClock() *Clock {
	c := &Clock{done: new(atomic.Bool)}
	c.done.Store(true)
	return c
}

type ClockConfig struct {
	Movetime time.Duration
	Depth    uint8
}

func (c *Clock) Start(ctx context.Context, cfg *ClockConfig) {
	c.Stop()
	c.targetMovetime = MaxMovetime
	c.targetDepth = MaxDepth

	switch {
	case cfg.Movetime != 0:
		c.mode = ClockModeMovetime
		c.targetMovetime = max(cfg.Movetime, minMovetime)
		if cfg.Depth != 0 {
			c.targetDepth = min(cfg.Depth, MaxDepth)
		}
	case cfg.Depth != 0:
		c.mode = ClockModeDepth
		c.targetDepth = min(cfg.Depth, MaxDepth)
	default:
		c.mode = ClockModeInfinite
	}

	if ctx.Err() != nil {
		return
	}
	ctx, c.cancel = context.WithTimeout(ctx, c.targetMovetime-movetimeMargin)
	done := new(atomic.Bool)
	c.done = done
	go func() {
		<-ctx.Done()
		done.Store(true)
	}()
}

func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.done.Store(true)
}

func (c *Clock) Mode() ClockMode {
	return c.mode
}

func (c *Clock) DoneByMovetime() bool {
	return c.done.Load()
}

func (c *Clock) DoneByDepth(depth uint8) bool {
	return depth > c.targetDepth
}
