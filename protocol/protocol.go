// Package protocol implements a line-oriented text interface to the board and the
// engine, modelled on UCI.
package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/bench"
	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/engine"
	"github.com/daystram/brainrot/position"
)

var (
	EngineName   = "Brainrot"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		movetime:      engine.DefaultMovetime,
		hashTableSize: engine.DefaultHashTableSize,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	movetime      time.Duration
	hashTableSize uint64
	parallelPerft bool
}

// Interface holds the session state: the current board, the side to move and the
// last listed moves.
type Interface struct {
	in     io.Reader
	out    io.Writer
	outMu  sync.Mutex
	logger *zap.Logger

	board   *board.Board
	side    board.Side
	listed  []board.Move
	engine  *engine.Engine
	options options

	engineRunning atomic.Bool
	engineCancel  context.CancelFunc
	engineWG      sync.WaitGroup
}

type Option func(*Interface)

func WithLogger(l *zap.Logger) Option {
	return func(i *Interface) {
		i.logger = l
	}
}

func NewInterface(in io.Reader, out io.Writer, opts ...Option) *Interface {
	i := &Interface{
		in:      in,
		out:     out,
		logger:  zap.NewNop(),
		options: defaultOptions,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run reads commands until "quit" or the end of input. A running search is
// stopped before Run returns.
func (i *Interface) Run(ctx context.Context) error {
	i.reset(ctx)
	defer i.commandStop(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}
		i.logger.Debug("command", zap.String("line", cmd))

		switch args := strings.Fields(cmd); args[0] {
		case "hello":
			i.commandHello(ctx)
		case "newgame":
			i.reset(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "side":
			i.commandSide(ctx, args[1:])
		case "moves":
			i.commandMoves(ctx, args[1:])
		case "move":
			i.commandMove(ctx, strings.TrimSpace(strings.TrimPrefix(cmd, "move")))
		case "d":
			i.commandDraw(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "quit":
			return nil
		default:
			i.println("unknown command:", args[0])
		}
	}
	return scanner.Err()
}

func (i *Interface) commandHello(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option Movetime type spin default %d min 100 max 3600000", defaultOptions.movetime.Milliseconds()))
	i.println(fmt.Sprintf("option Hash type spin default %d min 0 max 16777216", defaultOptions.hashTableSize))
	i.println(fmt.Sprintf("option ParallelPerft type check default %v", defaultOptions.parallelPerft))
	i.println("hellook")
}

// commandReady answers once any running search has reported its move.
func (i *Interface) commandReady(_ context.Context) {
	i.engineWG.Wait()
	if i.board != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
	case "movetime":
		value, err := strconv.ParseUint(valueStr, 10, 64)
		if err != nil || value < 100 || value > 3600000 {
			return
		}
		i.options.movetime = time.Duration(value) * time.Millisecond
	case "hash":
		value, err := strconv.ParseUint(valueStr, 10, 64)
		if err != nil || value > 1<<24 {
			return
		}
		i.options.hashTableSize = value
		i.engine = i.newEngine()
	case "parallelperft":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.parallelPerft = value
	}
}

// commandPosition replaces the board. "position empty" clears it; anything else is
// decoded as notation.
func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.engineRunning.Load() || len(args) == 0 {
		return
	}

	text := board.EmptyNotation
	if args[0] != "empty" {
		text = strings.Join(args, " ")
	}
	i.board = board.Decode(text)
	i.listed = nil
}

func (i *Interface) commandSide(_ context.Context, args []string) {
	if len(args) == 0 {
		i.println("side", strings.ToLower(i.side.String()))
		return
	}
	s, err := board.ParseSide(args[0])
	if err != nil {
		i.println("error:", err)
		return
	}
	i.side = s
	i.listed = nil
}

// commandMoves lists the moves of the side to move, or of the piece on the given
// square, numbered for "move <n>".
func (i *Interface) commandMoves(_ context.Context, args []string) {
	if len(args) > 0 {
		c, err := position.NewCoordFromNotation(args[0])
		if err != nil {
			i.println("error:", err)
			return
		}
		i.listed = i.board.GetMoves(c)
	} else {
		i.listed = i.board.AllMoves(i.side)
	}
	width := len(strconv.Itoa(len(i.listed)))
	for n, mv := range i.listed {
		i.println(fmt.Sprintf("%*d: %s", width, n+1, mv))
	}
	i.println(fmt.Sprintf("moves %d", len(i.listed)))
}

// commandMove applies either the n-th listed move or a JSON encoded move, then
// passes the turn.
func (i *Interface) commandMove(_ context.Context, arg string) {
	if i.engineRunning.Load() {
		return
	}
	var mv board.Move
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(i.listed) {
			i.println("error: no listed move", n)
			return
		}
		mv = i.listed[n-1]
	} else if err := json.Unmarshal([]byte(arg), &mv); err != nil {
		i.println("error:", err)
		return
	}

	if err := i.board.MakeMove(mv); err != nil {
		i.println("error:", err)
		return
	}
	i.side = i.side.Opposite()
	i.listed = nil
	i.println("position", board.Encode(i.board))
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Draw())
	i.println(board.Encode(i.board))
	i.println("side", strings.ToLower(i.side.String()))
}

// commandGo starts a search in the background, or runs perft with "go perft <depth>".
// Search limits are given as "depth <n>", "movetime <ms>" or "infinite".
func (i *Interface) commandGo(ctx context.Context, args []string) {
	if i.engineRunning.Load() {
		return
	}
	cfg := engine.SearchConfig{
		ClockConfig: engine.ClockConfig{Movetime: i.options.movetime},
		Debug:       i.options.debug,
	}
	for n := 0; n < len(args); n++ {
		switch args[n] {
		case "perft":
			if n+1 >= len(args) {
				return
			}
			depth, err := strconv.Atoi(args[n+1])
			if err != nil {
				return
			}
			i.perft(depth)
			return
		case "depth":
			if n+1 >= len(args) {
				return
			}
			depth, err := strconv.ParseUint(args[n+1], 10, 8)
			if err != nil {
				return
			}
			cfg.ClockConfig.Depth = uint8(depth)
			cfg.ClockConfig.Movetime = 0
			n++
		case "movetime":
			if n+1 >= len(args) {
				return
			}
			ms, err := strconv.ParseUint(args[n+1], 10, 64)
			if err != nil {
				return
			}
			cfg.ClockConfig.Movetime = time.Duration(ms) * time.Millisecond
			n++
		case "infinite":
			cfg.ClockConfig = engine.ClockConfig{}
		}
	}

	engineCtx, engineCancel := context.WithCancel(ctx)
	i.engineCancel = engineCancel
	i.engineRunning.Store(true)
	i.engineWG.Add(1)
	e, b, side := i.engine, i.board.Clone(), i.side
	go func() {
		defer i.engineWG.Done()
		defer i.engineRunning.Store(false)
		defer engineCancel()

		bestMove, err := e.Search(engineCtx, b, side, &cfg)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				i.logger.Warn("search failed", zap.Error(err))
			}
			i.println("bestmove none")
			return
		}
		data, err := json.Marshal(bestMove)
		if err != nil {
			i.logger.Warn("cannot encode move", zap.Error(err))
			i.println("bestmove none")
			return
		}
		i.println(fmt.Sprintf("bestmove %s", data))
	}()
}

func (i *Interface) perft(depth int) {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()

	if err := bench.Perft(depth, board.Encode(i.board), i.side, i.options.parallelPerft, true, out); err != nil {
		i.println("error:", err)
	}
	close(out)
	<-done
}

func (i *Interface) commandStop(_ context.Context) {
	if i.engineRunning.Load() && i.engineCancel != nil {
		i.engineCancel()
	}
	i.engineWG.Wait()
}

func (i *Interface) reset(ctx context.Context) {
	i.commandStop(ctx)
	i.commandPosition(ctx, []string{"empty"})
	i.side = board.SideWhite
	i.engine = i.newEngine()
}

func (i *Interface) newEngine() *engine.Engine {
	return engine.NewEngine(&engine.EngineConfig{
		HashTableSize: i.options.hashTableSize,
		Logger:        i.println,
	})
}

func (i *Interface) println(a ...any) {
	i.outMu.Lock()
	defer i.outMu.Unlock()
	_, _ = fmt.Fprintln(i.out, a...)
}
