package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/protocol"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")
	debug   = flag.Bool("debug", false, "enable debug logging")
	side    = flag.String("side", "white", "side to move")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenFrom = flag.String("movegen.from", "", "only list moves of the piece on this square, as file-rank")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	moveRun = flag.String("move", "", "apply a JSON encoded move and print the resulting position")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepCount = flag.Int("step.count", 100, "number of random plies in step mode")
	stepSeed  = flag.Int64("step.seed", 1, "random seed in step mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 3, "perft depth")
	perftParallel = flag.Bool("perft.parallel", true, "run perft in parallel")

	searchRun     = flag.Bool("search", false, "run search mode")
	searchSteps   = flag.Int("search.steps", 20, "number of plies to play in search mode")
	searchDepth   = flag.Int("search.depth", 0, "search max depth in search mode")
	searchTimeout = flag.Int("search.timeout", 0, "search timeout in seconds in search mode")

	svgOut = flag.String("svg", "", "write the position as SVG to this file")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	defer func() { _ = logger.Sync() }()
	board.SetLogger(logger)

	if *profile {
		runProfiler(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = realMain(ctx, logger, flag.Args())
	stop()
	if err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !debug
	return cfg.Build()
}

func runProfiler(logger *zap.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info(fmt.Sprintf("starting pprof endpoint: http://%s/debug/pprof", addr))
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(ctx context.Context, logger *zap.Logger, args []string) error {
	text := board.EmptyNotation
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}
	s, err := board.ParseSide(*side)
	if err != nil {
		return err
	}

	switch {
	case *movegenRun:
		return movegen(os.Stdout, text, s, *movegenFrom, *movegenDraw)
	case *moveRun != "":
		return move(os.Stdout, text, *moveRun)
	case *stepRun:
		return step(os.Stdout, text, s, *stepCount, *stepSeed)
	case *perftRun:
		return perft(os.Stdout, text, s, *perftDepth, *perftParallel)
	case *searchRun:
		return search(ctx, os.Stdout, text, s, *searchSteps, *searchDepth, time.Duration(*searchTimeout)*time.Second)
	case *svgOut != "":
		return writeSVG(*svgOut, text)
	}

	return protocol.NewInterface(os.Stdin, os.Stdout, protocol.WithLogger(logger)).Run(ctx)
}
