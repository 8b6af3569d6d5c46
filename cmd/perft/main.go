package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cricklet/chesscore/internal/board"
	"github.com/cricklet/chesscore/internal/generator"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/cricklet/chesscore/internal/perft"
	"github.com/cricklet/chesscore/internal/zobrist"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	Fen        string
	Depth      int
	Divide     bool
	Workers    int
	Moves      []string
	Hash       bool
	Validate   bool
	LogLevel   string
	PrettyLog  bool
	CPUProfile string
}

func loadConfig(args []string) (config, Error) {
	fs := pflag.NewFlagSet("perft", pflag.ContinueOnError)
	fs.String("fen", board.StartingFen, "position to count from")
	fs.Int("depth", 4, "plies to search")
	fs.Bool("divide", false, "print the node count below each root move, after any --moves")
	fs.Int("workers", 1, "goroutines used by divide")
	fs.StringSlice("moves", nil, "UCI moves played from the position before counting")
	fs.Bool("hash", false, "cache subtree counts by position hash, one table per divide worker")
	fs.Bool("validate", false, "check board consistency after applying moves")
	fs.String("log-level", "info", "zerolog level")
	fs.Bool("pretty-log", true, "human readable logs")
	fs.String("cpuprofile", "", "directory for a cpu profile")

	if err := fs.Parse(args); err != nil {
		return config{}, Wrap(err)
	}

	v := viper.New()
	v.SetEnvPrefix("chesscore")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, Wrap(err)
	}

	c := config{
		Fen:        v.GetString("fen"),
		Depth:      v.GetInt("depth"),
		Divide:     v.GetBool("divide"),
		Workers:    v.GetInt("workers"),
		Moves:      v.GetStringSlice("moves"),
		Hash:       v.GetBool("hash"),
		Validate:   v.GetBool("validate"),
		LogLevel:   v.GetString("log-level"),
		PrettyLog:  v.GetBool("pretty-log"),
		CPUProfile: v.GetString("cpuprofile"),
	}
	if c.Depth < 0 {
		return c, Errorf("depth must not be negative, got %v", c.Depth)
	}
	return c, NilError
}

// position loads the configured FEN and plays the configured moves on it.
func position(c config) (*board.Board, Error) {
	b, err := board.FromFen(c.Fen)
	if err != nil {
		return nil, Wrap(err)
	}

	for _, s := range c.Moves {
		move, err := generator.MoveFromUCI(b, s)
		if !IsNil(err) {
			return nil, err
		}
		b.Make(move)
		if c.Validate {
			if err := b.Validate(); !IsNil(err) {
				return nil, Join(Errorf("board invalid after %v", s), err)
			}
		}
	}
	return b, NilError
}

func run(ctx context.Context, c config) Error {
	b, err := position(c)
	if !IsNil(err) {
		return err
	}
	log.Info().Str("turn", b.Turn().String()).Int("ply", b.Ply()).Int("depth", c.Depth).Msg("counting")

	start := time.Now()
	var total uint64

	tableSize := 0
	if c.Hash {
		tableSize = zobrist.DefaultTranspositionTableSize
	}

	if c.Divide {
		legal := generator.GetMoveList()
		generator.LegalMoves(b, legal)
		bar := CreateProgressBar(legal.Len(), "root moves")
		generator.ReleaseMoveList(legal)

		divide, divideErr := perft.ParallelDivideFrom(ctx, b, c.Depth, perft.DivideOptions{
			Workers:   c.Workers,
			TableSize: tableSize,
			OnProgress: func(int, int) {
				bar.Add(1)
			},
		})
		bar.Close()
		if divideErr != nil {
			return Wrap(divideErr)
		}

		for _, move := range perft.SortedMoves(divide) {
			fmt.Printf("%v: %v\n", move.UCI(), divide[move])
		}
		total = perft.Total(divide)
	} else if c.Hash {
		table := zobrist.NewTranspositionTable(tableSize)
		total = perft.CountWithTable(b, c.Depth, table)
		log.Debug().Str("table", table.Stats()).Msg("hash")
	} else {
		total = perft.Count(b, c.Depth)
	}

	log.Debug().Str("move lists", generator.MoveListPoolStats().String()).Msg("pool")

	elapsed := time.Since(start)
	nps := float64(total) / max(elapsed.Seconds(), 1e-9)
	fmt.Printf("\nnodes: %v\n", total)
	log.Info().
		Str("nodes", humanize.Comma(int64(total))).
		Dur("elapsed", elapsed).
		Str("nps", humanize.Comma(int64(nps))).
		Msg("done")

	return NilError
}

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the exit code so deferred cleanup, including writing the
// cpu profile, happens before the process exits.
func runMain(args []string) int {
	c, err := loadConfig(args)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	NewLogger(c.LogLevel, c.PrettyLog)

	if c.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(c.CPUProfile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); !IsNil(err) {
		log.Error().Err(err).Msg("perft failed")
		log.Debug().Msg(err.String())
		return 1
	}
	return 0
}
