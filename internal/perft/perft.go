package perft

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/cricklet/chesscore/internal/board"
	"github.com/cricklet/chesscore/internal/generator"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/cricklet/chesscore/internal/moves"
	"github.com/cricklet/chesscore/internal/zobrist"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Count is the number of leaf nodes depth plies below b.
func Count(b *board.Board, depth int) uint64 {
	return count(context.Background(), b, depth, nil)
}

// CountWithTable caches subtree sizes by position hash. The table must not be
// shared between goroutines.
func CountWithTable(b *board.Board, depth int, table *zobrist.TranspositionTable) uint64 {
	return count(context.Background(), b, depth, table)
}

// only poll the context where a subtree is large enough to matter
const _cancelCheckDepth = 3

func count(ctx context.Context, b *board.Board, depth int, table *zobrist.TranspositionTable) uint64 {
	if depth == 0 {
		return 1
	}
	if depth >= _cancelCheckDepth && ctx.Err() != nil {
		return 0
	}
	if table != nil && depth > 1 {
		if cached, ok := table.Get(b.Hash(), depth); ok {
			return cached.Count
		}
	}

	list := generator.GetMoveList()
	defer generator.ReleaseMoveList(list)
	generator.LegalMoves(b, list)

	if depth == 1 {
		return uint64(list.Len())
	}

	total := uint64(0)
	for _, move := range list.Slice() {
		b.Make(move)
		total += count(ctx, b, depth-1, table)
		b.Unmake()
	}

	if table != nil {
		table.Put(b.Hash(), depth, total)
	}
	return total
}

// Divide counts leaves below each legal root move.
func Divide(b *board.Board, depth int) map[moves.Move]uint64 {
	result := map[moves.Move]uint64{}
	if depth < 1 {
		return result
	}

	list := moves.NewMoveList()
	generator.LegalMoves(b, list)
	for _, move := range list.Slice() {
		b.Make(move)
		result[move] = Count(b, depth-1)
		b.Unmake()
	}
	return result
}

type DivideOptions struct {
	Workers int
	// TableSize, when positive, gives each worker a transposition table of
	// that many entries.
	TableSize int
	// OnProgress is called after each root move completes. It may be called
	// concurrently.
	OnProgress func(done int, total int)
}

// ParallelDivide loads fen and runs ParallelDivideFrom on it.
func ParallelDivide(ctx context.Context, fen string, depth int, opts DivideOptions) (map[moves.Move]uint64, error) {
	root, err := board.FromFen(fen)
	if err != nil {
		return nil, err
	}
	return ParallelDivideFrom(ctx, root, depth, opts)
}

// ParallelDivideFrom is Divide with the root moves spread over opts.Workers
// goroutines. Each root move is counted on its own clone of root, which is
// never modified.
func ParallelDivideFrom(ctx context.Context, root *board.Board, depth int, opts DivideOptions) (map[moves.Move]uint64, error) {
	if depth < 1 {
		return map[moves.Move]uint64{}, nil
	}

	list := moves.NewMoveList()
	generator.LegalMoves(root, list)
	rootMoves := append([]moves.Move{}, list.Slice()...)

	counts := make([]uint64, len(rootMoves))
	finished := atomic.Int64{}

	// at most one table per running worker; entries stay valid across root moves
	getTable, releaseTable, _ := CreatePool(
		func() zobrist.TranspositionTable {
			return *zobrist.NewTranspositionTable(opts.TableSize)
		},
		func(*zobrist.TranspositionTable) {},
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, opts.Workers))

	for i, move := range rootMoves {
		i, move := i, move
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			var table *zobrist.TranspositionTable
			if opts.TableSize > 0 {
				table = getTable()
				defer releaseTable(table)
			}

			b := root.Clone()
			b.Make(move)
			counts[i] = count(groupCtx, b, depth-1, table)

			if err := groupCtx.Err(); err != nil {
				return err
			}
			n := finished.Add(1)
			if opts.OnProgress != nil {
				opts.OnProgress(int(n), len(rootMoves))
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, Wrap(err)
	}

	log.Debug().Int("moves", len(rootMoves)).Int("depth", depth).Msg("divide finished")

	result := make(map[moves.Move]uint64, len(rootMoves))
	for i, move := range rootMoves {
		result[move] = counts[i]
	}
	return result, nil
}

func Total(divide map[moves.Move]uint64) uint64 {
	return lo.Sum(lo.Values(divide))
}

// SortedMoves orders the root moves of a divide by their UCI string.
func SortedMoves(divide map[moves.Move]uint64) []moves.Move {
	result := lo.Keys(divide)
	sort.Slice(result, func(i, j int) bool {
		return result[i].UCI() < result[j].UCI()
	})
	return result
}
