package bitboards

import (
	"sync"
	"time"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/rs/zerolog/log"
)

// Tables holds every precomputed attack lookup. It is immutable once built
// and safe to share between goroutines.
type Tables struct {
	pawnAttacks   [2][64]Bitboard
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	between       *[64][64]Bitboard

	rook   [64]MagicTable
	bishop [64]MagicTable
}

var (
	_tablesOnce sync.Once
	_tables     *Tables
)

// GetTables builds the process-wide tables on first use. A magic collision
// here means the literal magics are broken, so it panics.
func GetTables() *Tables {
	_tablesOnce.Do(func() {
		tables, err := BuildTables()
		if !IsNil(err) {
			panic(err.String())
		}
		_tables = tables
	})
	return _tables
}

func BuildTables() (*Tables, Error) {
	return BuildTablesWithMagics(&RookBestMagics, &BishopBestMagics)
}

func BuildTablesWithMagics(rookMagics *[64]MagicValue, bishopMagics *[64]MagicValue) (*Tables, Error) {
	start := time.Now()

	result := &Tables{
		pawnAttacks:   generatePawnAttacks(),
		knightAttacks: generateJumpAttacks(KnightDirs),
		kingAttacks:   generateJumpAttacks(KingDirs),
		between:       generateBetween(),
	}

	var err Error
	result.rook, err = generateMagicTables(RookDirs, rookMagics)
	if !IsNil(err) {
		return nil, Join(Errorf("rook tables"), err)
	}
	result.bishop, err = generateMagicTables(BishopDirs, bishopMagics)
	if !IsNil(err) {
		return nil, Join(Errorf("bishop tables"), err)
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("built attack tables")
	return result, NilError
}

func (t *Tables) PawnAttacks(player Player, index int) Bitboard {
	return t.pawnAttacks[player][index]
}

func (t *Tables) KnightAttacks(index int) Bitboard {
	return t.knightAttacks[index]
}

func (t *Tables) KingAttacks(index int) Bitboard {
	return t.kingAttacks[index]
}

func (t *Tables) RookAttacks(index int, occupancy Bitboard) Bitboard {
	return t.rook[index].Lookup(occupancy)
}

func (t *Tables) BishopAttacks(index int, occupancy Bitboard) Bitboard {
	return t.bishop[index].Lookup(occupancy)
}

func (t *Tables) QueenAttacks(index int, occupancy Bitboard) Bitboard {
	return t.rook[index].Lookup(occupancy) | t.bishop[index].Lookup(occupancy)
}

// Between is the squares strictly between from and to when they share a
// rank, file or diagonal, and zero otherwise.
func (t *Tables) Between(from int, to int) Bitboard {
	return t.between[from][to]
}

// Attacks is the pseudo-attack set of a piece on index. Pawns attack
// diagonally only.
func (t *Tables) Attacks(player Player, pieceType PieceType, index int, occupancy Bitboard) Bitboard {
	switch pieceType {
	case Pawn:
		return t.pawnAttacks[player][index]
	case Knight:
		return t.knightAttacks[index]
	case Bishop:
		return t.BishopAttacks(index, occupancy)
	case Rook:
		return t.RookAttacks(index, occupancy)
	case Queen:
		return t.QueenAttacks(index, occupancy)
	case King:
		return t.kingAttacks[index]
	}
	panic("invalid piece type " + pieceType.String())
}
