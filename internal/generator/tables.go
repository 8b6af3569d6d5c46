package generator

import (
	. "github.com/cricklet/chesscore/internal/bitboards"
	"github.com/cricklet/chesscore/internal/board"
	. "github.com/cricklet/chesscore/internal/helpers"
)

// BoardTables is the per-position legality data. It is only valid for the
// position it was computed from.
type BoardTables struct {
	// squares the side not to move attacks, seeing through our king
	Threats Bitboard
	// enemy pieces giving check
	Checks Bitboard
	// non-king moves must land here
	CheckBlocks Bitboard

	// one ray per pinning slider, from next to the king up to and including
	// the pinner
	Pins    [8]Bitboard
	NumPins int
	Pinned  Bitboard
}

// PinMask is the set of squares the piece on index may move to without
// exposing the king, ignoring check.
func (t *BoardTables) PinMask(index int) Bitboard {
	if !t.Pinned.IsSet(index) {
		return AllOnes
	}
	for i := 0; i < t.NumPins; i++ {
		if t.Pins[i].IsSet(index) {
			return t.Pins[i]
		}
	}
	return AllOnes
}

func pawnSmear(pawns Bitboard, player Player) Bitboard {
	return Step(pawns, PawnCaptureDirs[player][0]) | Step(pawns, PawnCaptureDirs[player][1])
}

func computeThreats(tables *Tables, b *board.Board, us Player) Bitboard {
	them := us.Other()
	bb := b.Bitboards()
	enemy := &bb.Piece[them]

	occupancy := bb.Occupancy &^ bb.Piece[us][King]

	threats := pawnSmear(enemy[Pawn], them)
	for pieceType := Knight; pieceType <= King; pieceType++ {
		pieces := enemy[pieceType]
		for pieces != 0 {
			var index int
			index, pieces = pieces.NextIndexOfOne()
			threats |= tables.Attacks(them, pieceType, index, occupancy)
		}
	}
	return threats
}

func computeChecks(tables *Tables, b *board.Board, us Player, kingIndex int) Bitboard {
	bb := b.Bitboards()
	enemy := &bb.Piece[us.Other()]

	// a pawn attacks our king from exactly the squares our own pawn would
	// attack from the king's square
	return tables.PawnAttacks(us, kingIndex)&enemy[Pawn] |
		tables.KnightAttacks(kingIndex)&enemy[Knight] |
		tables.BishopAttacks(kingIndex, bb.Occupancy)&(enemy[Bishop]|enemy[Queen]) |
		tables.RookAttacks(kingIndex, bb.Occupancy)&(enemy[Rook]|enemy[Queen])
}

func (t *BoardTables) addPins(
	tables *Tables,
	kingIndex int,
	attacks func(int, Bitboard) Bitboard,
	occupancy Bitboard,
	own Bitboard,
	sliders Bitboard,
) {
	seen := attacks(kingIndex, occupancy)
	blockers := own & seen
	xray := seen ^ attacks(kingIndex, occupancy^blockers)

	pinners := xray & sliders
	for pinners != 0 {
		var pinner int
		pinner, pinners = pinners.NextIndexOfOne()

		ray := tables.Between(kingIndex, pinner) | SingleBitboard(pinner)
		t.Pins[t.NumPins] = ray
		t.NumPins++
		t.Pinned |= ray
	}
}

// ComputeBoardTables derives threats, checks, check blocks and pins for the
// side to move.
func ComputeBoardTables(b *board.Board) BoardTables {
	tables := GetTables()
	us := b.Turn()
	bb := b.Bitboards()
	enemy := &bb.Piece[us.Other()]
	kingIndex := b.KingIndex(us)

	result := BoardTables{}
	result.Threats = computeThreats(tables, b, us)
	result.Checks = computeChecks(tables, b, us, kingIndex)

	switch OnesCount(result.Checks) {
	case 0:
		result.CheckBlocks = AllOnes
	case 1:
		result.CheckBlocks = result.Checks | tables.Between(kingIndex, result.Checks.FirstIndexOfOne())
	default:
		result.CheckBlocks = 0
	}

	result.addPins(tables, kingIndex, tables.RookAttacks, bb.Occupancy, bb.Color[us], enemy[Rook]|enemy[Queen])
	result.addPins(tables, kingIndex, tables.BishopAttacks, bb.Occupancy, bb.Color[us], enemy[Bishop]|enemy[Queen])

	return result
}
