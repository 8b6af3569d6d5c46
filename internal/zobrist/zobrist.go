package zobrist

import (
	"math/rand"

	"github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
)

var ZobristPieceAtSquare [2][NumPieceTypes][64]uint64
var ZobristSideToMove uint64

// one key per castling right bit (white kingside, white queenside, black
// kingside, black queenside)
var ZobristCastlingRights [4]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for i := 0; i < 4; i++ {
		ZobristCastlingRights[i] = r.Uint64()
	}
	for i := 0; i < 8; i++ {
		ZobristEnPassant[i] = r.Uint64()
	}
	for player := 0; player < 2; player++ {
		for piece := 0; piece < NumPieceTypes; piece++ {
			for boardIndex := 0; boardIndex < 64; boardIndex++ {
				ZobristPieceAtSquare[player][piece][boardIndex] = r.Uint64()
			}
		}
	}
}

func PieceKey(player Player, pieceType PieceType, index int) uint64 {
	return ZobristPieceAtSquare[player][pieceType][index]
}

// StateKey hashes the irreversible state that matters for repetition:
// castling rights (a 4-bit set) and the en-passant file if any.
func StateKey(castlingRights uint8, enPassantAvailable bool, enPassantFile int) uint64 {
	hash := uint64(0)
	for i := 0; i < 4; i++ {
		if castlingRights&(1<<i) != 0 {
			hash ^= ZobristCastlingRights[i]
		}
	}
	if enPassantAvailable {
		hash ^= ZobristEnPassant[enPassantFile]
	}
	return hash
}

func HashForBoardPosition(
	bitboard *bitboards.BitBoard,
	player Player,
	castlingRights uint8,
	enPassantAvailable bool,
	enPassantFile int,
) uint64 {
	hash := uint64(0)
	for _, p := range []Player{White, Black} {
		for _, pieceType := range AllPieceTypes {
			bitboard.Piece[p][pieceType].EachIndexOfOneCallback(func(index int) {
				hash ^= PieceKey(p, pieceType, index)
			})
		}
	}
	if player == Black {
		hash ^= ZobristSideToMove
	}
	hash ^= StateKey(castlingRights, enPassantAvailable, enPassantFile)

	return hash
}
