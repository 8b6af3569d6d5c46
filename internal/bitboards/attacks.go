package bitboards

import (
	. "github.com/cricklet/chesscore/internal/helpers"
)

func generateJumpAttacks(dirs []Dir) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		pieceBoard := SingleBitboard(i)
		for _, dir := range dirs {
			result[i] |= Step(pieceBoard, dir)
		}
	}
	return result
}

func generatePawnAttacks() [2][64]Bitboard {
	result := [2][64]Bitboard{}
	for _, player := range []Player{White, Black} {
		result[player] = generateJumpAttacks(PawnCaptureDirs[player][:])
	}
	return result
}

// generateBetween fills squares strictly between two aligned squares. Pairs
// that share no line map to zero.
func generateBetween() *[64][64]Bitboard {
	result := [64][64]Bitboard{}
	for from := 0; from < 64; from++ {
		for _, dir := range KingDirs {
			ray := Bitboard(0)
			current := SingleBitboard(from)
			for {
				current = Step(current, dir)
				if current == 0 {
					break
				}
				to := current.FirstIndexOfOne()
				result[from][to] = ray
				ray |= current
			}
		}
	}
	return &result
}
