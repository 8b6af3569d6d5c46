package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/chesscore/internal/helpers"
)

type Bitboard uint64

// BitBoard is the per-color / per-piece occupancy view of a position.
// Occupancy is always Color[White] | Color[Black].
type BitBoard struct {
	Color     [2]Bitboard
	Piece     [2][NumPieceTypes]Bitboard // indexed via PieceType
	Occupancy Bitboard
}

func (b *BitBoard) Set(index int, player Player, pieceType PieceType) {
	oneBitboard := SingleBitboard(index)

	b.Occupancy |= oneBitboard
	b.Color[player] |= oneBitboard
	b.Piece[player][pieceType] |= oneBitboard
}

func (b *BitBoard) Clear(index int, player Player, pieceType PieceType) {
	zeroBitboard := ^SingleBitboard(index)

	b.Occupancy &= zeroBitboard
	b.Color[player] &= zeroBitboard
	b.Piece[player][pieceType] &= zeroBitboard
}

// Swap exchanges the piece on index for another without touching Occupancy.
func (b *BitBoard) Swap(index int, player Player, pieceType PieceType, oldPlayer Player, oldPieceType PieceType) {
	oneBitboard := SingleBitboard(index)

	b.Color[oldPlayer] &= ^oneBitboard
	b.Piece[oldPlayer][oldPieceType] &= ^oneBitboard
	b.Color[player] |= oneBitboard
	b.Piece[player][pieceType] |= oneBitboard
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

// NextIndexOfOne pops the lowest set bit, returning its index and the rest.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := bits.TrailingZeros64(uint64(b))
	return index, b & (b - 1)
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NNE
	NNW
	SSE
	SSW
	ENE
	ESE
	WNW
	WSW

	NumDirs
)

var KnightDirs = []Dir{
	NNE,
	NNW,
	SSE,
	SSW,
	ENE,
	ESE,
	WNW,
	WSW,
}

var RookDirs = []Dir{
	N,
	S,
	E,
	W,
}

var BishopDirs = []Dir{
	NE,
	NW,
	SE,
	SW,
}

var KingDirs = []Dir{
	N,
	S,
	E,
	W,
	NE,
	NW,
	SE,
	SW,
}

// Pawn capture directions per player.
var PawnCaptureDirs = [2][2]Dir{
	{NE, NW},
	{SE, SW},
}

const (
	OffsetN int = 8
	OffsetS int = -8
	OffsetE int = 1
	OffsetW int = -1
)

var Offsets = [NumDirs]int{
	OffsetN,
	OffsetS,
	OffsetE,
	OffsetW,

	OffsetN + OffsetE,
	OffsetN + OffsetW,
	OffsetS + OffsetE,
	OffsetS + OffsetW,

	OffsetN + OffsetN + OffsetE,
	OffsetN + OffsetN + OffsetW,
	OffsetS + OffsetS + OffsetE,
	OffsetS + OffsetS + OffsetW,
	OffsetE + OffsetN + OffsetE,
	OffsetE + OffsetS + OffsetE,
	OffsetW + OffsetN + OffsetW,
	OffsetW + OffsetS + OffsetW,
}

var PawnPushOffsets = [2]int{
	OffsetN,
	OffsetS,
}

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

var Zeros = []int{0, 0, 0, 0, 0, 0, 0, 0}
var Ones = []int{1, 1, 1, 1, 1, 1, 1, 1}
var Sixes = []int{6, 6, 6, 6, 6, 6, 6, 6}
var Sevens = []int{7, 7, 7, 7, 7, 7, 7, 7}
var ZeroToSeven = []int{0, 1, 2, 3, 4, 5, 6, 7}

var (
	MaskN Bitboard = ZerosForRange(ZeroToSeven, Sevens)
	MaskS Bitboard = ZerosForRange(ZeroToSeven, Zeros)
	MaskE Bitboard = ZerosForRange(Sevens, ZeroToSeven)
	MaskW Bitboard = ZerosForRange(Zeros, ZeroToSeven)

	MaskNN Bitboard = ZerosForRange(ZeroToSeven, Sixes)
	MaskSS Bitboard = ZerosForRange(ZeroToSeven, Ones)
	MaskEE Bitboard = ZerosForRange(Sixes, ZeroToSeven)
	MaskWW Bitboard = ZerosForRange(Ones, ZeroToSeven)
)

// Pawns standing here have a double push available.
var PawnHomeRanks = [2]Bitboard{
	^ZerosForRange(ZeroToSeven, Ones),
	^ZerosForRange(ZeroToSeven, Sixes),
}

// Pawns standing here promote on their next move.
var PawnPrePromotionRanks = [2]Bitboard{
	PawnHomeRanks[Black],
	PawnHomeRanks[White],
}

// PreMoveMasks clears the squares from which a step in that direction would
// leave the board or wrap around to the other edge.
var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,

	MaskNN & MaskN & MaskE,
	MaskNN & MaskN & MaskW,
	MaskSS & MaskS & MaskE,
	MaskSS & MaskS & MaskW,
	MaskEE & MaskN & MaskE,
	MaskEE & MaskS & MaskE,
	MaskWW & MaskN & MaskW,
	MaskWW & MaskS & MaskW,
}

// Step moves every bit of b one step in dir, dropping bits that would wrap.
func Step(b Bitboard, dir Dir) Bitboard {
	return RotateTowardsIndex64(b&PreMoveMasks[dir], Offsets[dir])
}

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = ShiftTowardsIndex64(1, i)
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func ZerosForRange(fs []int, rs []int) Bitboard {
	if len(fs) != len(rs) {
		panic("slices have different length")
	}

	result := AllOnes
	for i := 0; i < len(fs); i++ {
		result &= ^SingleBitboard(IndexFromFileRank(FileRank{File: File(fs[i]), Rank: Rank(rs[i])}))
	}
	return result
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, BoardIndexFromString),
		0,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

func ShiftTowardIndex0(b Bitboard, n int) Bitboard {
	return b >> n
}

func ShiftTowardsIndex64(b Bitboard, n int) Bitboard {
	return b << n
}

func RotateTowardsIndex64(b Bitboard, n int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), n))
}

// String draws rank 8 first with a1 in the bottom-left corner.
func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		r := uint8(ShiftTowardIndex0(b, rank*8))

		// mirror the bits so we're printing in a natural order
		// (10000000 for the lowest file instead of 00000001)
		ranks[7-rank] = fmt.Sprintf("%08b", ReverseBits(r))
	}

	return strings.Join(ranks[0:], "\n")
}
