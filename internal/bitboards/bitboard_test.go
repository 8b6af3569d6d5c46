package bitboards

import (
	"math/rand"
	"strings"
	"testing"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleBoards(t *testing.T) {
	assert.Equal(t, SingleBitboard(63).String(), strings.Join([]string{
		"00000001",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	}, "\n"))
	assert.Equal(t, SingleBitboard(0).String(), strings.Join([]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"10000000",
	}, "\n"))
	assert.Equal(t, SingleBitboard(BoardIndexFromString("h1")), SingleBitboard(7))
	assert.Equal(t, SingleBitboard(BoardIndexFromString("a8")), SingleBitboard(56))
}

func TestDirMasks(t *testing.T) {
	assert.Equal(t, PreMoveMasks[N].String(), strings.Join([]string{
		"00000000",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
	}, "\n"))
	assert.Equal(t, PreMoveMasks[SSW].String(), strings.Join([]string{
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"00000000",
		"00000000",
	}, "\n"))
}

func TestNextIndexOfOne(t *testing.T) {
	b := BitboardWithAllLocationsSet([]string{"c2", "a1", "h8"})

	result := []string{}
	for b != 0 {
		var index int
		index, b = b.NextIndexOfOne()
		result = append(result, StringFromBoardIndex(index))
	}
	assert.Equal(t, []string{"a1", "c2", "h8"}, result)
}

func TestStepDoesNotWrap(t *testing.T) {
	assert.Equal(t, Bitboard(0), Step(SingleBitboard(BoardIndexFromString("h1")), E))
	assert.Equal(t, Bitboard(0), Step(SingleBitboard(BoardIndexFromString("a4")), WNW))
	assert.Equal(t, Bitboard(0), Step(SingleBitboard(BoardIndexFromString("e8")), N))
	assert.Equal(t,
		SingleBitboard(BoardIndexFromString("b1")),
		Step(SingleBitboard(BoardIndexFromString("a1")), E))
}

func TestBoardSetClear(t *testing.T) {
	b := BitBoard{}
	b.Set(BoardIndexFromString("e4"), White, Pawn)
	b.Set(BoardIndexFromString("d5"), Black, Knight)
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e4", "d5"}), b.Occupancy)

	b.Swap(BoardIndexFromString("d5"), White, Pawn, Black, Knight)
	assert.Equal(t, Bitboard(0), b.Color[Black])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e4", "d5"}), b.Piece[White][Pawn])
	assert.Equal(t, b.Occupancy, b.Color[White])

	b.Clear(BoardIndexFromString("e4"), White, Pawn)
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d5"}), b.Occupancy)
}

func TestJumpAttackCounts(t *testing.T) {
	tables := GetTables()

	knights := 0
	kings := 0
	whitePawns := 0
	blackPawns := 0
	for i := 0; i < 64; i++ {
		knights += OnesCount(tables.KnightAttacks(i))
		kings += OnesCount(tables.KingAttacks(i))
		whitePawns += OnesCount(tables.PawnAttacks(White, i))
		blackPawns += OnesCount(tables.PawnAttacks(Black, i))
	}
	assert.Equal(t, 336, knights)
	assert.Equal(t, 420, kings)
	assert.Equal(t, 98, whitePawns)
	assert.Equal(t, 98, blackPawns)

	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"b3", "c2"}),
		tables.KnightAttacks(BoardIndexFromString("a1")))
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"g7", "g8", "h7"}),
		tables.KingAttacks(BoardIndexFromString("h8")))
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"b3"}),
		tables.PawnAttacks(White, BoardIndexFromString("a2")))
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"d6", "f6"}),
		tables.PawnAttacks(Black, BoardIndexFromString("e7")))
}

func TestBetween(t *testing.T) {
	tables := GetTables()
	between := func(a, b string) Bitboard {
		return tables.Between(BoardIndexFromString(a), BoardIndexFromString(b))
	}

	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b2", "c3", "d4", "e5", "f6", "g7"}), between("a1", "h8"))
	assert.Equal(t, between("a1", "h8"), between("h8", "a1"))
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e2", "e3", "e4", "e5", "e6", "e7"}), between("e1", "e8"))
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b1", "c1", "d1"}), between("e1", "a1"))
	assert.Equal(t, Bitboard(0), between("a1", "a2"))
	assert.Equal(t, Bitboard(0), between("a1", "b3"))
	assert.Equal(t, Bitboard(0), between("h1", "a2"))
}

func TestBlockerMasksExcludeEdges(t *testing.T) {
	tables := GetTables()

	assert.Equal(t, strings.Join([]string{
		"00000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"01111110",
	}, "\n"), tables.rook[0].OccupancyMask.String())

	assert.Equal(t, strings.Join([]string{
		"00000000",
		"01000000",
		"00100010",
		"00010100",
		"00000000",
		"00010100",
		"00100010",
		"00000000",
	}, "\n"), tables.bishop[BoardIndexFromString("e4")].OccupancyMask.String())

	assert.Equal(t, 12, OnesCount(tables.rook[0].OccupancyMask))
	assert.Equal(t, 6, OnesCount(tables.bishop[0].OccupancyMask))
}

func TestSlidingLookups(t *testing.T) {
	tables := GetTables()
	d4 := BoardIndexFromString("d4")

	assert.Equal(t, 14, OnesCount(tables.RookAttacks(0, 0)))
	assert.Equal(t, 13, OnesCount(tables.BishopAttacks(d4, 0)))
	assert.Equal(t, 27, OnesCount(tables.QueenAttacks(d4, 0)))

	blockers := BitboardWithAllLocationsSet([]string{"d6", "b4", "d2", "g4", "a1"})
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"d5", "d6", "c4", "b4", "e4", "f4", "g4", "d3", "d2"}),
		tables.RookAttacks(d4, blockers),
		tables.RookAttacks(d4, blockers).String())

	blockers = BitboardWithAllLocationsSet([]string{"f6", "b2", "e3"})
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"e5", "f6", "c5", "b6", "a7", "c3", "b2", "e3"}),
		tables.BishopAttacks(d4, blockers),
		tables.BishopAttacks(d4, blockers).String())
}

func TestMagicTablesMatchRayTracing(t *testing.T) {
	tables := GetTables()

	// every subset of every mask
	for i := 0; i < 64; i++ {
		for _, m := range generateMoveBoards(i, tables.rook[i].OccupancyMask, RookDirs) {
			require.Equal(t, m.moveBoard, tables.RookAttacks(i, m.blockerBoard), StringFromBoardIndex(i))
		}
		for _, m := range generateMoveBoards(i, tables.bishop[i].OccupancyMask, BishopDirs) {
			require.Equal(t, m.moveBoard, tables.BishopAttacks(i, m.blockerBoard), StringFromBoardIndex(i))
		}
	}

	// arbitrary occupancies, including the outer ring and the piece itself
	r := rand.New(rand.NewSource(32879419))
	for n := 0; n < 20000; n++ {
		occupancy := Bitboard(r.Uint64() & r.Uint64())
		i := r.Intn(64)
		require.Equal(t, SlidingAttacks(i, occupancy, RookDirs), tables.RookAttacks(i, occupancy))
		require.Equal(t, SlidingAttacks(i, occupancy, BishopDirs), tables.BishopAttacks(i, occupancy))
	}
}

func TestBrokenMagicReportsSquare(t *testing.T) {
	rookMagics := RookBestMagics
	rookMagics[BoardIndexFromString("c3")] = MagicValue{0, 12}

	_, err := BuildTablesWithMagics(&rookMagics, &BishopBestMagics)
	require.False(t, IsNil(err))
	assert.Contains(t, err.Error(), "c3")
	assert.Contains(t, err.Error(), "rook")
}

func TestFindMagic(t *testing.T) {
	magic, err := FindMagic(0, BishopDirs, 7, 1000000, 1)
	require.True(t, IsNil(err), err.String())

	table, err := generateMagicTable(0, BishopDirs, magic)
	require.True(t, IsNil(err), err.String())
	assert.Len(t, table.Data, 1<<7)
}
