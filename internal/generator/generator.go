package generator

import (
	. "github.com/cricklet/chesscore/internal/bitboards"
	"github.com/cricklet/chesscore/internal/board"
	. "github.com/cricklet/chesscore/internal/helpers"
	. "github.com/cricklet/chesscore/internal/moves"
)

var _moveListPool, _releaseMoveList, _moveListPoolStats = CreatePool(
	func() MoveList { return MoveList{} },
	func(l *MoveList) { l.Clear() },
)

// GetMoveList hands out a cleared list from a shared pool. Return it with
// ReleaseMoveList.
func GetMoveList() *MoveList {
	return _moveListPool()
}

func ReleaseMoveList(l *MoveList) {
	_releaseMoveList(l)
}

func MoveListPoolStats() PoolStats {
	return _moveListPoolStats()
}

func pushTargets(list *MoveList, from int, targets Bitboard, occupancy Bitboard) {
	for targets != 0 {
		var to int
		to, targets = targets.NextIndexOfOne()
		if occupancy.IsSet(to) {
			list.Push(NewMove(from, to, Capture))
		} else {
			list.Push(NewMove(from, to, Quiet))
		}
	}
}

func pushPromotions(list *MoveList, from int, to int, kinds *[4]MoveKind) {
	for _, kind := range kinds {
		list.Push(NewMove(from, to, kind))
	}
}

// GenerateMoves appends every legal move in b to list. t must have been
// computed from b.
func GenerateMoves(list *MoveList, b *board.Board, t *BoardTables) {
	tables := GetTables()
	us := b.Turn()
	them := us.Other()
	bb := b.Bitboards()
	own := bb.Color[us]
	enemy := bb.Color[them]
	occupancy := bb.Occupancy
	forward := PawnPushOffsets[us]

	promoting := bb.Piece[us][Pawn] & PawnPrePromotionRanks[us]

	// everything that can only move to a single kind of square
	pieces := own &^ promoting
	for pieces != 0 {
		var from int
		from, pieces = pieces.NextIndexOfOne()

		pieceType := b.PieceAt(from)
		var targets Bitboard
		if pieceType == Pawn {
			targets = tables.PawnAttacks(us, from) & enemy
			if !occupancy.IsSet(from + forward) {
				targets |= SingleBitboard(from + forward)
			}
		} else {
			targets = tables.Attacks(us, pieceType, from, occupancy) &^ own
		}

		if pieceType == King {
			targets &^= t.Threats
		} else {
			targets &= t.PinMask(from) & t.CheckBlocks
		}

		pushTargets(list, from, targets, occupancy)
	}

	generateCastling(list, b, t)
	generateEnPassant(list, b, tables)

	// double pushes
	pawns := bb.Piece[us][Pawn] & PawnHomeRanks[us]
	for pawns != 0 {
		var from int
		from, pawns = pawns.NextIndexOfOne()

		to := from + 2*forward
		if occupancy&(SingleBitboard(from+forward)|SingleBitboard(to)) != 0 {
			continue
		}
		if (t.PinMask(from) & t.CheckBlocks).IsSet(to) {
			list.Push(NewMove(from, to, DoublePawnPush))
		}
	}

	// promotions
	for promoting != 0 {
		var from int
		from, promoting = promoting.NextIndexOfOne()

		legal := t.PinMask(from) & t.CheckBlocks

		to := from + forward
		if !occupancy.IsSet(to) && legal.IsSet(to) {
			pushPromotions(list, from, to, &PromoKinds)
		}

		captures := tables.PawnAttacks(us, from) & enemy & legal
		for captures != 0 {
			to, captures = captures.NextIndexOfOne()
			pushPromotions(list, from, to, &PromoCaptureKinds)
		}
	}
}

type castleRequirement struct {
	kind   MoveKind
	side   CastlingSide
	king   int
	to     int
	rook   int
	empty  Bitboard
	unsafe Bitboard
}

var _castleRequirements = func() [2][2]castleRequirement {
	build := func(kind MoveKind, side CastlingSide, king, to, rook string, empty []string, unsafe []string) castleRequirement {
		return castleRequirement{
			kind:   kind,
			side:   side,
			king:   BoardIndexFromString(king),
			to:     BoardIndexFromString(to),
			rook:   BoardIndexFromString(rook),
			empty:  BitboardWithAllLocationsSet(empty),
			unsafe: BitboardWithAllLocationsSet(unsafe),
		}
	}
	return [2][2]castleRequirement{
		{
			build(KingCastle, Kingside, "e1", "g1", "h1", []string{"f1", "g1"}, []string{"e1", "f1", "g1"}),
			build(QueenCastle, Queenside, "e1", "c1", "a1", []string{"b1", "c1", "d1"}, []string{"e1", "d1", "c1"}),
		},
		{
			build(KingCastle, Kingside, "e8", "g8", "h8", []string{"f8", "g8"}, []string{"e8", "f8", "g8"}),
			build(QueenCastle, Queenside, "e8", "c8", "a8", []string{"b8", "c8", "d8"}, []string{"e8", "d8", "c8"}),
		},
	}
}()

func generateCastling(list *MoveList, b *board.Board, t *BoardTables) {
	us := b.Turn()
	bb := b.Bitboards()
	state := b.State()

	for _, req := range _castleRequirements[us] {
		if !state.HasCastleRight(us, req.side) {
			continue
		}
		if !bb.Piece[us][King].IsSet(req.king) || !bb.Piece[us][Rook].IsSet(req.rook) {
			continue
		}
		if bb.Occupancy&req.empty != 0 || t.Threats&req.unsafe != 0 {
			continue
		}
		list.Push(NewMove(req.king, req.to, req.kind))
	}
}

// generateEnPassant replays each capture on a scratch occupancy since it
// removes two pieces from the capturing pawn's rank at once.
func generateEnPassant(list *MoveList, b *board.Board, tables *Tables) {
	state := b.State()
	if !state.EnPassantAvailable() {
		return
	}

	us := b.Turn()
	them := us.Other()
	bb := b.Bitboards()
	enemy := &bb.Piece[them]
	kingIndex := b.KingIndex(us)

	target := state.EnPassantFile() + 40
	if us == Black {
		target = state.EnPassantFile() + 16
	}
	captured := target - PawnPushOffsets[us]

	sources := tables.PawnAttacks(them, target) & bb.Piece[us][Pawn]
	for sources != 0 {
		var from int
		from, sources = sources.NextIndexOfOne()

		occupancy := bb.Occupancy&^(SingleBitboard(from)|SingleBitboard(captured)) | SingleBitboard(target)

		if tables.PawnAttacks(us, kingIndex)&enemy[Pawn]&^SingleBitboard(captured) != 0 ||
			tables.KnightAttacks(kingIndex)&enemy[Knight] != 0 ||
			tables.BishopAttacks(kingIndex, occupancy)&(enemy[Bishop]|enemy[Queen]) != 0 ||
			tables.RookAttacks(kingIndex, occupancy)&(enemy[Rook]|enemy[Queen]) != 0 {
			continue
		}

		list.Push(NewMove(from, target, EnPassant))
	}
}

// LegalMoves fills list with the legal moves of b.
func LegalMoves(b *board.Board, list *MoveList) {
	list.Clear()
	t := ComputeBoardTables(b)
	GenerateMoves(list, b, &t)
}

func InCheck(b *board.Board) bool {
	tables := GetTables()
	us := b.Turn()
	return computeChecks(tables, b, us, b.KingIndex(us)) != 0
}

func hasLegalMove(b *board.Board) bool {
	list := GetMoveList()
	defer ReleaseMoveList(list)

	LegalMoves(b, list)
	return list.Len() > 0
}

func IsCheckmate(b *board.Board) bool {
	return InCheck(b) && !hasLegalMove(b)
}

func IsStalemate(b *board.Board) bool {
	return !InCheck(b) && !hasLegalMove(b)
}

// MoveFromUCI finds the legal move written as s, eg "e2e4" or "a7a8q".
func MoveFromUCI(b *board.Board, s string) (Move, Error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, Errorf("malformed move %q", s)
	}
	if len(s) == 5 {
		promotion := PieceTypeFromString(s[4:])
		if promotion < Knight || promotion > Queen {
			return NullMove, Errorf("malformed promotion %q", s)
		}
	}

	list := GetMoveList()
	defer ReleaseMoveList(list)

	LegalMoves(b, list)
	for _, m := range list.Slice() {
		if m.UCI() == s {
			return m, NilError
		}
	}
	return NullMove, Errorf("illegal move %q, legal moves are %v", s, list.Strings())
}
