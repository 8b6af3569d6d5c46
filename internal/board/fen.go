package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
)

type FenErrorKind int

const (
	FenTooFewFields FenErrorKind = iota
	FenBadPlacement
	FenBadTurn
	FenBadRights
	FenBadEnPassant
	FenBadClock
)

func (k FenErrorKind) String() string {
	return [...]string{
		"wrong number of fields",
		"bad piece placement",
		"bad side to move",
		"bad castling rights",
		"bad en passant square",
		"bad move clock",
	}[k]
}

type FenError struct {
	Kind  FenErrorKind
	Field string
	Cause error
}

func (e *FenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid fen: %v %q: %v", e.Kind, e.Field, e.Cause)
	}
	return fmt.Sprintf("invalid fen: %v %q", e.Kind, e.Field)
}

func (e *FenError) Unwrap() error {
	return e.Cause
}

func fenError(kind FenErrorKind, field string, format string, args ...any) *FenError {
	return &FenError{kind, field, Errorf(format, args...)}
}

// FromFen loads a six-field FEN string. On error no board is returned.
func FromFen(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fenError(FenTooFewFields, fen, "expected 6 fields, found %v", len(fields))
	}

	b := newEmptyBoard()

	if err := b.placePieces(fields[0]); err != nil {
		return nil, err
	}

	turn, turnErr := PlayerFromString(fields[1])
	if !IsNil(turnErr) {
		return nil, &FenError{FenBadTurn, fields[1], turnErr}
	}
	b.turn = turn

	rights, err := parseCastleRights(fields[2])
	if err != nil {
		return nil, err
	}
	rights = b.reachableCastleRights(rights)

	halfmove, convErr := strconv.Atoi(fields[4])
	if convErr != nil || halfmove < 0 || halfmove > 0xffff {
		return nil, &FenError{FenBadClock, fields[4], convErr}
	}
	fullmove, convErr := strconv.Atoi(fields[5])
	if convErr != nil || fullmove < 1 {
		return nil, &FenError{FenBadClock, fields[5], convErr}
	}
	b.fullmove = fullmove

	state := NewHistState(rights, halfmove)
	if fields[3] != "-" {
		file, err := b.parseEnPassant(fields[3])
		if err != nil {
			return nil, err
		}
		state = state.SetEnPassant(file)
	}
	b.root = state

	b.hash = b.computeHash()
	return b, nil
}

func (b *Board) placePieces(placement string) *FenError {
	rank, file := 7, 0
	for _, c := range placement {
		switch {
		case c == '/':
			if file != 8 {
				return fenError(FenBadPlacement, placement, "rank %v has %v squares", rank+1, file)
			}
			if rank == 0 {
				return fenError(FenBadPlacement, placement, "unexpected '/'")
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > 8 {
				return fenError(FenBadPlacement, placement, "rank %v has more than 8 squares", rank+1)
			}
		default:
			pieceType, player, err := PieceFromRune(c)
			if !IsNil(err) {
				return &FenError{FenBadPlacement, placement, err}
			}
			if file >= 8 {
				return fenError(FenBadPlacement, placement, "rank %v has more than 8 squares", rank+1)
			}
			if pieceType == Pawn && (rank == 0 || rank == 7) {
				return fenError(FenBadPlacement, placement, "pawn on rank %v", rank+1)
			}
			b.write(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)}), player, pieceType)
			file++
		}
	}

	if rank != 0 || file != 8 {
		return fenError(FenBadPlacement, placement, "expected 64 squares")
	}

	for _, player := range []Player{White, Black} {
		if n := bitboards.OnesCount(b.bitboard.Piece[player][King]); n != 1 {
			return fenError(FenBadPlacement, placement, "%v has %v kings", player, n)
		}
	}

	return nil
}

func parseCastleRights(field string) (uint8, *FenError) {
	if field == "-" {
		return 0, nil
	}
	if len(field) > 4 {
		return 0, &FenError{Kind: FenBadRights, Field: field}
	}

	rights := uint8(0)
	for _, c := range field {
		var right uint8
		switch c {
		case 'K':
			right = CastleRight(White, Kingside)
		case 'Q':
			right = CastleRight(White, Queenside)
		case 'k':
			right = CastleRight(Black, Kingside)
		case 'q':
			right = CastleRight(Black, Queenside)
		default:
			return 0, fenError(FenBadRights, field, "unknown right %q", c)
		}
		if rights&right != 0 {
			return 0, fenError(FenBadRights, field, "repeated right %q", c)
		}
		rights |= right
	}
	return rights, nil
}

// reachableCastleRights drops rights whose king or rook is not on its home
// square; those rights can never be used.
func (b *Board) reachableCastleRights(rights uint8) uint8 {
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			squares := _castleSquares[player][side]
			if !b.bitboard.Piece[player][King].IsSet(squares.kingFrom) ||
				!b.bitboard.Piece[player][Rook].IsSet(squares.rookFrom) {
				rights &^= CastleRight(player, side)
			}
		}
	}
	return rights
}

// parseEnPassant accepts the square behind a pawn that just double pushed.
func (b *Board) parseEnPassant(field string) (int, *FenError) {
	location, err := FileRankFromString(field)
	if !IsNil(err) {
		return 0, &FenError{FenBadEnPassant, field, err}
	}

	expectedRank := Rank(5)
	if b.turn == Black {
		expectedRank = Rank(2)
	}
	if location.Rank != expectedRank {
		return 0, fenError(FenBadEnPassant, field, "%v to move needs rank %v", b.turn, expectedRank)
	}

	target := IndexFromFileRank(location)
	pawn := enPassantCaptureIndex(b.turn, target)
	if b.bitboard.Occupancy.IsSet(target) || !b.bitboard.Piece[b.turn.Other()][Pawn].IsSet(pawn) {
		return 0, fenError(FenBadEnPassant, field, "no pawn to capture on %v", StringFromBoardIndex(pawn))
	}

	return int(location.File), nil
}
