package board

import (
	"fmt"

	. "github.com/cricklet/chesscore/internal/helpers"
)

// HistState packs the irreversible part of a position:
//
//	bits 0-3   castling rights (white kingside, white queenside, black kingside, black queenside)
//	bit 4      en passant available
//	bits 5-7   en passant file
//	bits 8-10  piece captured by the move that produced this state
//	bits 16-31 halfmove clock
type HistState uint32

const AllCastleRights uint8 = 0b1111

const (
	_castleMask        HistState = HistState(AllCastleRights)
	_enPassantFlag     HistState = 1 << 4
	_enPassantShift              = 5
	_enPassantFileMask HistState = 0b111 << _enPassantShift
	_capturedShift               = 8
	_capturedMask      HistState = 0b111 << _capturedShift
	_halfmoveShift               = 16
)

func CastleRight(player Player, side CastlingSide) uint8 {
	return 1 << (2*uint8(player) + uint8(side))
}

// NewHistState has no captured piece and no en passant.
func NewHistState(castleRights uint8, halfmoveClock int) HistState {
	s := HistState(castleRights) & _castleMask
	s |= HistState(NoPiece) << _capturedShift
	s |= HistState(halfmoveClock) << _halfmoveShift
	return s
}

func (s HistState) CastleRights() uint8 {
	return uint8(s & _castleMask)
}

func (s HistState) HasCastleRight(player Player, side CastlingSide) bool {
	return s.CastleRights()&CastleRight(player, side) != 0
}

func (s HistState) RemoveCastleRights(rights uint8) HistState {
	return s &^ HistState(rights)
}

func (s HistState) EnPassantAvailable() bool {
	return s&_enPassantFlag != 0
}

func (s HistState) EnPassantFile() int {
	return int(s&_enPassantFileMask) >> _enPassantShift
}

func (s HistState) SetEnPassant(file int) HistState {
	s &^= _enPassantFileMask
	return s | _enPassantFlag | HistState(file)<<_enPassantShift
}

func (s HistState) DecayEnPassant() HistState {
	return s &^ (_enPassantFlag | _enPassantFileMask)
}

// CapturedPiece is NoPiece unless the move that produced this state captured.
func (s HistState) CapturedPiece() PieceType {
	return PieceType((s & _capturedMask) >> _capturedShift)
}

func (s HistState) SetCapturedPiece(p PieceType) HistState {
	return s&^_capturedMask | HistState(p)<<_capturedShift
}

func (s HistState) HalfmoveClock() int {
	return int(s >> _halfmoveShift)
}

func (s HistState) ResetHalfmoveClock() HistState {
	return s & (1<<_halfmoveShift - 1)
}

func (s HistState) IncrementHalfmoveClock() HistState {
	if s.HalfmoveClock() == 0xffff {
		return s
	}
	return s + 1<<_halfmoveShift
}

// HalfmoveClockDone is true once the fifty-move rule allows a draw claim.
func (s HistState) HalfmoveClockDone() bool {
	return s.HalfmoveClock() >= 100
}

// _castleClear holds the rights lost when a move leaves or lands on a square.
var _castleClear = func() [64]uint8 {
	result := [64]uint8{}
	result[BoardIndexFromString("e1")] = CastleRight(White, Kingside) | CastleRight(White, Queenside)
	result[BoardIndexFromString("h1")] = CastleRight(White, Kingside)
	result[BoardIndexFromString("a1")] = CastleRight(White, Queenside)
	result[BoardIndexFromString("e8")] = CastleRight(Black, Kingside) | CastleRight(Black, Queenside)
	result[BoardIndexFromString("h8")] = CastleRight(Black, Kingside)
	result[BoardIndexFromString("a8")] = CastleRight(Black, Queenside)
	return result
}()

// DecayCastleRights drops any right whose king or rook square is the origin
// or destination of a move.
func (s HistState) DecayCastleRights(from int, to int) HistState {
	return s.RemoveCastleRights(_castleClear[from] | _castleClear[to])
}

func (s HistState) String() string {
	rights := ""
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			if s.HasCastleRight(player, side) {
				rights += _castleLetters[player][side]
			}
		}
	}
	if rights == "" {
		rights = "-"
	}

	enPassant := "-"
	if s.EnPassantAvailable() {
		enPassant = File(s.EnPassantFile()).String()
	}

	return fmt.Sprintf("{castle: %v, ep: %v, captured: %q, halfmove: %v}",
		rights, enPassant, s.CapturedPiece().String(), s.HalfmoveClock())
}

var _castleLetters = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}
