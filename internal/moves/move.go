package moves

import (
	. "github.com/cricklet/chesscore/internal/helpers"
)

// MoveKind is the 4-bit tag stored in the top of a Move. Bit 2 marks a
// capture and bit 3 a promotion; for promotions the low two bits select the
// piece (knight, bishop, rook, queen).
type MoveKind uint8

const (
	Quiet          MoveKind = 0
	DoublePawnPush MoveKind = 1
	KingCastle     MoveKind = 2
	QueenCastle    MoveKind = 3
	Capture        MoveKind = 4
	EnPassant      MoveKind = 5

	KnightPromo MoveKind = 8
	BishopPromo MoveKind = 9
	RookPromo   MoveKind = 10
	QueenPromo  MoveKind = 11

	KnightPromoCapture MoveKind = 12
	BishopPromoCapture MoveKind = 13
	RookPromoCapture   MoveKind = 14
	QueenPromoCapture  MoveKind = 15
)

const (
	_captureFlag   MoveKind = 0b0100
	_promotionFlag MoveKind = 0b1000
)

var PromoKinds = [4]MoveKind{KnightPromo, BishopPromo, RookPromo, QueenPromo}
var PromoCaptureKinds = [4]MoveKind{KnightPromoCapture, BishopPromoCapture, RookPromoCapture, QueenPromoCapture}

func (k MoveKind) IsValid() bool {
	return k <= EnPassant || (k >= KnightPromo && k <= QueenPromoCapture)
}

func (k MoveKind) IsCapture() bool {
	return k&_captureFlag != 0
}

func (k MoveKind) IsPromotion() bool {
	return k&_promotionFlag != 0
}

// PromotionPiece is NoPiece unless the kind promotes.
func (k MoveKind) PromotionPiece() PieceType {
	if !k.IsPromotion() {
		return NoPiece
	}
	return Knight + PieceType(k&0b11)
}

func (k MoveKind) String() string {
	switch k {
	case Quiet:
		return "Quiet"
	case DoublePawnPush:
		return "DoublePawnPush"
	case KingCastle:
		return "KingCastle"
	case QueenCastle:
		return "QueenCastle"
	case Capture:
		return "Capture"
	case EnPassant:
		return "EnPassant"
	}
	if k.IsValid() && k.IsPromotion() {
		if k.IsCapture() {
			return "PromoCapture(" + k.PromotionPiece().String() + ")"
		}
		return "Promo(" + k.PromotionPiece().String() + ")"
	}
	return "Invalid"
}

// Move packs the destination in bits 0-5, the origin in bits 6-11 and the
// kind in bits 12-15.
type Move uint16

const NullMove Move = 0

func NewMove(from int, to int, kind MoveKind) Move {
	return Move(to) | Move(from)<<6 | Move(kind)<<12
}

func (m Move) From() int {
	return int(m>>6) & 0x3f
}

func (m Move) To() int {
	return int(m) & 0x3f
}

func (m Move) Kind() MoveKind {
	return MoveKind(m >> 12)
}

// UCI is the long algebraic form, eg "e2e4" or "e7e8q".
func (m Move) UCI() string {
	result := StringFromBoardIndex(m.From()) + StringFromBoardIndex(m.To())
	if promo := m.Kind().PromotionPiece(); promo != NoPiece {
		result += promo.String()
	}
	return result
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) DebugString() string {
	return m.UCI() + " " + m.Kind().String()
}

// MoveFromString builds a move with an explicit kind, eg for test fixtures.
func MoveFromString(s string, kind MoveKind) Move {
	return NewMove(BoardIndexFromString(s[0:2]), BoardIndexFromString(s[2:4]), kind)
}
