package moves

import (
	"testing"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestMoveFields(t *testing.T) {
	m := NewMove(BoardIndexFromString("e2"), BoardIndexFromString("e4"), DoublePawnPush)
	assert.Equal(t, BoardIndexFromString("e2"), m.From())
	assert.Equal(t, BoardIndexFromString("e4"), m.To())
	assert.Equal(t, DoublePawnPush, m.Kind())
	assert.Equal(t, "e2e4", m.String())

	m = NewMove(63, 0, QueenPromoCapture)
	assert.Equal(t, 63, m.From())
	assert.Equal(t, 0, m.To())
	assert.Equal(t, QueenPromoCapture, m.Kind())
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []MoveKind{Capture, EnPassant, KnightPromoCapture, QueenPromoCapture} {
		assert.True(t, k.IsCapture(), k.String())
	}
	for _, k := range []MoveKind{Quiet, DoublePawnPush, KingCastle, QueenCastle, RookPromo} {
		assert.False(t, k.IsCapture(), k.String())
	}

	for i, k := range PromoKinds {
		assert.True(t, k.IsPromotion())
		assert.False(t, k.IsCapture())
		assert.Equal(t, Knight+PieceType(i), k.PromotionPiece())
		assert.Equal(t, k.PromotionPiece(), PromoCaptureKinds[i].PromotionPiece())
	}
	assert.Equal(t, NoPiece, Capture.PromotionPiece())

	assert.False(t, MoveKind(6).IsValid())
	assert.False(t, MoveKind(7).IsValid())
	assert.True(t, QueenPromoCapture.IsValid())
}

func TestUCI(t *testing.T) {
	assert.Equal(t, "e7e8q", MoveFromString("e7e8", QueenPromo).UCI())
	assert.Equal(t, "b2a1n", MoveFromString("b2a1", KnightPromoCapture).UCI())
	assert.Equal(t, "a7a8r", MoveFromString("a7a8", RookPromo).UCI())
	assert.Equal(t, "e1g1", MoveFromString("e1g1", KingCastle).UCI())
	assert.Equal(t, "e1g1 KingCastle", MoveFromString("e1g1", KingCastle).DebugString())
}

func TestMoveList(t *testing.T) {
	l := NewMoveList()
	assert.Equal(t, 0, l.Len())

	a := MoveFromString("e2e4", DoublePawnPush)
	b := MoveFromString("g1f3", Quiet)
	l.Push(a)
	l.Push(b)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, b, l.At(1))
	assert.True(t, l.Contains(a))
	assert.False(t, l.Contains(MoveFromString("e2e4", Quiet)))
	assert.Equal(t, []string{"e2e4", "g1f3"}, l.Strings())
	assert.Equal(t, []Move{a, b}, l.Slice())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Contains(a))
}

func TestMoveListOverflowPanics(t *testing.T) {
	l := NewMoveList()
	for i := 0; i < MaxMoves; i++ {
		l.Push(NullMove)
	}
	assert.Panics(t, func() {
		l.Push(NullMove)
	})
}
