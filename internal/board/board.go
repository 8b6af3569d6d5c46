package board

import (
	"strings"

	"github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/cricklet/chesscore/internal/moves"
	"github.com/cricklet/chesscore/internal/zobrist"
)

type HistoryElement struct {
	Move  moves.Move
	State HistState
}

// Board is a position plus the history needed to walk back to the position
// it was loaded from. The bitboards and the mailbox always describe the same
// pieces; every change goes through write, delete or replace.
//
// A Board is owned by one goroutine. Use Clone to hand a copy to another.
type Board struct {
	bitboard bitboards.BitBoard
	mailbox  [64]PieceType

	turn     Player
	fullmove int

	root    HistState
	history []HistoryElement

	hash uint64
}

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func NewStartingBoard() *Board {
	b, err := FromFen(StartingFen)
	if err != nil {
		panic(err)
	}
	return b
}

func newEmptyBoard() *Board {
	b := &Board{
		turn:     White,
		fullmove: 1,
		root:     NewHistState(0, 0),
		history:  make([]HistoryElement, 0, 64),
	}
	for i := range b.mailbox {
		b.mailbox[i] = NoPiece
	}
	return b
}

func (b *Board) Clone() *Board {
	result := *b
	result.history = make([]HistoryElement, len(b.history), max(cap(b.history), 64))
	copy(result.history, b.history)
	return &result
}

func (b *Board) PieceAt(index int) PieceType {
	return b.mailbox[index]
}

// ColorAt reports the owner of the piece on index, or false for an empty
// square.
func (b *Board) ColorAt(index int) (Player, bool) {
	single := bitboards.SingleBitboard(index)
	if b.bitboard.Color[White]&single != 0 {
		return White, true
	}
	if b.bitboard.Color[Black]&single != 0 {
		return Black, true
	}
	return White, false
}

func (b *Board) Turn() Player {
	return b.turn
}

// State is the irreversible state of the current position.
func (b *Board) State() HistState {
	if len(b.history) == 0 {
		return b.root
	}
	return b.history[len(b.history)-1].State
}

func (b *Board) History() []HistoryElement {
	result := make([]HistoryElement, len(b.history))
	copy(result, b.history)
	return result
}

// Ply is the number of moves made since the position was loaded.
func (b *Board) Ply() int {
	return len(b.history)
}

func (b *Board) FullmoveNumber() int {
	return b.fullmove
}

func (b *Board) BitBoard() bitboards.BitBoard {
	return b.bitboard
}

// Bitboards exposes the live bitboards to the move generator without a copy.
// Callers must not mutate them.
func (b *Board) Bitboards() *bitboards.BitBoard {
	return &b.bitboard
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) KingIndex(player Player) int {
	return b.bitboard.Piece[player][King].FirstIndexOfOne()
}

func (b *Board) computeHash() uint64 {
	state := b.State()
	return zobrist.HashForBoardPosition(
		&b.bitboard, b.turn, state.CastleRights(), state.EnPassantAvailable(), state.EnPassantFile())
}

func stateKey(s HistState) uint64 {
	return zobrist.StateKey(s.CastleRights(), s.EnPassantAvailable(), s.EnPassantFile())
}

// write places a piece on an empty square.
func (b *Board) write(index int, player Player, pieceType PieceType) {
	b.bitboard.Set(index, player, pieceType)
	b.mailbox[index] = pieceType
	b.hash ^= zobrist.PieceKey(player, pieceType, index)
}

// delete empties an occupied square.
func (b *Board) delete(index int) {
	pieceType := b.mailbox[index]
	player, _ := b.ColorAt(index)

	b.bitboard.Clear(index, player, pieceType)
	b.mailbox[index] = NoPiece
	b.hash ^= zobrist.PieceKey(player, pieceType, index)
}

// replace swaps the piece on an occupied square for another.
func (b *Board) replace(index int, player Player, pieceType PieceType) {
	oldPieceType := b.mailbox[index]
	oldPlayer, _ := b.ColorAt(index)

	b.bitboard.Swap(index, player, pieceType, oldPlayer, oldPieceType)
	b.mailbox[index] = pieceType
	b.hash ^= zobrist.PieceKey(oldPlayer, oldPieceType, index)
	b.hash ^= zobrist.PieceKey(player, pieceType, index)
}

type castleSquares struct {
	kingFrom, kingTo int
	rookFrom, rookTo int
}

var _castleSquares = [2][2]castleSquares{
	{
		{BoardIndexFromString("e1"), BoardIndexFromString("g1"), BoardIndexFromString("h1"), BoardIndexFromString("f1")},
		{BoardIndexFromString("e1"), BoardIndexFromString("c1"), BoardIndexFromString("a1"), BoardIndexFromString("d1")},
	},
	{
		{BoardIndexFromString("e8"), BoardIndexFromString("g8"), BoardIndexFromString("h8"), BoardIndexFromString("f8")},
		{BoardIndexFromString("e8"), BoardIndexFromString("c8"), BoardIndexFromString("a8"), BoardIndexFromString("d8")},
	},
}

func castleSquaresFor(player Player, kind moves.MoveKind) castleSquares {
	if kind == moves.KingCastle {
		return _castleSquares[player][Kingside]
	}
	return _castleSquares[player][Queenside]
}

// enPassantCaptureIndex is the square of the pawn taken by an en passant
// capture landing on target.
func enPassantCaptureIndex(player Player, target int) int {
	return target - bitboards.PawnPushOffsets[player]
}

// Make plays a legal move. Moves not produced by the generator for this
// position leave the board in an undefined state.
func (b *Board) Make(move moves.Move) {
	us := b.turn
	from, to, kind := move.From(), move.To(), move.Kind()

	prev := b.State()
	state := prev.DecayEnPassant().DecayCastleRights(from, to).SetCapturedPiece(NoPiece)

	moving := b.mailbox[from]
	if moving == Pawn || kind.IsCapture() {
		state = state.ResetHalfmoveClock()
	} else {
		state = state.IncrementHalfmoveClock()
	}

	switch kind {
	case moves.Quiet:
		b.delete(from)
		b.write(to, us, moving)
	case moves.DoublePawnPush:
		b.delete(from)
		b.write(to, us, Pawn)
		state = state.SetEnPassant(to & 0b111)
	case moves.KingCastle, moves.QueenCastle:
		squares := castleSquaresFor(us, kind)
		b.delete(squares.kingFrom)
		b.write(squares.kingTo, us, King)
		b.delete(squares.rookFrom)
		b.write(squares.rookTo, us, Rook)
	case moves.Capture:
		state = state.SetCapturedPiece(b.mailbox[to])
		b.replace(to, us, moving)
		b.delete(from)
	case moves.EnPassant:
		state = state.SetCapturedPiece(Pawn)
		b.delete(from)
		b.write(to, us, Pawn)
		b.delete(enPassantCaptureIndex(us, to))
	case moves.KnightPromo, moves.BishopPromo, moves.RookPromo, moves.QueenPromo:
		b.delete(from)
		b.write(to, us, kind.PromotionPiece())
	case moves.KnightPromoCapture, moves.BishopPromoCapture, moves.RookPromoCapture, moves.QueenPromoCapture:
		state = state.SetCapturedPiece(b.mailbox[to])
		b.replace(to, us, kind.PromotionPiece())
		b.delete(from)
	default:
		panic("make: unknown move kind " + move.DebugString())
	}

	b.hash ^= stateKey(prev) ^ stateKey(state) ^ zobrist.ZobristSideToMove

	b.turn = us.Other()
	if us == Black {
		b.fullmove++
	}
	b.history = append(b.history, HistoryElement{move, state})
}

// Unmake takes back the last move. With no moves to take back it does
// nothing and returns false.
func (b *Board) Unmake() bool {
	if len(b.history) == 0 {
		return false
	}

	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	prev := b.State()

	us := b.turn.Other()
	them := b.turn
	move, state := last.Move, last.State
	from, to, kind := move.From(), move.To(), move.Kind()

	switch kind {
	case moves.Quiet, moves.DoublePawnPush:
		moving := b.mailbox[to]
		b.delete(to)
		b.write(from, us, moving)
	case moves.KingCastle, moves.QueenCastle:
		squares := castleSquaresFor(us, kind)
		b.delete(squares.kingTo)
		b.write(squares.kingFrom, us, King)
		b.delete(squares.rookTo)
		b.write(squares.rookFrom, us, Rook)
	case moves.Capture:
		moving := b.mailbox[to]
		b.replace(to, them, state.CapturedPiece())
		b.write(from, us, moving)
	case moves.EnPassant:
		b.delete(to)
		b.write(from, us, Pawn)
		b.write(enPassantCaptureIndex(us, to), them, Pawn)
	case moves.KnightPromo, moves.BishopPromo, moves.RookPromo, moves.QueenPromo:
		b.delete(to)
		b.write(from, us, Pawn)
	case moves.KnightPromoCapture, moves.BishopPromoCapture, moves.RookPromoCapture, moves.QueenPromoCapture:
		b.replace(to, them, state.CapturedPiece())
		b.write(from, us, Pawn)
	default:
		panic("unmake: unknown move kind " + move.DebugString())
	}

	b.hash ^= stateKey(prev) ^ stateKey(state) ^ zobrist.ZobristSideToMove

	b.turn = us
	if us == Black {
		b.fullmove--
	}
	return true
}

// Validate checks that the bitboards, mailbox and hash agree.
func (b *Board) Validate() Error {
	errs := []Error{}
	bb := &b.bitboard

	if bb.Occupancy != bb.Color[White]|bb.Color[Black] {
		errs = append(errs, Errorf("occupancy does not match colors\n%v", bb.Occupancy))
	}
	if bb.Color[White]&bb.Color[Black] != 0 {
		errs = append(errs, Errorf("colors overlap\n%v", bb.Color[White]&bb.Color[Black]))
	}

	for _, player := range []Player{White, Black} {
		union := bitboards.Bitboard(0)
		for _, pieceType := range AllPieceTypes {
			if union&bb.Piece[player][pieceType] != 0 {
				errs = append(errs, Errorf("%v %v overlaps another piece", player, pieceType))
			}
			union |= bb.Piece[player][pieceType]
		}
		if union != bb.Color[player] {
			errs = append(errs, Errorf("%v pieces do not match color\n%v", player, union^bb.Color[player]))
		}
		if bitboards.OnesCount(bb.Piece[player][King]) != 1 {
			errs = append(errs, Errorf("%v has %v kings", player, bitboards.OnesCount(bb.Piece[player][King])))
		}
	}

	for index := 0; index < 64; index++ {
		player, occupied := b.ColorAt(index)
		pieceType := b.mailbox[index]
		if !occupied {
			if pieceType != NoPiece {
				errs = append(errs, Errorf("mailbox has %v on empty %v", pieceType, StringFromBoardIndex(index)))
			}
			continue
		}
		if !pieceType.IsValid() || !bb.Piece[player][pieceType].IsSet(index) {
			errs = append(errs, Errorf("mailbox has %q on %v", pieceType.String(), StringFromBoardIndex(index)))
		}
	}

	if hash := b.computeHash(); hash != b.hash {
		errs = append(errs, Errorf("hash %x does not match recomputed %x", b.hash, hash))
	}

	return Join(errs...)
}

// String draws the mailbox with rank 8 on top, for test output.
func (b *Board) String() string {
	lines := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		line := ""
		for file := 0; file < 8; file++ {
			index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})
			player, occupied := b.ColorAt(index)
			if !occupied {
				line += "."
				continue
			}
			line += b.mailbox[index].Letter(player)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n" + b.turn.String() + " " + b.State().String()
}
