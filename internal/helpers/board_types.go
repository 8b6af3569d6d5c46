package helpers

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "w":
		return White, NilError
	case "b":
		return Black, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

// PieceType doubles as the mailbox entry: NoPiece marks an empty square.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPiece
)

const NumPieceTypes = 6

var AllPieceTypes = [NumPieceTypes]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (p PieceType) String() string {
	return [7]string{
		"p", "n", "b", "r", "q", "k", " ",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p < NoPiece
}

// Letter is the FEN letter for a piece of this type owned by player.
func (p PieceType) Letter(player Player) string {
	if player == White {
		return [7]string{"P", "N", "B", "R", "Q", "K", " "}[p]
	}
	return p.String()
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "p":
		return Pawn
	case "n":
		return Knight
	case "b":
		return Bishop
	case "r":
		return Rook
	case "q":
		return Queen
	case "k":
		return King
	default:
		return NoPiece
	}
}

// PieceFromRune decodes a FEN piece letter; uppercase is White.
func PieceFromRune(c rune) (PieceType, Player, Error) {
	switch c {
	case 'P':
		return Pawn, White, NilError
	case 'N':
		return Knight, White, NilError
	case 'B':
		return Bishop, White, NilError
	case 'R':
		return Rook, White, NilError
	case 'Q':
		return Queen, White, NilError
	case 'K':
		return King, White, NilError
	case 'p':
		return Pawn, Black, NilError
	case 'n':
		return Knight, Black, NilError
	case 'b':
		return Bishop, Black, NilError
	case 'r':
		return Rook, Black, NilError
	case 'q':
		return Queen, Black, NilError
	case 'k':
		return King, Black, NilError
	default:
		return NoPiece, White, Errorf("invalid piece %q", c)
	}
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %v", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

// BoardIndexFromString panics on malformed input; use it for literals only.
func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

func (c CastlingSide) String() string {
	if c == Kingside {
		return "kingside"
	}
	return "queenside"
}
