package moves

// MaxMoves is the largest number of legal moves any chess position has.
const MaxMoves = 218

type MoveList struct {
	moves [MaxMoves]Move
	size  int
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

// Push appends a move. Pushing past MaxMoves is a bug in the caller and
// panics.
func (l *MoveList) Push(m Move) {
	checkCapacity(l.size)
	l.moves[l.size] = m
	l.size++
}

func (l *MoveList) Len() int {
	return l.size
}

func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

func (l *MoveList) Clear() {
	l.size = 0
}

// Slice aliases the list's storage; it is invalidated by the next Clear.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.size]
}

func (l *MoveList) Contains(m Move) bool {
	for _, move := range l.moves[:l.size] {
		if move == m {
			return true
		}
	}
	return false
}

// Strings renders every move in UCI form.
func (l *MoveList) Strings() []string {
	result := make([]string, l.size)
	for i, m := range l.moves[:l.size] {
		result[i] = m.UCI()
	}
	return result
}
