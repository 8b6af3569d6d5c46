package generator

import (
	"sort"
	"testing"

	"github.com/cricklet/chesscore/internal/moves"
	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
)

func dragontoothDivide(fen string) map[string]int {
	b := dragontoothmg.ParseFen(fen)
	result := map[string]int{}
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		result[m.String()] = len(b.GenerateLegalMoves())
		unapply()
	}
	return result
}

// The generator and an independent implementation must agree on the root
// moves and the number of replies to each.
func TestDivideMatchesDragontooth(t *testing.T) {
	for _, tc := range perftCases {
		b := mustFen(t, tc.fen)
		expected := dragontoothDivide(tc.fen)

		result := map[string]int{}
		list := moves.NewMoveList()
		LegalMoves(b, list)
		for _, m := range list.Slice() {
			b.Make(m)
			result[m.UCI()] = len(legalMoveStrings(b))
			b.Unmake()
		}

		if !assert.Equal(t, expected, result, tc.name) {
			missing := []string{}
			for move := range expected {
				if _, ok := result[move]; !ok {
					missing = append(missing, move)
				}
			}
			sort.Strings(missing)
			t.Log(tc.name, "missing", missing, "\n", b)
		}
	}
}
