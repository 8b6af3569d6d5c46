//go:build chessdebug

package moves

import "fmt"

func checkCapacity(size int) {
	if size >= MaxMoves {
		panic(fmt.Sprintf("move list overflow: %d moves already pushed, capacity %d", size, MaxMoves))
	}
}
