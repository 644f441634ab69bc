// Package dice provides the randomness abstraction used by the board-game
// engine: uniform sources, dice, and shuffling.
package dice

import "fmt"

// Source is the randomness provider for dice rolls and shuffles.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Die is a fair die with faces 1..Sides.
//
// Invariant: Sides >= 2 for any Die produced by NewDie.
type Die struct {
	Sides int
}

// D6 is the standard six-sided die.
var D6 = Die{Sides: 6}

// NewDie returns a Die with the given number of faces.
//
// Precondition: sides >= 2. Panics otherwise.
func NewDie(sides int) Die {
	if sides < 2 {
		panic(fmt.Sprintf("dice: NewDie precondition violated: sides must be >= 2, got %d", sides))
	}
	return Die{Sides: sides}
}

// Roll draws one face from src.
//
// Postcondition: 1 <= result <= d.Sides.
func (d Die) Roll(src Source) int {
	return src.Intn(d.Sides) + 1
}

// String returns the conventional notation, e.g. "d6".
func (d Die) String() string {
	return fmt.Sprintf("d%d", d.Sides)
}

// Shuffle permutes n elements in place with a Fisher-Yates shuffle driven by src.
//
// Precondition: n >= 0; swap must exchange elements i and j.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
