package player

import (
	"fmt"

	"github.com/cory-johannsen/chutes/internal/game/board"
)

// DefaultDroppedSteps is the penalty a Lazy player takes after a ladder.
const DefaultDroppedSteps = 1

// Lazy drops DroppedSteps from the die roll on the move after it climbed a
// ladder. Laziness never moves the player backward: the reduced roll is
// floored at 0.
type Lazy struct {
	token
	droppedSteps int
	climbed      bool
}

// NewLazy returns a Lazy player at position 0.
//
// Precondition: droppedSteps >= 0. Panics otherwise.
func NewLazy(b *board.Board, r Roller, droppedSteps int) *Lazy {
	if droppedSteps < 0 {
		panic(fmt.Sprintf("player: NewLazy precondition violated: droppedSteps must be >= 0, got %d", droppedSteps))
	}
	return &Lazy{token: token{board: b, roller: r}, droppedSteps: droppedSteps}
}

// Move advances by the die roll, less DroppedSteps if the previous move ended on a ladder.
func (p *Lazy) Move() {
	steps := p.roller.Roll()
	if p.climbed {
		steps = max(0, steps-p.droppedSteps)
	}
	p.climbed = p.advance(steps) > 0
}

// DroppedSteps returns the configured penalty.
func (p *Lazy) DroppedSteps() int { return p.droppedSteps }

// Climbed reports whether the previous move ended with a ladder climb.
func (p *Lazy) Climbed() bool { return p.climbed }

// Kind returns KindLazy.
func (p *Lazy) Kind() Kind { return KindLazy }

// Reset returns the player to position 0 with no moves and no pending penalty.
func (p *Lazy) Reset() {
	p.reset()
	p.climbed = false
}

// LazyFactory returns a Factory for Lazy players.
//
// Precondition: droppedSteps >= 0.
func LazyFactory(droppedSteps int) Factory {
	return func(b *board.Board, r Roller) Player { return NewLazy(b, r, droppedSteps) }
}
