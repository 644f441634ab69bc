package player

import (
	"fmt"

	"github.com/cory-johannsen/chutes/internal/game/board"
)

// DefaultExtraSteps is the bonus a Resilient player takes after a chute.
const DefaultExtraSteps = 1

// Resilient takes ExtraSteps on top of the die roll on the move after it
// slid down a chute. The extra steps count before the landing square's warp
// is resolved.
type Resilient struct {
	token
	extraSteps int
	slided     bool
}

// NewResilient returns a Resilient player at position 0.
//
// Precondition: extraSteps >= 0. Panics otherwise.
func NewResilient(b *board.Board, r Roller, extraSteps int) *Resilient {
	if extraSteps < 0 {
		panic(fmt.Sprintf("player: NewResilient precondition violated: extraSteps must be >= 0, got %d", extraSteps))
	}
	return &Resilient{token: token{board: b, roller: r}, extraSteps: extraSteps}
}

// Move advances by the die roll, plus ExtraSteps if the previous move ended on a chute.
func (p *Resilient) Move() {
	steps := p.roller.Roll()
	if p.slided {
		steps += p.extraSteps
	}
	p.slided = p.advance(steps) < 0
}

// ExtraSteps returns the configured bonus.
func (p *Resilient) ExtraSteps() int { return p.extraSteps }

// Slided reports whether the previous move ended with a chute slide.
func (p *Resilient) Slided() bool { return p.slided }

// Kind returns KindResilient.
func (p *Resilient) Kind() Kind { return KindResilient }

// Reset returns the player to position 0 with no moves and no pending bonus.
func (p *Resilient) Reset() {
	p.reset()
	p.slided = false
}

// ResilientFactory returns a Factory for Resilient players.
//
// Precondition: extraSteps >= 0.
func ResilientFactory(extraSteps int) Factory {
	return func(b *board.Board, r Roller) Player { return NewResilient(b, r, extraSteps) }
}
