// Package player implements the movement strategies that compete on a board.
//
// Every strategy satisfies Player. Strategies share the warp-resolution step
// through an embedded token rather than a base type, and each carries only
// the memory its own rule needs.
package player

import (
	"github.com/cory-johannsen/chutes/internal/game/board"
)

// Kind labels a strategy and is the key results are aggregated by.
type Kind string

const (
	KindStandard  Kind = "Player"
	KindResilient Kind = "ResilientPlayer"
	KindLazy      Kind = "LazyPlayer"
	KindScripted  Kind = "ScriptedPlayer"
)

// Roller yields one die roll per call.
type Roller interface {
	Roll() int
}

// Player is a piece on the board.
type Player interface {
	// Move rolls the die, advances, and resolves any warp on the landing square.
	//
	// Postcondition: Moves() increases by exactly 1.
	Move()
	// Position returns the current square; 0 before the first move.
	Position() int
	// Moves returns the number of completed Move calls.
	Moves() int
	// Kind returns the strategy label.
	Kind() Kind
	// Reset returns the player to its initial state.
	Reset()
}

// Factory creates one player on b rolling with r. A Simulation calls each
// roster Factory once.
type Factory func(b *board.Board, r Roller) Player

// token holds the state every strategy shares.
type token struct {
	board    *board.Board
	roller   Roller
	position int
	moves    int
}

// advance moves the token steps squares, applies the warp at the landing
// square, and counts the move.
//
// Postcondition: returns the warp delta applied (0 if none).
func (t *token) advance(steps int) int {
	landing := t.position + steps
	delta := t.board.Adjustment(landing)
	t.position = landing + delta
	t.moves++
	return delta
}

func (t *token) Position() int { return t.position }

func (t *token) Moves() int { return t.moves }

func (t *token) reset() {
	t.position = 0
	t.moves = 0
}

// Standard moves exactly the die roll each turn.
type Standard struct {
	token
}

// NewStandard returns a Standard player at position 0.
//
// Precondition: b and r must be non-nil.
func NewStandard(b *board.Board, r Roller) *Standard {
	return &Standard{token: token{board: b, roller: r}}
}

// Move advances by one die roll.
func (p *Standard) Move() {
	p.advance(p.roller.Roll())
}

// Kind returns KindStandard.
func (p *Standard) Kind() Kind { return KindStandard }

// Reset returns the player to position 0 with no moves.
func (p *Standard) Reset() { p.reset() }

// StandardFactory returns a Factory for Standard players.
func StandardFactory() Factory {
	return func(b *board.Board, r Roller) Player { return NewStandard(b, r) }
}
