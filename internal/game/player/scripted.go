package player

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/chutes/internal/game/board"
)

// StepFunc maps a die roll and the previous move's warp delta to the number
// of squares to advance.
type StepFunc interface {
	Name() string
	Steps(roll, lastDelta int) (int, error)
}

// Scripted delegates the step count to a StepFunc, typically a compiled Lua
// strategy. If the StepFunc fails, the move falls back to the plain roll.
// Step counts are clamped to [0, goal]; a player never needs more than goal
// squares to finish from any position >= 0.
type Scripted struct {
	token
	kind      Kind
	fn        StepFunc
	lastDelta int
	logger    *zap.Logger
}

// NewScripted returns a Scripted player at position 0.
//
// Precondition: b, r, and fn must be non-nil; an empty kind uses KindScripted;
// a nil logger disables logging.
func NewScripted(b *board.Board, r Roller, kind Kind, fn StepFunc, logger *zap.Logger) *Scripted {
	if kind == "" {
		kind = KindScripted
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scripted{token: token{board: b, roller: r}, kind: kind, fn: fn, logger: logger}
}

// Move advances by the StepFunc's answer for this roll.
func (p *Scripted) Move() {
	roll := p.roller.Roll()
	steps, err := p.fn.Steps(roll, p.lastDelta)
	if err != nil {
		p.logger.Warn("strategy failed, using die roll",
			zap.String("strategy", p.fn.Name()),
			zap.Int("roll", roll),
			zap.Error(err),
		)
		steps = roll
	}
	p.lastDelta = p.advance(max(0, min(steps, p.board.Goal())))
}

// LastDelta returns the warp delta applied on the previous move.
func (p *Scripted) LastDelta() int { return p.lastDelta }

// Kind returns the label the player was created with.
func (p *Scripted) Kind() Kind { return p.kind }

// Reset returns the player to position 0 with no moves and no warp memory.
func (p *Scripted) Reset() {
	p.reset()
	p.lastDelta = 0
}

// ScriptedFactory returns a Factory for Scripted players sharing fn.
//
// Precondition: fn must not be shared across simulations that run concurrently.
func ScriptedFactory(kind Kind, fn StepFunc, logger *zap.Logger) Factory {
	return func(b *board.Board, r Roller) Player { return NewScripted(b, r, kind, fn, logger) }
}
