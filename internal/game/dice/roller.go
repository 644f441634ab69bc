package dice

import "go.uber.org/zap"

// Roller binds a Source to a Die and logs every roll at debug level.
type Roller struct {
	src    Source
	die    Die
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls die with src and logs each roll to logger.
//
// Precondition: src must be non-nil; a nil logger disables logging.
// Postcondition: Returns a non-nil Roller.
func NewLoggedRoller(src Source, die Die, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, die: die, logger: logger}
}

// Die returns the die this Roller rolls.
func (r *Roller) Die() Die {
	return r.die
}

// Roll rolls the bound die once.
//
// Postcondition: 1 <= result <= r.Die().Sides.
func (r *Roller) Roll() int {
	face := r.die.Roll(r.src)
	r.logger.Debug("dice roll",
		zap.Stringer("die", r.die),
		zap.Int("face", face),
	)
	return face
}

// Shuffle permutes n elements in place using the Roller's source.
func (r *Roller) Shuffle(n int, swap func(i, j int)) {
	Shuffle(r.src, n, swap)
	r.logger.Debug("shuffled", zap.Int("n", n))
}
