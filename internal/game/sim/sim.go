// Package sim runs repeated chutes-and-ladders games among a fixed roster of
// players and aggregates the outcomes.
package sim

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/chutes/internal/game/board"
	"github.com/cory-johannsen/chutes/internal/game/dice"
	"github.com/cory-johannsen/chutes/internal/game/player"
)

// DefaultSeed seeds the random source when Options.Seed is left at zero
// and no Source is supplied.
const DefaultSeed uint64 = 123456

// ErrNoResults is returned by aggregates requested before any game was played.
var ErrNoResults = errors.New("sim: no results")

// Result is the outcome of one game.
type Result struct {
	// Moves is the winner's move count when it reached the goal.
	Moves int
	// Winner is the winning player's kind.
	Winner player.Kind
}

// Options configures a Simulation. The zero value is usable.
type Options struct {
	// Board is shared by all players; nil builds a fresh default board.
	Board *board.Board
	// Seed seeds the default Source; zero uses DefaultSeed.
	Seed uint64
	// Source overrides the seeded source.
	Source dice.Source
	// Die is rolled on every move; the zero value uses dice.D6.
	Die dice.Die
	// ShufflePlayers shuffles the roster once, before players are created.
	ShufflePlayers bool
	// CarryOver keeps player state between games instead of resetting it.
	// Later games then start from where earlier ones ended, which biases the
	// aggregates toward players that happen to be ahead.
	CarryOver bool
	// Logger receives run logs; nil disables logging.
	Logger *zap.Logger
	// ID identifies the simulation in logs; the zero value generates one.
	ID uuid.UUID
}

// Simulation owns a board, a roster, a random source, and the results of
// every game played. It is not safe for concurrent use.
type Simulation struct {
	id        uuid.UUID
	board     *board.Board
	roller    *dice.Roller
	players   []player.Player
	results   []Result
	carryOver bool
	closers   []func()
	logger    *zap.Logger
}

// New creates a Simulation with one player per roster entry, in roster
// order unless opts.ShufflePlayers is set.
//
// Precondition: roster must be non-empty and every Factory non-nil.
// Postcondition: Returns a Simulation with no results.
func New(roster []player.Factory, opts Options) *Simulation {
	b := opts.Board
	if b == nil {
		b = board.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	src := opts.Source
	if src == nil {
		src = dice.NewSeededSource(seed)
	}
	die := opts.Die
	if die.Sides == 0 {
		die = dice.D6
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	s := &Simulation{
		id:        id,
		board:     b,
		carryOver: opts.CarryOver,
	}
	s.logger = logger.With(zap.String("simulation_id", s.id.String()))
	s.roller = dice.NewLoggedRoller(src, die, s.logger)

	factories := slices.Clone(roster)
	if opts.ShufflePlayers {
		s.roller.Shuffle(len(factories), func(i, j int) {
			factories[i], factories[j] = factories[j], factories[i]
		})
	}
	s.players = make([]player.Player, len(factories))
	for i, f := range factories {
		s.players[i] = f(b, s.roller)
	}

	if opts.CarryOver {
		s.logger.Warn("player state carries over between games; aggregates are biased")
	}
	return s
}

// ID returns the identifier attached to this simulation's logs.
func (s *Simulation) ID() uuid.UUID {
	return s.id
}

// Board returns the shared board.
func (s *Simulation) Board() *board.Board {
	return s.board
}

// Players returns the roster in play order.
func (s *Simulation) Players() []player.Player {
	return slices.Clone(s.players)
}

// SingleGame plays one game: players move in roster order, one move each,
// until one reaches the goal. The game ends on that move.
//
// Postcondition: the winner satisfies Board().GoalReached(winner.Position()).
// The game is not bounded; a board that can trap every player never returns.
func (s *Simulation) SingleGame() Result {
	if !s.carryOver {
		for _, p := range s.players {
			p.Reset()
		}
	}
	for {
		for _, p := range s.players {
			p.Move()
			if s.board.GoalReached(p.Position()) {
				return Result{Moves: p.Moves(), Winner: p.Kind()}
			}
		}
	}
}

// Run plays numGames games and appends their results.
//
// Postcondition: len(Results()) grows by exactly numGames.
func (s *Simulation) Run(numGames int) {
	start := time.Now()
	for i := 0; i < numGames; i++ {
		r := s.SingleGame()
		s.results = append(s.results, r)
		s.logger.Debug("game finished",
			zap.Int("game", len(s.results)),
			zap.String("winner", string(r.Winner)),
			zap.Int("moves", r.Moves),
		)
	}
	s.logger.Info("simulation run complete",
		zap.Int("games", numGames),
		zap.Int("total_games", len(s.results)),
		zap.Int("players", len(s.players)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// Results returns every result recorded so far, in play order.
func (s *Simulation) Results() []Result {
	return slices.Clone(s.results)
}

// WinnersPerType maps every kind on the roster to its number of wins.
// Kinds that never won map to 0.
//
// Postcondition: Returns ErrNoResults before any game; otherwise the
// counts sum to len(Results()).
func (s *Simulation) WinnersPerType() (map[player.Kind]int, error) {
	if len(s.results) == 0 {
		return nil, ErrNoResults
	}
	wins := make(map[player.Kind]int)
	for _, p := range s.players {
		wins[p.Kind()] = 0
	}
	for _, r := range s.results {
		wins[r.Winner]++
	}
	return wins, nil
}

// DurationsPerType maps every kind on the roster to the move counts of the
// games it won, in play order.
//
// Postcondition: Returns ErrNoResults before any game.
func (s *Simulation) DurationsPerType() (map[player.Kind][]int, error) {
	if len(s.results) == 0 {
		return nil, ErrNoResults
	}
	durations := make(map[player.Kind][]int)
	for _, p := range s.players {
		durations[p.Kind()] = []int{}
	}
	for _, r := range s.results {
		durations[r.Winner] = append(durations[r.Winner], r.Moves)
	}
	return durations, nil
}

// PlayersPerType maps every kind on the roster to how many roster slots it holds.
//
// Postcondition: the counts sum to len(Players()).
func (s *Simulation) PlayersPerType() map[player.Kind]int {
	counts := make(map[player.Kind]int)
	for _, p := range s.players {
		counts[p.Kind()]++
	}
	return counts
}

// Close releases resources held by the roster's strategies, such as Lua VMs.
func (s *Simulation) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}
