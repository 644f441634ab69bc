package sim

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/chutes/internal/config"
	"github.com/cory-johannsen/chutes/internal/game/board"
	"github.com/cory-johannsen/chutes/internal/game/dice"
	"github.com/cory-johannsen/chutes/internal/game/player"
	"github.com/cory-johannsen/chutes/internal/observability"
	"github.com/cory-johannsen/chutes/internal/scripting"
)

// NewFromConfig builds a Simulation from validated configuration: the board
// layout, one player per roster entry (compiling scripted strategies), and
// the run options.
//
// Postcondition: Returns a Simulation that owns any compiled strategies, or a
// non-nil error with nothing leaked. Callers must Close the Simulation.
func NewFromConfig(cfg config.Config, logger *zap.Logger) (*Simulation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := boardFromConfig(cfg.Board)
	if err != nil {
		return nil, fmt.Errorf("building board: %w", err)
	}
	var src dice.Source
	if cfg.Simulation.Source == config.SourceCrypto {
		src = dice.NewCryptoSource()
	}
	id := uuid.New()
	scoped := logger.With(zap.String("simulation_id", id.String()))

	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	roster := make([]player.Factory, 0, len(cfg.Roster))
	for i, pc := range cfg.Roster {
		switch pc.Type {
		case config.PlayerTypeStandard:
			roster = append(roster, player.StandardFactory())
		case config.PlayerTypeResilient:
			roster = append(roster, player.ResilientFactory(pc.ExtraSteps))
		case config.PlayerTypeLazy:
			roster = append(roster, player.LazyFactory(pc.DroppedSteps))
		case config.PlayerTypeScripted:
			kind := player.Kind(pc.Name)
			if kind == "" {
				kind = player.KindScripted
			}
			strategy, err := scripting.Compile(string(kind), pc.Script, cfg.Scripting.InstructionLimit)
			if err != nil {
				closeAll()
				return nil, fmt.Errorf("roster[%d]: %w", i, err)
			}
			closers = append(closers, strategy.Close)
			roster = append(roster, player.ScriptedFactory(kind, strategy, scoped))
		default:
			closeAll()
			return nil, fmt.Errorf("roster[%d]: unknown player type %q", i, pc.Type)
		}
	}

	scoped.Info("building simulation",
		append(observability.SimulationFields(cfg.Simulation),
			zap.Int("goal", layout.Goal),
			zap.Int("ladders", len(layout.Ladders)),
			zap.Int("chutes", len(layout.Chutes)),
			zap.Int("roster", len(roster)),
		)...,
	)

	s := New(roster, Options{
		Board:          layout.Build(),
		Seed:           cfg.Simulation.Seed,
		Source:         src,
		Die:            dice.NewDie(cfg.Simulation.DieSides),
		ShufflePlayers: cfg.Simulation.ShufflePlayers,
		CarryOver:      cfg.Simulation.CarryOver,
		Logger:         logger,
		ID:             id,
	})
	s.closers = closers
	return s, nil
}

// boardFromConfig returns the validated layout named by cfg: the inline
// layout document when one is set, the individual fields otherwise.
func boardFromConfig(cfg config.BoardConfig) (board.Layout, error) {
	if strings.TrimSpace(cfg.Layout) != "" {
		return board.ParseLayout([]byte(cfg.Layout))
	}
	layout := BoardLayout(cfg)
	if err := layout.Validate(); err != nil {
		return board.Layout{}, err
	}
	return layout, nil
}

// BoardLayout converts the configured board into a board.Layout.
func BoardLayout(cfg config.BoardConfig) board.Layout {
	l := board.Layout{Goal: cfg.Goal}
	for _, w := range cfg.Ladders {
		l.Ladders = append(l.Ladders, board.Warp{Start: w.Start, End: w.End})
	}
	for _, w := range cfg.Chutes {
		l.Chutes = append(l.Chutes, board.Warp{Start: w.Start, End: w.End})
	}
	return l
}
