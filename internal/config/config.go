// Package config provides Viper-based configuration loading for simulation runs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Player types accepted in roster entries.
const (
	PlayerTypeStandard  = "player"
	PlayerTypeResilient = "resilient"
	PlayerTypeLazy      = "lazy"
	PlayerTypeScripted  = "scripted"
)

// Random sources accepted in simulation.source.
const (
	SourceSeeded = "seeded"
	SourceCrypto = "crypto"
)

// SimulationConfig holds run-level settings.
type SimulationConfig struct {
	// Seed seeds the simulation's random source.
	Seed uint64 `mapstructure:"seed"`
	// Games is the number of games to run.
	Games int `mapstructure:"games"`
	// ShufflePlayers shuffles roster order once before the run.
	ShufflePlayers bool `mapstructure:"shuffle_players"`
	// CarryOver keeps player position and move counts between games instead
	// of resetting them. Aggregates are biased when set.
	CarryOver bool `mapstructure:"carry_over"`
	// DieSides is the number of faces on the die.
	DieSides int `mapstructure:"die_sides"`
	// Source selects the random source: "seeded" (reproducible from Seed)
	// or "crypto" (crypto/rand; Seed is ignored).
	Source string `mapstructure:"source"`
}

// WarpConfig is a single ladder or chute.
type WarpConfig struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// BoardConfig describes the board layout, either field by field or as an
// inline YAML layout document.
//
// The standard ladders and chutes apply only when the configuration file
// has no board section at all. A file that sets board.goal alone gets a
// board with no warps.
type BoardConfig struct {
	Goal    int          `mapstructure:"goal"`
	Ladders []WarpConfig `mapstructure:"ladders"`
	Chutes  []WarpConfig `mapstructure:"chutes"`
	// Layout is a YAML document of the form
	//
	//	board:
	//	  goal: 90
	//	  ladders: [{start: 1, end: 40}]
	//	  chutes: [{start: 24, end: 5}]
	//
	// When set, Goal is ignored and Ladders and Chutes must be empty.
	Layout string `mapstructure:"layout"`
}

// PlayerConfig is one roster slot.
type PlayerConfig struct {
	// Type is one of "player", "resilient", "lazy", "scripted".
	Type string `mapstructure:"type"`
	// Name overrides the aggregation label of a scripted player.
	Name string `mapstructure:"name"`
	// ExtraSteps is the resilient player's bonus after a chute.
	ExtraSteps int `mapstructure:"extra_steps"`
	// DroppedSteps is the lazy player's penalty after a ladder.
	DroppedSteps int `mapstructure:"dropped_steps"`
	// Script is the Lua source of a scripted player's strategy.
	Script string `mapstructure:"script"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit bounds the opcodes per strategy call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Board      BoardConfig      `mapstructure:"board"`
	Roster     []PlayerConfig   `mapstructure:"roster"`
	Scripting  ScriptingConfig  `mapstructure:"scripting"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants. Board geometry (warp
// direction, overlapping starts) is checked when the board is built.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBoard(c.Board); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRoster(c.Roster); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Games < 0 {
		errs = append(errs, fmt.Sprintf("simulation.games must be >= 0, got %d", s.Games))
	}
	if s.DieSides < 2 {
		errs = append(errs, fmt.Sprintf("simulation.die_sides must be >= 2, got %d", s.DieSides))
	}
	validSources := map[string]bool{SourceSeeded: true, SourceCrypto: true}
	if !validSources[s.Source] {
		errs = append(errs, fmt.Sprintf("simulation.source must be one of [seeded, crypto], got %q", s.Source))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBoard(b BoardConfig) error {
	if strings.TrimSpace(b.Layout) != "" {
		if len(b.Ladders) > 0 || len(b.Chutes) > 0 {
			return fmt.Errorf("board.layout must not be combined with board.ladders or board.chutes")
		}
		return nil
	}
	if b.Goal < 1 {
		return fmt.Errorf("board.goal must be >= 1, got %d", b.Goal)
	}
	return nil
}

func validateRoster(roster []PlayerConfig) error {
	if len(roster) == 0 {
		return fmt.Errorf("roster must not be empty")
	}
	validTypes := map[string]bool{
		PlayerTypeStandard:  true,
		PlayerTypeResilient: true,
		PlayerTypeLazy:      true,
		PlayerTypeScripted:  true,
	}
	var errs []string
	for i, p := range roster {
		if !validTypes[p.Type] {
			errs = append(errs, fmt.Sprintf("roster[%d].type must be one of [player, resilient, lazy, scripted], got %q", i, p.Type))
		}
		if p.ExtraSteps < 0 {
			errs = append(errs, fmt.Sprintf("roster[%d].extra_steps must be >= 0, got %d", i, p.ExtraSteps))
		}
		if p.DroppedSteps < 0 {
			errs = append(errs, fmt.Sprintf("roster[%d].dropped_steps must be >= 0, got %d", i, p.DroppedSteps))
		}
		if p.Type == PlayerTypeScripted && strings.TrimSpace(p.Script) == "" {
			errs = append(errs, fmt.Sprintf("roster[%d].script must not be empty for a scripted player", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// New returns a Viper instance with defaults and CHUTES_ environment
// overrides applied, for callers that supply configuration another way.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CHUTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if !v.InConfig("board") && cfg.Board.Layout == "" && len(cfg.Board.Ladders) == 0 && len(cfg.Board.Chutes) == 0 {
		cfg.Board.Ladders, cfg.Board.Chutes = defaultWarps()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the validated default configuration.
func Default() (Config, error) {
	return LoadFromViper(New())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.seed", 123456)
	v.SetDefault("simulation.games", 100)
	v.SetDefault("simulation.shuffle_players", false)
	v.SetDefault("simulation.carry_over", false)
	v.SetDefault("simulation.die_sides", 6)
	v.SetDefault("simulation.source", SourceSeeded)

	v.SetDefault("board.goal", 90)
	v.SetDefault("board.layout", "")

	v.SetDefault("roster", []map[string]any{
		{"type": PlayerTypeStandard},
		{"type": PlayerTypeResilient, "extra_steps": 1},
		{"type": PlayerTypeLazy, "dropped_steps": 1},
	})

	v.SetDefault("scripting.instruction_limit", 100_000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// defaultWarps returns the standard board's ladders and chutes.
func defaultWarps() (ladders, chutes []WarpConfig) {
	ladders = []WarpConfig{
		{1, 40}, {8, 10}, {36, 52}, {43, 62}, {49, 79}, {65, 82}, {68, 85},
	}
	chutes = []WarpConfig{
		{24, 5}, {33, 3}, {42, 30}, {56, 37}, {64, 27}, {74, 12}, {87, 70},
	}
	return ladders, chutes
}
