package sim

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/chutes/internal/game/player"
	"github.com/cory-johannsen/chutes/internal/stats"
)

// KindReport aggregates one player kind over a run.
type KindReport struct {
	Kind    player.Kind `yaml:"kind"`
	Players int         `yaml:"players"`
	Wins    int         `yaml:"wins"`
	// Durations summarizes the move counts of won games; nil when the kind never won.
	Durations *stats.Summary `yaml:"durations,omitempty"`
}

// Report summarizes every game played by a Simulation.
type Report struct {
	SimulationID string       `yaml:"simulation_id"`
	Games        int          `yaml:"games"`
	Kinds        []KindReport `yaml:"kinds"`
}

// Report builds a Report over all results so far, with kinds sorted by name.
//
// Postcondition: Returns ErrNoResults before any game.
func (s *Simulation) Report() (Report, error) {
	wins, err := s.WinnersPerType()
	if err != nil {
		return Report{}, err
	}
	durations, err := s.DurationsPerType()
	if err != nil {
		return Report{}, err
	}
	players := s.PlayersPerType()

	kinds := make([]player.Kind, 0, len(wins))
	for k := range wins {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	r := Report{SimulationID: s.id.String(), Games: len(s.results)}
	for _, k := range kinds {
		kr := KindReport{Kind: k, Players: players[k], Wins: wins[k]}
		if len(durations[k]) > 0 {
			summary, err := stats.Summarize(durations[k])
			if err != nil {
				return Report{}, fmt.Errorf("summarizing %s durations: %w", k, err)
			}
			kr.Durations = &summary
		}
		r.Kinds = append(r.Kinds, kr)
	}
	return r, nil
}

// YAML renders the report as a YAML document.
func (r Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding report YAML: %w", err)
	}
	return data, nil
}
