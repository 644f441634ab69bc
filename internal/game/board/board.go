// Package board models a chutes-and-ladders board: a goal square and a
// table of warps that move a player who lands on their start square.
package board

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Warp moves a player landing on Start to End. A ladder has End > Start,
// a chute has End < Start.
type Warp struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Delta returns End - Start.
func (w Warp) Delta() int {
	return w.End - w.Start
}

// DefaultGoal is the goal square of the standard board.
const DefaultGoal = 90

// Layout is the construction value for a Board.
type Layout struct {
	Goal    int    `yaml:"goal"`
	Ladders []Warp `yaml:"ladders"`
	Chutes  []Warp `yaml:"chutes"`
}

// DefaultLayout returns the standard seven-ladder, seven-chute layout.
//
// Postcondition: every call returns freshly allocated slices.
func DefaultLayout() Layout {
	return Layout{
		Goal: DefaultGoal,
		Ladders: []Warp{
			{1, 40}, {8, 10}, {36, 52}, {43, 62}, {49, 79}, {65, 82}, {68, 85},
		},
		Chutes: []Warp{
			{24, 5}, {33, 3}, {42, 30}, {56, 37}, {64, 27}, {74, 12}, {87, 70},
		},
	}
}

// Validate checks that the layout describes a playable board.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (l Layout) Validate() error {
	var errs []string
	if l.Goal < 1 {
		errs = append(errs, fmt.Sprintf("goal must be >= 1, got %d", l.Goal))
	}
	seen := make(map[int]string)
	check := func(kind string, w Warp) {
		if w.Start < 1 || w.Start >= l.Goal {
			errs = append(errs, fmt.Sprintf("%s %d->%d: start must be in [1, %d)", kind, w.Start, w.End, l.Goal))
		}
		if prev, ok := seen[w.Start]; ok {
			errs = append(errs, fmt.Sprintf("%s %d->%d: start already used by a %s", kind, w.Start, w.End, prev))
		}
		seen[w.Start] = kind
	}
	for _, w := range l.Ladders {
		check("ladder", w)
		if w.End <= w.Start {
			errs = append(errs, fmt.Sprintf("ladder %d->%d: end must be above start", w.Start, w.End))
		}
	}
	for _, w := range l.Chutes {
		check("chute", w)
		if w.End >= w.Start || w.End < 0 {
			errs = append(errs, fmt.Sprintf("chute %d->%d: end must be in [0, start)", w.Start, w.End))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid board layout: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Build returns a new Board for the layout. Build does not validate.
func (l Layout) Build() *Board {
	return New(l.Ladders, l.Chutes, l.Goal)
}

// Board is immutable after construction and safe to share between players.
type Board struct {
	goal  int
	warps map[int]int
}

// New builds a Board from ladder and chute warps. Chutes are inserted after
// ladders, so a chute wins when both start on the same square.
//
// Postcondition: Adjustment and GoalReached reflect the given warps and goal.
func New(ladders, chutes []Warp, goal int) *Board {
	warps := make(map[int]int, len(ladders)+len(chutes))
	for _, w := range ladders {
		warps[w.Start] = w.End
	}
	for _, w := range chutes {
		warps[w.Start] = w.End
	}
	return &Board{goal: goal, warps: warps}
}

// Default returns a new Board with the standard layout.
func Default() *Board {
	return DefaultLayout().Build()
}

// Goal returns the goal square.
func (b *Board) Goal() int {
	return b.goal
}

// GoalReached reports whether position is at or beyond the goal.
func (b *Board) GoalReached(position int) bool {
	return position >= b.goal
}

// Adjustment returns how far a player on position is moved by a warp:
// positive for a ladder, negative for a chute, 0 if position starts no warp.
func (b *Board) Adjustment(position int) int {
	end, ok := b.warps[position]
	if !ok {
		return 0
	}
	return end - position
}

// Layout returns the board's warps split into ladders and chutes, each
// sorted by start square.
func (b *Board) Layout() Layout {
	l := Layout{Goal: b.goal}
	for _, start := range slices.Sorted(maps.Keys(b.warps)) {
		w := Warp{Start: start, End: b.warps[start]}
		switch {
		case w.Delta() > 0:
			l.Ladders = append(l.Ladders, w)
		case w.Delta() < 0:
			l.Chutes = append(l.Chutes, w)
		}
	}
	return l
}
