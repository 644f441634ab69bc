package player_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/chutes/internal/game/board"
	"github.com/cory-johannsen/chutes/internal/game/player"
)

// seqRoller returns the queued faces in order and then repeats the last one.
type seqRoller struct {
	faces []int
	i     int
}

func (s *seqRoller) Roll() int {
	face := s.faces[min(s.i, len(s.faces)-1)]
	s.i++
	return face
}

func rolls(faces ...int) *seqRoller { return &seqRoller{faces: faces} }

// testBoard has a ladder 2->10, a chute 14->4, and goal 30.
func testBoard() *board.Board {
	return board.New([]board.Warp{{Start: 2, End: 10}}, []board.Warp{{Start: 14, End: 4}}, 30)
}

func TestStandard_MoveAddsRoll(t *testing.T) {
	p := player.NewStandard(testBoard(), rolls(3, 4))
	assert.Equal(t, 0, p.Position())
	assert.Equal(t, 0, p.Moves())

	p.Move()
	assert.Equal(t, 3, p.Position())
	assert.Equal(t, 1, p.Moves())

	p.Move()
	assert.Equal(t, 7, p.Position())
	assert.Equal(t, 2, p.Moves())
}

func TestStandard_LadderAndChute(t *testing.T) {
	p := player.NewStandard(testBoard(), rolls(2, 4))
	p.Move()
	assert.Equal(t, 10, p.Position(), "ladder 2->10")
	p.Move()
	assert.Equal(t, 4, p.Position(), "chute 14->4")
}

func TestStandard_Reset(t *testing.T) {
	p := player.NewStandard(testBoard(), rolls(5))
	p.Move()
	p.Reset()
	assert.Equal(t, 0, p.Position())
	assert.Equal(t, 0, p.Moves())
}

func TestKinds(t *testing.T) {
	b, r := testBoard(), rolls(1)
	assert.Equal(t, player.KindStandard, player.NewStandard(b, r).Kind())
	assert.Equal(t, player.KindResilient, player.NewResilient(b, r, 1).Kind())
	assert.Equal(t, player.KindLazy, player.NewLazy(b, r, 1).Kind())
	assert.Equal(t, "Player", string(player.KindStandard))
	assert.Equal(t, "ResilientPlayer", string(player.KindResilient))
	assert.Equal(t, "LazyPlayer", string(player.KindLazy))
}

// TestResilient_ExtraStepsAfterChute verifies the bonus applies on the move
// after a slide and before the landing square's warp is resolved.
func TestResilient_ExtraStepsAfterChute(t *testing.T) {
	// 4 -> 4; +10 -> 14 chute -> 4 (slided); 5+3 extra -> 12.
	p := player.NewResilient(testBoard(), rolls(4, 10, 5), 3)
	p.Move()
	p.Move()
	require.Equal(t, 4, p.Position())
	require.True(t, p.Slided())

	p.Move()
	assert.Equal(t, 12, p.Position())
	assert.False(t, p.Slided())
	assert.Equal(t, 3, p.Moves())
}

func TestResilient_ExtraStepsLandOnWarp(t *testing.T) {
	// 4 -> 4; +10 -> 14 chute -> 4 (slided); 8+2 extra -> 14 chute again.
	p := player.NewResilient(testBoard(), rolls(4, 10, 8), 2)
	p.Move()
	p.Move()
	p.Move()
	assert.Equal(t, 4, p.Position())
	assert.True(t, p.Slided())
}

func TestResilient_NoBonusWithoutSlide(t *testing.T) {
	p := player.NewResilient(testBoard(), rolls(2, 3), 5)
	p.Move()
	assert.Equal(t, 10, p.Position(), "ladder does not count as a slide")
	assert.False(t, p.Slided())
	p.Move()
	assert.Equal(t, 13, p.Position())
}

func TestResilient_Reset(t *testing.T) {
	p := player.NewResilient(testBoard(), rolls(14), 1)
	p.Move()
	require.True(t, p.Slided())
	p.Reset()
	assert.False(t, p.Slided())
	assert.Equal(t, 0, p.Position())
	assert.Equal(t, 0, p.Moves())
}

func TestResilient_NegativeExtraStepsPanics(t *testing.T) {
	assert.Panics(t, func() { player.NewResilient(testBoard(), rolls(1), -1) })
}

// TestLazy_DroppedStepsAfterLadder verifies the penalty applies on the move
// after a climb.
func TestLazy_DroppedStepsAfterLadder(t *testing.T) {
	p := player.NewLazy(testBoard(), rolls(2, 5), 2)
	p.Move()
	require.Equal(t, 10, p.Position())
	require.True(t, p.Climbed())

	p.Move()
	assert.Equal(t, 13, p.Position())
	assert.False(t, p.Climbed())
}

func TestLazy_NeverMovesBackward(t *testing.T) {
	p := player.NewLazy(testBoard(), rolls(2, 1), 3)
	p.Move()
	require.Equal(t, 10, p.Position())

	p.Move()
	assert.Equal(t, 10, p.Position(), "roll 1 - 3 dropped floors at 0")
	assert.Equal(t, 2, p.Moves())
}

func TestLazy_NoPenaltyWithoutClimb(t *testing.T) {
	p := player.NewLazy(testBoard(), rolls(3, 3), 2)
	p.Move()
	p.Move()
	assert.Equal(t, 6, p.Position())
}

func TestLazy_Reset(t *testing.T) {
	p := player.NewLazy(testBoard(), rolls(2), 1)
	p.Move()
	require.True(t, p.Climbed())
	p.Reset()
	assert.False(t, p.Climbed())
	assert.Equal(t, 0, p.Position())
}

func TestLazy_NegativeDroppedStepsPanics(t *testing.T) {
	assert.Panics(t, func() { player.NewLazy(testBoard(), rolls(1), -1) })
}

// stepFunc is a StepFunc backed by a Go closure.
type stepFunc struct {
	fn func(roll, lastDelta int) (int, error)
}

func (s stepFunc) Name() string { return "stub" }

func (s stepFunc) Steps(roll, lastDelta int) (int, error) { return s.fn(roll, lastDelta) }

func TestScripted_PassesLastDelta(t *testing.T) {
	var seen []int
	fn := stepFunc{fn: func(roll, lastDelta int) (int, error) {
		seen = append(seen, lastDelta)
		return roll, nil
	}}
	p := player.NewScripted(testBoard(), rolls(2, 4, 1), "", fn, nil)
	p.Move()
	p.Move()
	p.Move()
	assert.Equal(t, []int{0, 8, -10}, seen)
	assert.Equal(t, player.KindScripted, p.Kind())
	assert.Equal(t, 5, p.Position())
}

func TestScripted_ErrorFallsBackToRoll(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fn := stepFunc{fn: func(int, int) (int, error) { return 0, errors.New("boom") }}
	p := player.NewScripted(testBoard(), rolls(5), "Cautious", fn, zap.New(core))

	p.Move()
	assert.Equal(t, 5, p.Position())
	assert.Equal(t, player.Kind("Cautious"), p.Kind())
	assert.Equal(t, 1, logs.FilterMessage("strategy failed, using die roll").Len())
}

func TestScripted_NegativeStepsFloorAtZero(t *testing.T) {
	fn := stepFunc{fn: func(roll, _ int) (int, error) { return -roll, nil }}
	p := player.NewScripted(testBoard(), rolls(3), "", fn, nil)
	p.Move()
	assert.Equal(t, 0, p.Position())
	assert.Equal(t, 1, p.Moves())
}

// TestScripted_HugeStepsReachGoal verifies an oversized step count is capped
// at the goal distance and still finishes the game.
func TestScripted_HugeStepsReachGoal(t *testing.T) {
	b := testBoard()
	fn := stepFunc{fn: func(int, int) (int, error) { return math.MaxInt, nil }}
	p := player.NewScripted(b, rolls(1), "", fn, nil)
	p.Move()
	assert.Equal(t, 30, p.Position())
	assert.True(t, b.GoalReached(p.Position()))
	assert.Equal(t, 1, p.Moves())

	p.Move()
	assert.Equal(t, 60, p.Position(), "no overflow on repeated huge moves")
}

func TestFactories(t *testing.T) {
	b, r := testBoard(), rolls(1)
	assert.IsType(t, &player.Standard{}, player.StandardFactory()(b, r))

	res := player.ResilientFactory(4)(b, r)
	require.IsType(t, &player.Resilient{}, res)
	assert.Equal(t, 4, res.(*player.Resilient).ExtraSteps())

	lazy := player.LazyFactory(2)(b, r)
	require.IsType(t, &player.Lazy{}, lazy)
	assert.Equal(t, 2, lazy.(*player.Lazy).DroppedSteps())

	fn := stepFunc{fn: func(roll, _ int) (int, error) { return roll, nil }}
	assert.Equal(t, player.Kind("X"), player.ScriptedFactory("X", fn, nil)(b, r).Kind())
}

// TestProperty_MoveSemantics checks each strategy against its movement rule
// on a random board and random die sequence.
func TestProperty_MoveSemantics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faces := rapid.SliceOfN(rapid.IntRange(1, 6), 1, 40).Draw(rt, "faces")
		extra := rapid.IntRange(0, 5).Draw(rt, "extra")
		dropped := rapid.IntRange(0, 5).Draw(rt, "dropped")
		b := board.Default()

		std := player.NewStandard(b, rolls(faces...))
		res := player.NewResilient(b, rolls(faces...), extra)
		lazy := player.NewLazy(b, rolls(faces...), dropped)

		for i, face := range faces {
			pre := std.Position() + face
			std.Move()
			assert.Equal(rt, pre+b.Adjustment(pre), std.Position())

			step := face
			if res.Slided() {
				step += extra
			}
			pre = res.Position() + step
			res.Move()
			assert.Equal(rt, pre+b.Adjustment(pre), res.Position())
			assert.Equal(rt, b.Adjustment(pre) < 0, res.Slided())

			step = face
			if lazy.Climbed() {
				step = max(0, face-dropped)
			}
			before := lazy.Position()
			pre = before + step
			lazy.Move()
			assert.GreaterOrEqual(rt, pre, before)
			assert.Equal(rt, pre+b.Adjustment(pre), lazy.Position())
			assert.Equal(rt, b.Adjustment(pre) > 0, lazy.Climbed())

			for _, p := range []player.Player{std, res, lazy} {
				assert.Equal(rt, i+1, p.Moves())
			}
		}
	})
}
