package scripting

import (
	"errors"
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// StepsFunc is the global Lua function a strategy script must define:
//
//	function steps(roll, last_delta) return roll end
//
// roll is the die face for this move; last_delta is the warp adjustment
// applied on the previous move (0 before the first move).
const StepsFunc = "steps"

// ErrNotNumber is returned when a strategy's steps function yields a
// non-number or NaN.
var ErrNotNumber = errors.New("scripting: steps must return a number")

// MaxSteps bounds the magnitude of a Steps result. Larger results, including
// infinities, saturate to ±MaxSteps.
const MaxSteps = math.MaxInt32

// Strategy is a compiled movement script bound to its own sandboxed VM.
//
// A Strategy is not safe for concurrent use; each player owns one.
type Strategy struct {
	name      string
	state     *lua.LState
	instLimit int
}

// Compile loads source into a fresh sandbox and checks that it defines StepsFunc.
//
// Precondition: name must be non-empty; instLimit >= 0 (0 = DefaultInstructionLimit).
// Postcondition: Returns a ready Strategy or a non-nil error; on error no VM is leaked.
func Compile(name, source string, instLimit int) (*Strategy, error) {
	L := NewSandboxedState()
	if err := RunLimited(L, instLimit, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}
	if _, ok := L.GetGlobal(StepsFunc).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("scripting: strategy %q does not define function %s", name, StepsFunc)
	}
	return &Strategy{name: name, state: L, instLimit: instLimit}, nil
}

// Name returns the name the strategy was compiled with.
func (s *Strategy) Name() string {
	return s.name
}

// Steps calls the script's steps function.
//
// Postcondition: On success returns floor of the script's result clamped to
// [-MaxSteps, MaxSteps]; callers clamp further. Lua errors, non-number
// results, and NaN are returned as errors.
func (s *Strategy) Steps(roll, lastDelta int) (int, error) {
	var ret lua.LValue
	err := RunLimited(s.state, s.instLimit, func() error {
		if err := s.state.CallByParam(lua.P{
			Fn:      s.state.GetGlobal(StepsFunc),
			NRet:    1,
			Protect: true,
		}, lua.LNumber(roll), lua.LNumber(lastDelta)); err != nil {
			return err
		}
		ret = s.state.Get(-1)
		s.state.Pop(1)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scripting: strategy %q: %w", s.name, err)
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("strategy %q returned %s: %w", s.name, ret.Type(), ErrNotNumber)
	}
	f := math.Floor(float64(n))
	if math.IsNaN(f) {
		return 0, fmt.Errorf("strategy %q returned NaN: %w", s.name, ErrNotNumber)
	}
	return int(max(-MaxSteps, min(MaxSteps, f))), nil
}

// Close releases the strategy's VM.
func (s *Strategy) Close() {
	s.state.Close()
}
