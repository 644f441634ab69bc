package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/chutes/internal/game/board"
)

func TestParseLayout(t *testing.T) {
	l, err := board.ParseLayout([]byte(`
board:
  goal: 30
  ladders:
    - {start: 3, end: 22}
    - {start: 5, end: 8}
  chutes:
    - {start: 27, end: 1}
`))
	require.NoError(t, err)
	assert.Equal(t, 30, l.Goal)
	assert.Equal(t, []board.Warp{{3, 22}, {5, 8}}, l.Ladders)
	assert.Equal(t, []board.Warp{{27, 1}}, l.Chutes)

	b := l.Build()
	assert.Equal(t, 19, b.Adjustment(3))
	assert.Equal(t, -26, b.Adjustment(27))
}

func TestParseLayout_InvalidYAML(t *testing.T) {
	_, err := board.ParseLayout([]byte("board: [unterminated"))
	assert.Error(t, err)
}

func TestParseLayout_InvalidLayout(t *testing.T) {
	_, err := board.ParseLayout([]byte(`
board:
  goal: 30
  ladders:
    - {start: 10, end: 4}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating board")
}

func TestMarshalLayout_ParsesBack(t *testing.T) {
	data, err := board.MarshalLayout(board.DefaultLayout())
	require.NoError(t, err)
	l, err := board.ParseLayout(data)
	require.NoError(t, err)
	assert.Equal(t, board.DefaultLayout(), l)
}
