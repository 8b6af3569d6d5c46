package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cricklet/chesscore/internal/board"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig([]string{})
	require.True(t, IsNil(err), err.Error())

	assert.Equal(t, board.StartingFen, c.Fen)
	assert.Equal(t, 4, c.Depth)
	assert.Equal(t, 1, c.Workers)
	assert.False(t, c.Divide)
	assert.Empty(t, c.Moves)
}

func TestLoadConfigFlagsAndEnv(t *testing.T) {
	t.Setenv("CHESSCORE_WORKERS", "8")
	t.Setenv("CHESSCORE_LOG_LEVEL", "debug")

	c, err := loadConfig([]string{"--depth", "2", "--divide", "--moves", "e2e4,e7e5"})
	require.True(t, IsNil(err), err.Error())

	assert.Equal(t, 2, c.Depth)
	assert.True(t, c.Divide)
	assert.Equal(t, []string{"e2e4", "e7e5"}, c.Moves)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfigRejectsNegativeDepth(t *testing.T) {
	_, err := loadConfig([]string{"--depth", "-1"})
	assert.False(t, IsNil(err))
}

func TestPosition(t *testing.T) {
	b, err := position(config{
		Fen:      board.StartingFen,
		Moves:    []string{"e2e4", "e7e5", "g1f3"},
		Validate: true,
	})
	require.True(t, IsNil(err), err.Error())
	assert.Equal(t, 3, b.Ply())
	assert.Equal(t, 2, b.FullmoveNumber())

	_, err = position(config{Fen: board.StartingFen, Moves: []string{"e2e5"}})
	assert.False(t, IsNil(err))

	_, err = position(config{Fen: "8/8 w"})
	assert.False(t, IsNil(err))
}

func TestRun(t *testing.T) {
	NewLogger("error", false)

	err := run(context.Background(), config{Fen: board.StartingFen, Depth: 2})
	assert.True(t, IsNil(err), err.Error())

	err = run(context.Background(), config{Fen: board.StartingFen, Depth: 2, Divide: true, Workers: 2})
	assert.True(t, IsNil(err), err.Error())

	err = run(context.Background(), config{Fen: board.StartingFen, Depth: 3, Hash: true})
	assert.True(t, IsNil(err), err.Error())

	err = run(context.Background(), config{Fen: board.StartingFen, Depth: 2, Divide: true, Moves: []string{"e2e4"}, Hash: true, Workers: 2})
	assert.True(t, IsNil(err), err.Error())

	err = run(context.Background(), config{Fen: board.StartingFen, Depth: 2, Moves: []string{"e2e5"}})
	assert.False(t, IsNil(err))
}

func TestRunMainExitCodes(t *testing.T) {
	NewLogger("error", false)

	assert.Equal(t, 0, runMain([]string{"--depth", "1", "--log-level", "error"}))
	assert.Equal(t, 1, runMain([]string{"--depth", "1", "--moves", "e2e5", "--log-level", "error"}))
	assert.Equal(t, 2, runMain([]string{"--depth", "-1"}))

	dir := t.TempDir()
	assert.Equal(t, 1, runMain([]string{"--depth", "1", "--moves", "e2e5", "--log-level", "error", "--cpuprofile", dir}))
	assert.FileExists(t, filepath.Join(dir, "cpu.pprof"))
}
