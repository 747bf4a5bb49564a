package config

import (
	"os"
	"path/filepath"
	"testing"

	"connect4/game"
	"connect4/meta"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := Load(noEnvFile(t))

		require.NoError(t, err)
		require.Equal(t, meta.DEFAULT_COLUMNS, c.Columns)
		require.Equal(t, meta.DEFAULT_ROWS, c.Rows)
		require.Equal(t, meta.DEFAULT_DEPTH, c.Depth)
		require.Equal(t, game.Yellow, c.AIColor)
		require.Equal(t, searcher.PenalizeDraws, c.DrawPolicy)
		require.Equal(t, 1, c.Goroutines)
		require.Zero(t, c.Seed)
		require.Equal(t, zerolog.InfoLevel, c.LogLevel)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CONNECT4_COLUMNS", "9")
		t.Setenv("CONNECT4_ROWS", "8")
		t.Setenv("CONNECT4_DEPTH", "3")
		t.Setenv("CONNECT4_AI_COLOR", "red")
		t.Setenv("CONNECT4_DRAW_POLICY", "neutral")
		t.Setenv("CONNECT4_GOROUTINES", "4")
		t.Setenv("CONNECT4_SEED", "42")
		t.Setenv("LOG_LEVEL", "debug")

		c, err := Load(noEnvFile(t))

		require.NoError(t, err)
		require.Equal(t, Config{
			Columns:    9,
			Rows:       8,
			Depth:      3,
			AIColor:    game.Red,
			DrawPolicy: searcher.NeutralDraws,
			Goroutines: 4,
			Seed:       42,
			LogLevel:   zerolog.DebugLevel,
		}, c)
	})

	t.Run("env file fills unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CONNECT4_DEPTH=2\nCONNECT4_ROWS=5\n"), 0644))
		t.Setenv("CONNECT4_ROWS", "4")
		// godotenv exports what it reads; register the key so it is restored afterwards
		t.Setenv("CONNECT4_DEPTH", "")
		require.NoError(t, os.Unsetenv("CONNECT4_DEPTH"))

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 2, c.Depth)
		require.Equal(t, 4, c.Rows, "Variables already set should win over the file")
	})

	t.Run("malformed integers fall back to defaults", func(t *testing.T) {
		t.Setenv("CONNECT4_DEPTH", "deep")

		c, err := Load(noEnvFile(t))

		require.NoError(t, err)
		require.Equal(t, meta.DEFAULT_DEPTH, c.Depth)
	})

	t.Run("unknown names are rejected", func(t *testing.T) {
		for key, value := range map[string]string{
			"CONNECT4_AI_COLOR":    "green",
			"CONNECT4_DRAW_POLICY": "ignore",
			"LOG_LEVEL":            "loud",
		} {
			t.Setenv(key, value)
			_, err := Load(noEnvFile(t))
			require.ErrorIs(t, err, ErrInvalidConfig, "%s=%s", key, value)
			t.Setenv(key, "")
		}
	})

	t.Run("impossible values are rejected", func(t *testing.T) {
		t.Setenv("CONNECT4_DEPTH", "0")
		t.Setenv("CONNECT4_GOROUTINES", "-2")

		_, err := Load(noEnvFile(t))

		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorContains(t, err, "depth must be positive")
		require.ErrorContains(t, err, "goroutines must be positive")
	})
}

func TestValidate(t *testing.T) {
	valid := Config{Columns: 7, Rows: 6, Depth: 1, AIColor: game.Red, Goroutines: 1}
	require.NoError(t, valid.Validate())

	noComputer := valid
	noComputer.AIColor = game.None
	require.ErrorIs(t, noComputer.Validate(), ErrInvalidConfig)

	flat := valid
	flat.Rows = 0
	require.ErrorIs(t, flat.Validate(), ErrInvalidConfig)
}

func TestSearchOptions(t *testing.T) {
	c := Config{Columns: 7, Rows: 6, Depth: 2, AIColor: game.Red, DrawPolicy: searcher.NeutralDraws, Goroutines: 2, Seed: 1}

	m := searcher.NewMinimax(c.SearchOptions()...)

	require.Equal(t, game.Red, m.Identity())
	require.Equal(t, 2, m.Depth())
}
