package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"connect4/game"
	"connect4/meta"
	"connect4/searcher"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Columns    int
	Rows       int
	Depth      int
	AIColor    game.Player
	DrawPolicy searcher.DrawPolicy
	Goroutines int
	Seed       uint64 // 0 seeds from the clock
	LogLevel   zerolog.Level
}

// Load reads the environment, after merging in the given .env files (".env" when
// none are named). Missing .env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			log.Debug().Msgf("no env file at %s", file)
		}
	}

	aiColor, err := game.ParsePlayer(GetEnv("CONNECT4_AI_COLOR", game.Yellow.String()))
	if err != nil {
		return Config{}, fmt.Errorf("%w: CONNECT4_AI_COLOR: %w", ErrInvalidConfig, err)
	}
	drawPolicy, err := searcher.ParseDrawPolicy(GetEnv("CONNECT4_DRAW_POLICY", searcher.PenalizeDraws.String()))
	if err != nil {
		return Config{}, fmt.Errorf("%w: CONNECT4_DRAW_POLICY: %w", ErrInvalidConfig, err)
	}
	level, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", zerolog.InfoLevel.String()))
	if err != nil {
		return Config{}, fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalidConfig, err)
	}

	c := Config{
		Columns:    GetEnvAsInt("CONNECT4_COLUMNS", meta.DEFAULT_COLUMNS),
		Rows:       GetEnvAsInt("CONNECT4_ROWS", meta.DEFAULT_ROWS),
		Depth:      GetEnvAsInt("CONNECT4_DEPTH", meta.DEFAULT_DEPTH),
		AIColor:    aiColor,
		DrawPolicy: drawPolicy,
		Goroutines: GetEnvAsInt("CONNECT4_GOROUTINES", 1),
		Seed:       uint64(GetEnvAsInt("CONNECT4_SEED", 0)),
		LogLevel:   level,
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var problems *multierror.Error
	if c.Columns < 1 || c.Rows < 1 {
		problems = multierror.Append(problems, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Columns, c.Rows))
	}
	if c.Depth < 1 {
		problems = multierror.Append(problems, fmt.Errorf("depth must be positive, got %d", c.Depth))
	}
	if c.Goroutines < 1 {
		problems = multierror.Append(problems, fmt.Errorf("goroutines must be positive, got %d", c.Goroutines))
	}
	if c.AIColor != game.Red && c.AIColor != game.Yellow {
		problems = multierror.Append(problems, fmt.Errorf("computer must play red or yellow, got %s", c.AIColor))
	}
	if problems.ErrorOrNil() == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, problems)
}

// SearchOptions configures a computer player from c.
func (c Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithIdentity(c.AIColor),
		searcher.WithDepth(c.Depth),
		searcher.WithDrawPolicy(c.DrawPolicy),
		searcher.WithGoroutines(c.Goroutines),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
