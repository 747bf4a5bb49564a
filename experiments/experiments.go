package experiments

import (
	"errors"
	"fmt"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/player"
	"connect4/searcher"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

const NumGames = 10 // Per match up

var ErrUnknownPreset = errors.New("unknown experiment preset")

var presets = map[string]func() Setup{
	"depth":       DepthSetup,
	"draw-policy": DrawPolicySetup,
	"throughput":  ThroughputSetup,
}

func Preset(name string) (Setup, error) {
	preset, ok := presets[name]
	if !ok {
		return Setup{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	setup := preset()
	setup.applyDefaults()
	return setup, setup.Validate()
}

// DepthSetup pairs agents of increasing depth against a baseline at the default
// depth, once with each colour.
func DepthSetup() Setup {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.DEFAULT_DEPTH}
	setup := Setup{Name: "depth", Games: NumGames, Agents: []metrics.AgentConfig{baseline}}
	for depth := 1; depth <= meta.DEFAULT_DEPTH+1; depth++ {
		config := metrics.AgentConfig{ID: depth, Depth: depth}
		setup.Agents = append(setup.Agents, config)
		setup.MatchUps = append(setup.MatchUps, []int{baseline.ID, config.ID}, []int{config.ID, baseline.ID})
	}
	return setup
}

// DrawPolicySetup checks whether shunning draws changes results at equal depth.
func DrawPolicySetup() Setup {
	return Setup{
		Name:  "draw_policy",
		Games: NumGames,
		Agents: []metrics.AgentConfig{
			{ID: 1, Depth: meta.DEFAULT_DEPTH - 1, DrawPolicy: searcher.PenalizeDraws.String()},
			{ID: 2, Depth: meta.DEFAULT_DEPTH - 1, DrawPolicy: searcher.NeutralDraws.String()},
		},
	}
}

// ThroughputSetup measures nodes per second as root parallelism grows. Each
// matchup uses the same config for both players for similar game length.
func ThroughputSetup() Setup {
	setup := Setup{Name: "throughput", Games: 1}
	for i, goroutines := range []int{1, 2, 4, 8} {
		config := metrics.AgentConfig{ID: i + 1, Depth: meta.DEFAULT_DEPTH + 1, Goroutines: goroutines}
		setup.Agents = append(setup.Agents, config)
		setup.MatchUps = append(setup.MatchUps, []int{config.ID, config.ID})
	}
	return setup
}

// Run plays every match up of setup and stores the results under root. It
// returns the directory holding the result files.
func Run(setup Setup, root string) (string, error) {
	setup.applyDefaults()
	if err := setup.Validate(); err != nil {
		return "", err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchUp := range setup.MatchUps {
		config1 := setup.agent(matchUp[0])
		config2 := setup.agent(matchUp[1])

		log.Info().Msgf("starting matchup %d of %d between red=%+v and yellow=%+v...", mi+1, len(setup.MatchUps), config1, config2)

		for i := 0; i < setup.Games; i++ {
			result, err := runGame(setup, config1, config2, count)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++

			id := uuid.New()
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(setup.MatchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	writer, err := metrics.NewWriter(root, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	var result *multierror.Error
	result = multierror.Append(result, writer.WriteSetup(setup))
	result = multierror.Append(result, writer.WriteAgentConfigs(setup.Agents))
	result = multierror.Append(result, writer.WriteGameRecords(gameRecords))
	result = multierror.Append(result, writer.WriteMoveRecords(moveRecords))
	if err := result.ErrorOrNil(); err != nil {
		return writer.Dir(), err
	}

	log.Info().Msgf("stored %d games and %d moves in %s", len(gameRecords), len(moveRecords), writer.Dir())
	return writer.Dir(), nil
}

// runGame plays one game with config1 as red and config2 as yellow. The n-th
// game of a seeded setup always plays out the same way.
func runGame(setup Setup, config1, config2 metrics.AgentConfig, n int) (engine.Result, error) {
	red, err := createComputer(config1, game.Red, setup.Seed, n)
	if err != nil {
		return engine.Result{}, err
	}
	yellow, err := createComputer(config2, game.Yellow, setup.Seed, n)
	if err != nil {
		return engine.Result{}, err
	}

	e := engine.LocalEngine(game.NewGame(setup.Columns, setup.Rows), red, yellow)
	return e.Run()
}

func createComputer(config metrics.AgentConfig, identity game.Player, seed uint64, n int) (*player.Computer, error) {
	options, err := searchOptions(config)
	if err != nil {
		return nil, err
	}
	options = append(options, searcher.WithIdentity(identity))
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed+uint64(2*n)+uint64(identity)))
	}
	return player.NewComputer(options...), nil
}
