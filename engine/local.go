package engine

import (
	"errors"
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/player"

	"github.com/rs/zerolog/log"
)

var ErrNoProgress = errors.New("agent keeps choosing unplayable columns")

// maxRejections bounds how often one agent may pick an unplayable column in a row.
const maxRejections = 10

type Local struct {
	Game     *game.Game
	Agents   map[game.Player]player.Agent
	maxMoves int
}

func LocalEngine(g *game.Game, red, yellow player.Agent) *Local {
	if red == nil || yellow == nil {
		panic("need an agent for both players")
	}
	return &Local{
		Game: g,
		Agents: map[game.Player]player.Agent{
			game.Red:    red,
			game.Yellow: yellow,
		},
		maxMoves: meta.MAX_MOVES,
	}
}

// Run executes the game loop until a winner is found, the board is full or the
// move budget runs out. Agents are asked again after picking a full column.
func (e *Local) Run() (Result, error) {
	starting := e.Game.CurrentPlayer()
	startTime := time.Now()
	log.Info().Msgf("%s is starting on a %dx%d board", starting, e.Game.Columns(), e.Game.Rows())

	var moveMetrics []metrics.MoveMetric
	step, rejections := 1, 0
	for !e.Game.HasGameEnded() && step <= e.maxMoves {
		current := e.Game.CurrentPlayer()

		column, searchMetric, err := e.Agents[current].FindMove(e.Game.Snapshot())
		if err != nil {
			return e.result(starting, startTime, moveMetrics), fmt.Errorf("%s failed to find a move: %w", current, err)
		}

		placement, err := e.Game.PlayColumn(column)
		if errors.Is(err, game.ErrColumnFull) || errors.Is(err, game.ErrColumnOutOfRange) {
			rejections++
			log.Warn().Err(err).Msgf("%s picked an unplayable column, asking again", current)
			if rejections >= maxRejections {
				return e.result(starting, startTime, moveMetrics), fmt.Errorf("%w: %s", ErrNoProgress, current)
			}
			continue
		}
		if err != nil {
			return e.result(starting, startTime, moveMetrics), fmt.Errorf("failed to play column %d: %w", column, err)
		}
		rejections = 0

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current.String(),
			Column:       column,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("move %d: %s dropped into column %d at row %d", step, current, placement.Column, placement.Row)
		step++
	}

	result := e.result(starting, startTime, moveMetrics)
	switch e.Game.Status() {
	case game.Won:
		log.Info().Msgf("%s won after %d moves", result.Winner, result.Game.TotalMoves)
	case game.Drawn:
		log.Info().Msgf("draw after %d moves", result.Game.TotalMoves)
	default:
		log.Warn().Msgf("stopped after %d moves without a result", e.maxMoves)
	}
	return result, nil
}

func (e *Local) result(starting game.Player, startTime time.Time, moves []metrics.MoveMetric) Result {
	endTime := time.Now()
	winner := e.Game.Winner()
	return Result{
		Winner: winner,
		Game: metrics.GameMetric{
			StartingPlayer: starting.String(),
			Winner:         winner.String(),
			StartTime:      startTime,
			EndTime:        endTime,
			Duration:       endTime.Sub(startTime),
			TotalMoves:     len(moves),
		},
		Moves: moves,
	}
}
