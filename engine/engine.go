package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Result struct {
	Winner game.Player // None for a draw or an unfinished game
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

type Engine interface {
	// Run plays until the game ends or the move budget is spent
	Run() (Result, error)
}
