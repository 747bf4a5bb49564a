package player

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

// Computer plays the columns chosen by a minimax search.
type Computer struct {
	identity game.Player
	searcher searcher.Searcher
}

func NewComputer(options ...searcher.Option) *Computer {
	m := searcher.NewMinimax(options...)
	return &Computer{
		identity: m.Identity(),
		searcher: m,
	}
}

func (c *Computer) Identity() game.Player {
	return c.identity
}

func (c *Computer) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	result, err := c.searcher.Search(b)
	if err != nil {
		return -1, metrics.SearchMetric{}, err
	}
	return result.Column, result.Metric, nil
}
