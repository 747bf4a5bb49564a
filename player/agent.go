package player

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

// Agent picks a column for whoever is to move on b. Agents may modify b.
type Agent interface {
	// FindMove returns a column and the search metrics (if collected) behind it
	FindMove(b *game.Board) (int, metrics.SearchMetric, error)
}
