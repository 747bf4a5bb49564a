package searcher

import (
	"errors"
	"fmt"
	"strings"

	"connect4/game"
	"connect4/meta"
)

// Scores of a filled board under each DrawPolicy.
const DrawPenalty = meta.DRAW_PENALTY
const DrawNeutral = 0

var (
	ErrNotAITurn        = errors.New("not the computer's turn")
	ErrUnknownPolicy    = errors.New("unknown draw policy")
	ErrUnknownSimulator = errors.New("unknown simulator")
)

// DrawPolicy decides how a board that filled up without a winner is scored.
type DrawPolicy int

const (
	PenalizeDraws DrawPolicy = iota
	NeutralDraws
)

func (p DrawPolicy) Score() int {
	if p == NeutralDraws {
		return DrawNeutral
	}
	return DrawPenalty
}

func (p DrawPolicy) String() string {
	if p == NeutralDraws {
		return "neutral"
	}
	return "penalize"
}

func ParseDrawPolicy(s string) (DrawPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "penalize", "penalty":
		return PenalizeDraws, nil
	case "neutral":
		return NeutralDraws, nil
	}
	return PenalizeDraws, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Score is the minimax value of dropping into Column.
type Score struct {
	Column int
	Value  int
}

type Searcher interface {
	Search(b *game.Board) (Result, error)
}
