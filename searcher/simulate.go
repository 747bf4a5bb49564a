package searcher

import (
	"fmt"
	"strings"

	"connect4/game"
)

// Simulator applies a hypothetical move. undo must be called before the board
// passed in is used again; ok is false when the column cannot take a token.
type Simulator interface {
	Simulate(b *game.Board, column int) (next *game.Board, undo func(), ok bool)
	String() string
}

var (
	// CopyOnWrite plays on a fresh clone and never touches its input.
	CopyOnWrite Simulator = copyOnWrite{}
	// PlayAndUndo plays in place and removes the token again on undo.
	PlayAndUndo Simulator = playAndUndo{}
)

func noop() {}

type copyOnWrite struct{}

func (copyOnWrite) Simulate(b *game.Board, column int) (*game.Board, func(), bool) {
	if b.ColumnFull(column) {
		return nil, noop, false
	}
	next := b.Clone()
	if _, err := next.PlayColumn(column); err != nil {
		return nil, noop, false
	}
	return next, noop, true
}

func (copyOnWrite) String() string { return "copy" }

type playAndUndo struct{}

func (playAndUndo) Simulate(b *game.Board, column int) (*game.Board, func(), bool) {
	if _, err := b.PlayColumn(column); err != nil {
		return nil, noop, false
	}
	return b, func() { b.RemoveTopToken(column) }, true
}

func (playAndUndo) String() string { return "undo" }

func ParseSimulator(s string) (Simulator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy", "":
		return CopyOnWrite, nil
	case "undo":
		return PlayAndUndo, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSimulator, s)
}
