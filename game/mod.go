package game

import (
	"errors"
	"fmt"
	"strings"

	"connect4/utils"
)

// Player identifies the owner of a token, or None for an empty cell.
type Player uint8

const (
	None Player = iota
	Red
	Yellow
)

// First is the identity that moves first after a reset.
const First = Red

var (
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidLayout    = errors.New("invalid board layout")
	ErrUnknownPlayer    = errors.New("unknown player")
)

var playerNames = []string{"none", "red", "yellow"}
var playerGlyphs = []string{".", "R", "Y"}

// Opponent returns the other playing identity. None has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return None
	}
}

func (p Player) String() string {
	if int(p) < len(playerNames) {
		return playerNames[p]
	}
	return fmt.Sprintf("player(%d)", p)
}

// Glyph is the single character used for p in board layouts.
func (p Player) Glyph() string {
	if int(p) < len(playerGlyphs) {
		return playerGlyphs[p]
	}
	return "?"
}

// ParsePlayer accepts a player name ("red") or glyph ("R"), case-insensitively.
func ParsePlayer(s string) (Player, error) {
	s = strings.TrimSpace(s)
	if i := utils.FindIndex(playerNames, strings.ToLower(s)); i >= 0 {
		return Player(i), nil
	}
	if i := utils.FindIndex(playerGlyphs, strings.ToUpper(s)); i >= 0 {
		return Player(i), nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownPlayer, s)
}
