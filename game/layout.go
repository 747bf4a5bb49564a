package game

import (
	"fmt"
	"strings"
)

// String renders the grid top row first, one line per row, using player glyphs.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.rows - 1; y >= 0; y-- {
		for x := 0; x < b.columns; x++ {
			sb.WriteString(b.grid[b.index(x, y)].Owner.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads a layout in the format produced by String. Blank lines and
// spaces are ignored. next is the player to move unless the layout already
// contains a four-in-a-row, in which case its owner is the winner and keeps the turn.
func ParseBoard(layout string, next Player) (*Board, error) {
	if next != Red && next != Yellow {
		return nil, fmt.Errorf("%w: player to move is %s", ErrInvalidLayout, next)
	}

	var lines []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	rows, columns := len(lines), len(lines[0])
	b := NewBoard(columns, rows)
	for i, line := range lines {
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, i+1, len(line), columns)
		}
		y := rows - 1 - i
		for x, glyph := range line {
			owner, err := ParsePlayer(string(glyph))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
			}
			b.grid[b.index(x, y)].set(owner)
		}
	}

	for x := 0; x < columns; x++ {
		for y := 1; y < rows; y++ {
			if b.Token(x, y).IsSet() && !b.Token(x, y-1).IsSet() {
				return nil, fmt.Errorf("%w: floating token at column %d row %d", ErrInvalidLayout, x, y)
			}
		}
	}

	b.current = next
	for _, token := range b.grid {
		if !token.IsSet() || !b.doesTokenWin(token) {
			continue
		}
		if b.winner != None && b.winner != token.Owner {
			return nil, fmt.Errorf("%w: both players have four in a row", ErrInvalidLayout)
		}
		b.winner = token.Owner
		b.current = token.Owner
	}
	return b, nil
}
