package game

import (
	"fmt"

	"connect4/meta"
)

// Board holds the grid, the player to move and the winner, if any.
// Columns fill bottom-up and the winner is set at most once.
type Board struct {
	columns int
	rows    int
	grid    []Token // indexed by x*rows + y
	current Player
	winner  Player
}

// Placement describes where a dropped token landed.
type Placement struct {
	Column int
	Row    int
	Player Player
	Won    bool
}

// NewBoard returns an empty board of the given size with the first player to move.
func NewBoard(columns, rows int) *Board {
	if columns < 1 || rows < 1 {
		panic(fmt.Sprintf("invalid board size %dx%d", columns, rows))
	}
	b := &Board{
		columns: columns,
		rows:    rows,
		grid:    make([]Token, columns*rows),
	}
	b.Reset()
	return b
}

func NewDefaultBoard() *Board {
	return NewBoard(meta.DEFAULT_COLUMNS, meta.DEFAULT_ROWS)
}

// Reset empties every cell, hands the move to First and clears the winner.
func (b *Board) Reset() {
	for x := 0; x < b.columns; x++ {
		for y := 0; y < b.rows; y++ {
			b.grid[b.index(x, y)] = Token{X: x, Y: y}
		}
	}
	b.current = First
	b.winner = None
}

// Clone returns a deep copy that shares no state with b.
func (b *Board) Clone() *Board {
	grid := make([]Token, len(b.grid))
	copy(grid, b.grid)
	return &Board{
		columns: b.columns,
		rows:    b.rows,
		grid:    grid,
		current: b.current,
		winner:  b.winner,
	}
}

func (b *Board) Columns() int {
	return b.columns
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) CurrentPlayer() Player {
	return b.current
}

// Token returns the cell at (x, y). Callers must stay inside the board.
func (b *Board) Token(x, y int) Token {
	return b.grid[b.index(x, y)]
}

// Winner returns the winning identity, or None.
func (b *Board) Winner() Player {
	return b.winner
}

func (b *Board) HasGameWinner() bool {
	return b.winner != None
}

func (b *Board) HasGameEnded() bool {
	return b.HasGameWinner() || !b.SpotLeftOnBoard()
}

// SpotLeftOnBoard reports whether any cell is empty. The top row is scanned first
// since it is the last to fill.
func (b *Board) SpotLeftOnBoard() bool {
	for y := b.rows - 1; y >= 0; y-- {
		for x := 0; x < b.columns; x++ {
			if !b.grid[b.index(x, y)].IsSet() {
				return true
			}
		}
	}
	return false
}

func (b *Board) IsOutside(x, y int) bool {
	if x < 0 || x >= b.columns {
		return true
	}
	if y < 0 || y >= b.rows {
		return true
	}
	return false
}

// ColumnFull reports whether column x can take no more tokens.
// Columns outside the board count as full.
func (b *Board) ColumnFull(x int) bool {
	if x < 0 || x >= b.columns {
		return true
	}
	return b.grid[b.index(x, b.rows-1)].IsSet()
}

// LegalMoves lists the columns that are not full, in ascending order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, b.columns)
	for x := 0; x < b.columns; x++ {
		if !b.ColumnFull(x) {
			moves = append(moves, x)
		}
	}
	return moves
}

// PlayColumn drops a token for the current player into column x.
// After a win the current player is kept; otherwise the turn passes.
func (b *Board) PlayColumn(x int) (Placement, error) {
	if x < 0 || x >= b.columns {
		return Placement{}, fmt.Errorf("%w: %d", ErrColumnOutOfRange, x)
	}
	if b.winner != None {
		return Placement{}, ErrGameOver
	}

	for y := 0; y < b.rows; y++ {
		token := &b.grid[b.index(x, y)]
		if token.IsSet() {
			continue
		}

		token.set(b.current)
		placement := Placement{Column: x, Row: y, Player: b.current}

		if b.doesTokenWin(*token) {
			b.winner = b.current
			placement.Won = true
			return placement, nil
		}

		b.current = b.current.Opponent()
		return placement, nil
	}
	return Placement{}, fmt.Errorf("%w: %d", ErrColumnFull, x)
}

// RemoveTopToken clears the highest token of column x and gives the move back to
// its owner, undoing the PlayColumn that placed it. Empty columns are left alone.
func (b *Board) RemoveTopToken(x int) {
	if x < 0 || x >= b.columns {
		return
	}
	for y := b.rows - 1; y >= 0; y-- {
		token := &b.grid[b.index(x, y)]
		if !token.IsSet() {
			continue
		}
		b.current = token.Owner
		b.winner = None
		token.Reset()
		return
	}
}

func (b *Board) index(x, y int) int {
	return x*b.rows + y
}

// doesTokenWin counts same-owner neighbours on both sides of each axis.
// The token itself is not counted, hence CONNECT-1.
func (b *Board) doesTokenWin(token Token) bool {
	axes := [][2]int{
		{0, 1},  // vertical
		{1, 0},  // horizontal
		{1, 1},  // rising diagonal
		{1, -1}, // falling diagonal
	}
	for _, axis := range axes {
		dx, dy := axis[0], axis[1]
		count := b.amountInDirection(token, dx, dy) + b.amountInDirection(token, -dx, -dy)
		if count >= meta.CONNECT-1 {
			return true
		}
	}
	return false
}

func (b *Board) amountInDirection(token Token, dx, dy int) int {
	x, y := token.X+dx, token.Y+dy
	if b.IsOutside(x, y) {
		return 0
	}
	next := b.grid[b.index(x, y)]
	if next.Owner != token.Owner {
		return 0
	}
	return b.amountInDirection(next, dx, dy) + 1
}
