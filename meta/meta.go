// meta/meta.go
package meta

// DEFAULT_COLUMNS defines the number of columns of a standard board.
const DEFAULT_COLUMNS = 7

// DEFAULT_ROWS defines the number of rows of a standard board.
const DEFAULT_ROWS = 6

// CONNECT defines how many tokens in a line win the game.
const CONNECT = 4

// DEFAULT_DEPTH defines the number of plies minimax looks ahead.
const DEFAULT_DEPTH = 5

// DRAW_PENALTY defines the score of a filled board when draws are penalized.
const DRAW_PENALTY = -1000

// MAX_MOVES bounds a local game loop.
const MAX_MOVES = 10000
