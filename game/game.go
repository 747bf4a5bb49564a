package game

import "connect4/meta"

// Status is the lifecycle stage of a game.
type Status int

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "in progress"
	}
}

// Game owns the authoritative board and tells subscribers when it changes, so
// display logic stays out of game logic.
type Game struct {
	board   *Board
	grid    listeners[func()]
	winners listeners[func(Player)]
}

func NewGame(columns, rows int) *Game {
	g := &Game{board: NewBoard(columns, rows)}
	g.Reset()
	return g
}

func NewDefaultGame() *Game {
	return NewGame(meta.DEFAULT_COLUMNS, meta.DEFAULT_ROWS)
}

// OnGridUpdated registers fn to run after any cell changes through the game.
// The returned function removes the registration.
func (g *Game) OnGridUpdated(fn func()) (unsubscribe func()) {
	return g.grid.add(fn)
}

// OnWinnerAnnounced registers fn to run once per won game with the winner.
func (g *Game) OnWinnerAnnounced(fn func(winner Player)) (unsubscribe func()) {
	return g.winners.add(fn)
}

func (g *Game) Reset() {
	g.board.Reset()
	g.announceGridUpdate()
}

// PlayColumn drops a token for the current player. Full columns are reported
// with ErrColumnFull and leave the game untouched.
func (g *Game) PlayColumn(x int) (Placement, error) {
	placement, err := g.board.PlayColumn(x)
	if err != nil {
		return placement, err
	}

	g.announceGridUpdate()
	if placement.Won {
		g.announceWinner(placement.Player)
	}
	return placement, nil
}

// RemoveTopToken undoes the last drop in column x without notifying anyone.
func (g *Game) RemoveTopToken(x int) {
	g.board.RemoveTopToken(x)
}

// Snapshot returns an independent copy of the current board.
func (g *Game) Snapshot() *Board {
	return g.board.Clone()
}

func (g *Game) Status() Status {
	switch {
	case g.board.HasGameWinner():
		return Won
	case !g.board.SpotLeftOnBoard():
		return Drawn
	default:
		return InProgress
	}
}

func (g *Game) Columns() int            { return g.board.Columns() }
func (g *Game) Rows() int               { return g.board.Rows() }
func (g *Game) CurrentPlayer() Player   { return g.board.CurrentPlayer() }
func (g *Game) Token(x, y int) Token    { return g.board.Token(x, y) }
func (g *Game) Winner() Player          { return g.board.Winner() }
func (g *Game) HasGameEnded() bool      { return g.board.HasGameEnded() }
func (g *Game) SpotLeftOnBoard() bool   { return g.board.SpotLeftOnBoard() }
func (g *Game) IsOutside(x, y int) bool { return g.board.IsOutside(x, y) }
func (g *Game) LegalMoves() []int       { return g.board.LegalMoves() }
func (g *Game) String() string          { return g.board.String() }

func (g *Game) announceGridUpdate() {
	for _, fn := range g.grid.snapshot() {
		fn()
	}
}

func (g *Game) announceWinner(winner Player) {
	for _, fn := range g.winners.snapshot() {
		fn(winner)
	}
}

type listener[F any] struct {
	id int
	fn F
}

type listeners[F any] struct {
	nextID  int
	entries []listener[F]
}

func (l *listeners[F]) add(fn F) func() {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	return func() {
		for i, entry := range l.entries {
			if entry.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

// snapshot lets callbacks unsubscribe while the list is being walked.
func (l *listeners[F]) snapshot() []F {
	fns := make([]F, len(l.entries))
	for i, entry := range l.entries {
		fns[i] = entry.fn
	}
	return fns
}
