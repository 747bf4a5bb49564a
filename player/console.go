package player

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"connect4/game"
)

// Console redraws a game on every grid update and announces its end.
type Console struct {
	out         io.Writer
	game        *game.Game
	unsubscribe []func()
}

func NewConsole(out io.Writer, g *game.Game) *Console {
	c := &Console{out: out, game: g}
	c.unsubscribe = []func(){
		g.OnGridUpdated(c.render),
		g.OnWinnerAnnounced(c.announce),
	}
	return c
}

// Close stops listening to the game.
func (c *Console) Close() {
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil
}

func (c *Console) render() {
	var footer strings.Builder
	for x := 0; x < c.game.Columns(); x++ {
		footer.WriteString(strconv.Itoa((x + 1) % 10))
	}
	fmt.Fprintf(c.out, "\n%s%s\n", c.game.String(), footer.String())

	if c.game.Status() == game.Drawn {
		fmt.Fprintln(c.out, "the board is full, it's a draw")
	}
}

func (c *Console) announce(winner game.Player) {
	fmt.Fprintf(c.out, "%s wins!\n", winner)
}
