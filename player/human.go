package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connect4/experiments/metrics"
	"connect4/game"
)

var (
	ErrNoInput = errors.New("no more input")
	ErrQuit    = errors.New("player quit")
)

// Human asks for columns on a text stream. Columns are numbered from 1 for people.
type Human struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// FindMove keeps asking until it reads a column that can take a token.
func (h *Human) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	for {
		fmt.Fprintf(h.out, "%s to move, pick a column (1-%d) or q to quit: ", b.CurrentPlayer(), b.Columns())
		if !h.scanner.Scan() {
			if err := h.scanner.Err(); err != nil {
				return -1, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
			}
			return -1, metrics.SearchMetric{}, ErrNoInput
		}

		input := strings.TrimSpace(h.scanner.Text())
		if strings.EqualFold(input, "q") || strings.EqualFold(input, "quit") {
			return -1, metrics.SearchMetric{}, ErrQuit
		}
		n, err := strconv.Atoi(input)
		if err != nil || b.IsOutside(n-1, 0) {
			fmt.Fprintf(h.out, "%q is not a column\n", input)
			continue
		}
		if b.ColumnFull(n - 1) {
			fmt.Fprintf(h.out, "column %d is full\n", n)
			continue
		}
		return n - 1, metrics.SearchMetric{}, nil
	}
}
