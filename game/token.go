package game

// Token is a single grid position. Y counts from the bottom row.
type Token struct {
	X     int
	Y     int
	Owner Player
}

func (t Token) IsSet() bool {
	return t.Owner != None
}

func (t *Token) Reset() {
	t.Owner = None
}

func (t *Token) set(p Player) {
	t.Owner = p
}
