package board

import "errors"

// maxGamePlies bounds the history a single game can hold.
const maxGamePlies = 1024

// ErrGameTooLong is returned by Push when the game move limit is reached.
var ErrGameTooLong = errors.New("game move limit reached")

// Game tracks a position together with the move history that produced it.
// Moves are validated on the way in, and the history allows taking moves
// back with Pop.
type Game struct {
	startFEN  string
	pos       *Position
	moves     []Move
	undos     []UndoInfo
	basePlies int // Half-moves implied by the start position's counters
}

// NewGame starts a game from the standard starting position.
func NewGame() *Game {
	g, _ := NewGameFromFEN(StartFEN)
	return g
}

// NewGameFromFEN starts a game from an arbitrary position.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	base := (pos.FullMoveNumber - 1) * 2
	if pos.SideToMove == Black {
		base++
	}

	return &Game{
		startFEN:  pos.FEN(),
		pos:       pos,
		basePlies: base,
	}, nil
}

// Position returns the current position.
// Modify it only through the Game, or the history will desync.
func (g *Game) Position() *Position {
	return g.pos
}

// StartFEN returns the canonical FEN of the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Push applies a move after validating it against the legal move list.
func (g *Game) Push(m Move) error {
	if len(g.moves) >= maxGamePlies {
		return ErrGameTooLong
	}

	undo, err := g.pos.ApplyMove(m)
	if err != nil {
		return err
	}

	g.moves = append(g.moves, m)
	g.undos = append(g.undos, undo)
	return nil
}

// PushUCI parses a move in UCI notation against the current position and
// applies it.
func (g *Game) PushUCI(s string) error {
	m, err := ParseMove(s, g.pos)
	if err != nil {
		return err
	}
	return g.Push(m)
}

// PushSAN parses a move in Standard Algebraic Notation against the current
// position and applies it.
func (g *Game) PushSAN(s string) error {
	m, err := ParseSAN(s, g.pos)
	if err != nil {
		return err
	}
	return g.Push(m)
}

// Pop takes back the last move.
// Returns NoMove and false when no moves have been played.
func (g *Game) Pop() (Move, bool) {
	n := len(g.moves)
	if n == 0 {
		return NoMove, false
	}

	m := g.moves[n-1]
	g.pos.UnmakeMove(m, g.undos[n-1])
	g.moves = g.moves[:n-1]
	g.undos = g.undos[:n-1]
	return m, true
}

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// UCIMoves returns the move history in UCI notation.
func (g *Game) UCIMoves() []string {
	out := make([]string, len(g.moves))
	for i, m := range g.moves {
		out[i] = m.String()
	}
	return out
}

// SANMoves returns the move history in Standard Algebraic Notation.
func (g *Game) SANMoves() []string {
	start, _ := ParseFEN(g.startFEN)
	return MovesToSAN(start, g.moves)
}

// Plies returns the number of half-moves since move one of the game,
// including those implied by the start position's move counters.
func (g *Game) Plies() int {
	return g.basePlies + len(g.moves)
}
