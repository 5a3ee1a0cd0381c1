// Package game holds the rules of play: board setup, the draft and slide
// operations, and the bookkeeping that turns a sequence of moves into
// scores. State is immutable by convention - every operation on it returns
// a new copy rather than mutating the receiver, the same discipline the
// Risk engine this is descended from used for its GameState.
package game

import (
	"golang.org/x/exp/rand"

	"github.com/jthemphill/htmf/bitboard"
	"github.com/jthemphill/htmf/board"
)

// NumPlayers is fixed at two; the draft and turn-order arithmetic below is
// only correct for this count.
const NumPlayers = 2

// PenguinsPerPlayer is how many penguins each player places during the
// draft.
const PenguinsPerPlayer = 2

// NoPlayer marks a terminal state: nobody is on the clock.
const NoPlayer = -1

const (
	oneFishCells   = 30
	twoFishCells   = 20
	threeFishCells = 10
)

// Phase distinguishes the draft from ordinary play.
type Phase int

const (
	Drafting Phase = iota
	Playing
)

// State is a complete, self-contained snapshot of a game in progress. It
// is small and copy-free of pointers, so passing it by value (as every
// method here does) is cheap.
type State struct {
	Claimed  [NumPlayers]bitboard.Board
	Penguins [NumPlayers]bitboard.Board
	Fish     [board.NumCells]int8
	Scores   [NumPlayers]int
	Turn     int
	Phase    Phase
	Active   int
}

// New deals a fresh board (30 one-fish tiles, 20 two-fish, 10 three-fish,
// shuffled by seed) and opens the draft with player 0 to act.
func New(seed uint64) State {
	var fish [board.NumCells]int8
	for i := 0; i < oneFishCells; i++ {
		fish[i] = 1
	}
	for i := oneFishCells; i < oneFishCells+twoFishCells; i++ {
		fish[i] = 2
	}
	for i := oneFishCells + twoFishCells; i < board.NumCells; i++ {
		fish[i] = 3
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(fish), func(i, j int) {
		fish[i], fish[j] = fish[j], fish[i]
	})

	return State{
		Fish:   fish,
		Phase:  Drafting,
		Active: 0,
	}
}

// IsDrafting reports whether the draft is still in progress.
func (s State) IsDrafting() bool {
	return s.Phase == Drafting
}

// GameOver reports whether play has ended: no player holds a penguin with
// a legal move.
func (s State) GameOver() bool {
	return s.Phase == Playing && s.Active == NoPlayer
}

// ActivePlayer returns the player on the clock, and false if the game has
// ended.
func (s State) ActivePlayer() (int, bool) {
	if s.GameOver() {
		return NoPlayer, false
	}
	return s.Active, true
}

// NumFish returns the fish count remaining to be claimed at c, or zero if
// c has already been claimed.
func (s State) NumFish(c board.Cell) int8 {
	return s.Fish[c]
}

// draftPlayer returns the player who acts on the given draft turn, using a
// snake order: player 0 drafts first and last, so it starts play after
// the draft ends.
func draftPlayer(turn int) int {
	group, pos := turn/NumPlayers, turn%NumPlayers
	if group%2 == 1 {
		pos = NumPlayers - 1 - pos
	}
	return pos
}

// totalDraftTurns is how many placements the draft takes in all.
const totalDraftTurns = NumPlayers * PenguinsPerPlayer
