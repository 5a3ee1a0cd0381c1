package bots

import (
	"golang.org/x/exp/rand"

	"github.com/jthemphill/htmf/game"
)

// RandomBot samples uniformly among the legal actions available to the
// active player, the simplest possible opponent and the baseline every
// other bot is measured against.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot builds a RandomBot seeded independently of the game it
// will play.
func NewRandomBot(seed uint64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

// TakeAction returns a uniformly random legal action for state's active
// player.
func (b *RandomBot) TakeAction(state game.State) (game.Move, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return game.Move{}, game.ErrIllegalMove
	}
	return actions[b.rng.Intn(len(actions))], nil
}
