// Package playout supplies the uniform-random rollout policy used to
// score unexplored leaves during search, and the scoring functions used
// to turn a state (terminal or not) into a reward.
package playout

import (
	"golang.org/x/exp/rand"

	"github.com/jthemphill/htmf/game"
)

// Rollout plays s forward to a terminal state by choosing uniformly among
// the legal actions at every step, using rng as the source of randomness.
// It never mutates s; every intermediate state is a fresh copy.
func Rollout(s game.State, rng *rand.Rand) game.State {
	for !s.GameOver() {
		moves := s.LegalActions()
		if len(moves) == 0 {
			// No legal action left: treat the state as terminal.
			break
		}
		m := moves[rng.Intn(len(moves))]
		next, err := s.Apply(m)
		if err != nil {
			// LegalActions only ever returns moves Apply accepts; a
			// mismatch here is a bug in one of the two, not a runtime
			// condition callers should handle.
			panic(err)
		}
		s = next
	}
	return s
}
