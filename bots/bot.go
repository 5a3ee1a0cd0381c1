// Package bots collects reference opponents implemented directly against
// game.State, independent of the search engine's persistent tree. They
// exist for benchmarking the MCTS searcher and for self-play, the same
// role RandomBot and MinimaxBot played against the original engine.
package bots

import "github.com/jthemphill/htmf/game"

// Bot picks the next action for whichever player is active in state.
// Callers are expected to check game.State.GameOver first: with no active
// player, RandomBot and MCTSBot return game.ErrIllegalMove and MinimaxBot
// returns the zero Move.
type Bot interface {
	TakeAction(state game.State) (game.Move, error)
}
