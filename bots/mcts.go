package bots

import (
	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/searcher"
)

// MCTSBot wraps the shared Monte Carlo searcher as a Bot, for self-play
// and benchmarking against RandomBot and MinimaxBot. Unlike engine.Engine
// it builds a fresh tree for every call rather than keeping one pondering
// between moves, since a Bot only ever sees state at the moment it must
// act.
type MCTSBot struct {
	seed     uint64
	playouts int
}

// NewMCTSBot builds an MCTSBot that runs playouts simulations from
// scratch before answering each TakeAction call.
func NewMCTSBot(seed uint64, playouts int) *MCTSBot {
	return &MCTSBot{seed: seed, playouts: playouts}
}

// TakeAction runs a fresh search from state and returns its most-visited
// root move.
func (b *MCTSBot) TakeAction(state game.State) (game.Move, error) {
	tree := searcher.New(state, searcher.WithSeed(b.seed))
	tree.PlayoutNTimes(b.playouts)

	move, ok := tree.BestMove()
	if !ok {
		return game.Move{}, game.ErrIllegalMove
	}
	return move, nil
}
