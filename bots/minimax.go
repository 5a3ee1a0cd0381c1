package bots

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/rules"
)

// MinimaxBot looks ply+1 slides ahead (its own slide plus ply further
// slides) and picks the one that maximizes its
// own score minus the opponent's, the classic two-player negamax margin.
// It drafts randomly: every draft tile is worth exactly one fish, so
// there is nothing for a fixed-depth search to differentiate there.
type MinimaxBot struct {
	ply int
	rng *rand.Rand
}

// NewMinimaxBot builds a MinimaxBot that searches ply+1 slides deep.
func NewMinimaxBot(seed uint64, ply int) *MinimaxBot {
	return &MinimaxBot{ply: ply, rng: rand.New(rand.NewSource(seed))}
}

// TakeAction returns a random draft placement, or the best slide found by
// a negamax search ply+1 slides deep.
func (b *MinimaxBot) TakeAction(state game.State) (game.Move, error) {
	if state.IsDrafting() {
		actions := state.LegalActions()
		if len(actions) == 0 {
			return game.Move{}, game.ErrIllegalMove
		}
		return actions[b.rng.Intn(len(actions))], nil
	}

	_, move := bestMove(state, b.ply)
	return move, nil
}

// bestMove returns the scoreboard reached by the best line found, and the
// move that leads to it, from the perspective of state's active player.
func bestMove(state game.State, ply int) ([game.NumPlayers]int, game.Move) {
	player, ok := state.ActivePlayer()
	if !ok {
		return state.Scores, game.Move{}
	}

	actions := state.LegalActions()
	var best game.Move
	var bestScores [game.NumPlayers]int
	bestMargin := math.Inf(-1)
	for _, mv := range actions {
		scores := scoreMove(state, mv, ply)
		margin := negamaxMargin(scores, player)
		if margin > bestMargin {
			bestMargin = margin
			best = mv
			bestScores = scores
		}
	}
	return bestScores, best
}

// scoreMove plays mv and, if ply allows, keeps searching from whoever is
// active next; otherwise it stops and reports the scoreboard as it stands.
// It prunes any pocket mv just sealed a lone penguin into first, so a
// forced shuffle through dead territory doesn't eat into the plies left
// for the decision that actually matters.
func scoreMove(state game.State, mv game.Move, ply int) [game.NumPlayers]int {
	next, err := state.Apply(mv)
	if err != nil {
		panic(err)
	}
	next, _ = rules.Prune(next)
	if ply <= 0 || next.GameOver() {
		return next.Scores
	}
	scores, _ := bestMove(next, ply-1)
	return scores
}

// negamaxMargin is player's score minus the other player's, the two-player
// specialization of the original's "best opposing score" comparison.
func negamaxMargin(scores [game.NumPlayers]int, player int) float64 {
	other := 1 - player
	return float64(scores[player] - scores[other])
}
