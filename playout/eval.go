package playout

import "github.com/jthemphill/htmf/game"

// Evaluate scores a state from one player's perspective. Reward and
// MaterialEvaluate both have this shape; the searcher calls Reward
// directly on each rollout's terminal state and takes no Evaluate value.
type Evaluate func(s game.State, player int) float64

// Reward turns a terminal state into the canonical {0, 0.5, 1} outcome
// MCTS backpropagation expects: a win, a draw, or a loss for player.
func Reward(s game.State, player int) float64 {
	mine := s.Scores[player]
	best := 0
	for p := 0; p < game.NumPlayers; p++ {
		if p == player {
			continue
		}
		if s.Scores[p] > best {
			best = s.Scores[p]
		}
	}
	switch {
	case mine > best:
		return 1.0
	case mine == best:
		return 0.5
	default:
		return 0.0
	}
}

// MaterialEvaluate scores a state (terminal or not) by the margin between
// player's current score and their best-scoring opponent, the same
// negamax comparison the depth-limited search bot uses to rank moves
// before the game has actually ended.
func MaterialEvaluate(s game.State, player int) float64 {
	mine := s.Scores[player]
	best := 0
	for p := 0; p < game.NumPlayers; p++ {
		if p == player {
			continue
		}
		if s.Scores[p] > best {
			best = s.Scores[p]
		}
	}
	return float64(mine - best)
}
