// Package engine ties the board rules, playout policy, and search tree
// together into the single stateful object a host actually talks to: one
// game in progress, with a persistent MCTS tree pondering it between
// moves. It owns state and tree jointly and advances them together, the
// same responsibility the Risk engine's local.go gave a single struct.
package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/jthemphill/htmf/board"
	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/searcher"
)

// Engine is a single game in progress plus the search tree pondering it.
// No operation may be called re-entrantly from inside another; in
// particular a host must not call back into the engine from within a
// callback it ran during Playout.
type Engine struct {
	state game.State
	tree  *searcher.MCTS
}

// New creates a fresh game with a shuffled fish assignment, seeded for
// both the shuffle and every playout the tree will later run.
func New(seed uint64) *Engine {
	state := game.New(seed)
	log.Debug().Uint64("seed", seed).Msg("new game")
	return &Engine{
		state: state,
		tree:  searcher.New(state, searcher.WithSeed(seed)),
	}
}

func validPlayer(p int) error {
	if p < 0 || p >= game.NumPlayers {
		return ErrOutOfRange
	}
	return nil
}

func validCell(c board.Cell) error {
	if c < 0 || int(c) >= board.NumCells {
		return ErrOutOfRange
	}
	return nil
}

// NumFish reports the fish remaining to be claimed at cell, or 0 if it's
// already been claimed.
func (e *Engine) NumFish(cell board.Cell) (int8, error) {
	if err := validCell(cell); err != nil {
		return 0, err
	}
	return e.state.NumFish(cell), nil
}

// Score reports player's current score.
func (e *Engine) Score(player int) (int, error) {
	if err := validPlayer(player); err != nil {
		return 0, err
	}
	return e.state.Scores[player], nil
}

// Penguins lists the cells player currently has a penguin on, ascending.
func (e *Engine) Penguins(player int) ([]int, error) {
	if err := validPlayer(player); err != nil {
		return nil, err
	}
	return e.state.Penguins[player].Cells(), nil
}

// Claimed lists the cells player has claimed, ascending.
func (e *Engine) Claimed(player int) ([]int, error) {
	if err := validPlayer(player); err != nil {
		return nil, err
	}
	return e.state.Claimed[player].Cells(), nil
}

// ActivePlayer returns who is on the clock, and false if the game is
// over.
func (e *Engine) ActivePlayer() (int, bool) {
	return e.state.ActivePlayer()
}

// IsDrafting reports whether the draft is still in progress.
func (e *Engine) IsDrafting() bool {
	return e.state.IsDrafting()
}

// FinishedDrafting reports whether the draft has ended.
func (e *Engine) FinishedDrafting() bool {
	return !e.state.IsDrafting()
}

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool {
	return e.state.GameOver()
}

// Turn reports how many placements and slides have been played so far.
func (e *Engine) Turn() int {
	return e.state.Turn
}

// DraftableCells lists the one-fish tiles still open for placement.
func (e *Engine) DraftableCells() []int {
	return e.state.LegalDrafts().Cells()
}

// PossibleMoves lists the legal slide destinations from src for the
// current active player. It is empty when src holds none of that
// player's penguins.
func (e *Engine) PossibleMoves(src board.Cell) ([]int, error) {
	if err := validCell(src); err != nil {
		return nil, err
	}
	if p, ok := e.state.ActivePlayer(); !ok || !e.state.Penguins[p].Has(int(src)) {
		return []int{}, nil
	}
	return e.state.LegalMoves(src).Cells(), nil
}

// PlacePenguin commits a draft placement and reparents the search tree
// onto it. On an illegal placement, state and tree are left untouched.
func (e *Engine) PlacePenguin(dst board.Cell) error {
	return e.commit(game.PlaceMove(dst))
}

// MovePenguin commits a slide and reparents the search tree onto it. On
// an illegal slide, state and tree are left untouched.
func (e *Engine) MovePenguin(src, dst board.Cell) error {
	return e.commit(game.SlideMove(src, dst))
}

func (e *Engine) commit(m game.Move) error {
	next, err := e.state.Apply(m)
	if err != nil {
		log.Debug().Interface("move", m).Err(err).Msg("rejected move")
		return err
	}
	e.tree.Advance(m, next)
	e.state = next
	return nil
}

// Playout runs a single search iteration.
func (e *Engine) Playout() {
	e.tree.PlayoutOnce()
}

// PlayoutNTimes runs n search iterations in one chunk.
func (e *Engine) PlayoutNTimes(n int) {
	e.tree.PlayoutNTimes(n)
}

// TakeAction commits the tree's best move (highest visit count) as the
// AI's action. It is a no-op if the game has already ended.
func (e *Engine) TakeAction() error {
	if e.state.GameOver() {
		return nil
	}
	move, ok := e.tree.BestMove()
	if !ok {
		return nil
	}
	log.Debug().Interface("move", move).Int("visits", e.tree.Visits()).Msg("take action")
	return e.commit(move)
}

// PlaceInfo reports the root child's statistics for a candidate draft
// placement, or (0, 0) if that child hasn't been explored.
func (e *Engine) PlaceInfo(dst board.Cell) (visits int, rewards float64) {
	return e.moveInfo(game.PlaceMove(dst))
}

// MoveInfo reports the root child's statistics for a candidate slide, or
// (0, 0) if that child hasn't been explored.
func (e *Engine) MoveInfo(src, dst board.Cell) (visits int, rewards float64) {
	return e.moveInfo(game.SlideMove(src, dst))
}

func (e *Engine) moveInfo(m game.Move) (int, float64) {
	stats, ok := e.tree.ChildStats()[m]
	if !ok {
		return 0, 0
	}
	return stats.Visits, stats.Rewards
}

// ChildStats reports every explored root move's visit count and
// accumulated reward, keyed by move. It backs a thinking-progress
// display that wants the whole move-score table at once rather than one
// candidate at a time.
func (e *Engine) ChildStats() map[game.Move]searcher.Stats {
	return e.tree.ChildStats()
}

// Visits reports the root's total visit count: the total search work
// backing the current position.
func (e *Engine) Visits() int {
	return e.tree.Visits()
}

// TotalPlayouts reports cumulative playouts since the game started,
// including across reparents.
func (e *Engine) TotalPlayouts() int {
	return e.tree.TotalPlayouts()
}

// TreeSize reports the live node count in the search tree.
func (e *Engine) TreeSize() int {
	return e.tree.TreeSize()
}
