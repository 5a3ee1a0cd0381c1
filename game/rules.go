package game

import (
	"github.com/jthemphill/htmf/bitboard"
	"github.com/jthemphill/htmf/board"
)

func (s State) occupiedOrClaimed(c board.Cell) bool {
	all := s.Penguins[0].Union(s.Penguins[1]).Union(s.Claimed[0]).Union(s.Claimed[1])
	return all.Has(int(c))
}

// LegalDrafts returns the cells the active player may place a penguin on:
// every untouched single-fish tile.
func (s State) LegalDrafts() bitboard.Board {
	var legal bitboard.Board
	if s.Phase != Drafting {
		return legal
	}
	for i := 0; i < board.NumCells; i++ {
		c := board.Cell(i)
		if s.Fish[c] == 1 && !s.occupiedOrClaimed(c) {
			legal = legal.Set(i)
		}
	}
	return legal
}

// LegalMoves returns the cells a penguin on src may slide to: every cell
// reachable by a straight run of unclaimed, unoccupied tiles in one of the
// six directions.
func (s State) LegalMoves(src board.Cell) bitboard.Board {
	var legal bitboard.Board
	if s.Phase != Playing {
		return legal
	}
	for _, d := range board.Directions() {
		for _, c := range board.Ray(src, d) {
			if s.occupiedOrClaimed(c) {
				break
			}
			legal = legal.Set(int(c))
		}
	}
	return legal
}

func (s State) hasLegalMove(player int) bool {
	movable := false
	s.Penguins[player].Each(func(cell int) {
		if movable {
			return
		}
		if !s.LegalMoves(board.Cell(cell)).Empty() {
			movable = true
		}
	})
	return movable
}

// nextActive picks who acts after mover just finished a turn: the other
// player if they have a move, back to mover if only they do, or NoPlayer
// if neither can move.
func nextActive(s State, mover int) int {
	other := 1 - mover
	if s.hasLegalMove(other) {
		return other
	}
	if s.hasLegalMove(mover) {
		return mover
	}
	return NoPlayer
}

// Place drops the active player's next penguin on dst, which must be an
// untouched single-fish tile. It returns the resulting state, leaving s
// unmodified.
func (s State) Place(dst board.Cell) (State, error) {
	if dst < 0 || int(dst) >= board.NumCells {
		return s, ErrOutOfRange
	}
	if s.Phase != Drafting {
		return s, ErrIllegalMove
	}
	if !s.LegalDrafts().Has(int(dst)) {
		return s, ErrIllegalMove
	}

	active := s.Active
	s.Claimed[active] = s.Claimed[active].Set(int(dst))
	s.Penguins[active] = s.Penguins[active].Set(int(dst))
	s.Scores[active] += int(s.Fish[dst])
	s.Fish[dst] = 0
	s.Turn++

	if s.Turn >= totalDraftTurns {
		// Play opens with whoever drafted first, unless they are already stuck.
		s.Phase = Playing
		first := draftPlayer(0)
		if s.hasLegalMove(first) {
			s.Active = first
		} else {
			s.Active = nextActive(s, first)
		}
	} else {
		s.Active = draftPlayer(s.Turn)
	}
	return s, nil
}

// Slide moves the active player's penguin from src to dst along a single
// straight run of open tiles, claiming src's fish for their score. It
// returns the resulting state, leaving s unmodified.
func (s State) Slide(src, dst board.Cell) (State, error) {
	if src < 0 || int(src) >= board.NumCells || dst < 0 || int(dst) >= board.NumCells {
		return s, ErrOutOfRange
	}
	if s.Phase != Playing {
		return s, ErrIllegalMove
	}
	active := s.Active
	if !s.Penguins[active].Has(int(src)) {
		return s, ErrIllegalMove
	}
	if !s.LegalMoves(src).Has(int(dst)) {
		return s, ErrIllegalMove
	}

	s.Scores[active] += int(s.Fish[src])
	s.Claimed[active] = s.Claimed[active].Set(int(src))
	s.Fish[src] = 0
	s.Penguins[active] = s.Penguins[active].Clear(int(src)).Set(int(dst))
	s.Turn++

	s.Active = nextActive(s, active)
	if s.Active == NoPlayer {
		s = s.claimRemaining()
	}
	return s, nil
}

// LegalActions enumerates every move the active player may take this
// turn: one placement per draftable cell during the draft, or one slide
// per (penguin, legal destination) pair during play.
func (s State) LegalActions() []Move {
	if s.GameOver() {
		return nil
	}
	if s.Phase == Drafting {
		drafts := s.LegalDrafts()
		moves := make([]Move, 0, drafts.Count())
		drafts.Each(func(cell int) {
			moves = append(moves, PlaceMove(board.Cell(cell)))
		})
		return moves
	}

	var moves []Move
	s.Penguins[s.Active].Each(func(srcCell int) {
		src := board.Cell(srcCell)
		s.LegalMoves(src).Each(func(dstCell int) {
			moves = append(moves, SlideMove(src, board.Cell(dstCell)))
		})
	})
	return moves
}

// Apply runs m against the active player, dispatching to Place or Slide.
func (s State) Apply(m Move) (State, error) {
	if m.IsPlacement() {
		return s.Place(m.Dst)
	}
	return s.Slide(m.Src, m.Dst)
}

// claimRemaining is called once the active game ends: every penguin still
// standing on the board claims the tile underneath it.
func (s State) claimRemaining() State {
	for player := 0; player < NumPlayers; player++ {
		s.Penguins[player].Each(func(cell int) {
			s.Scores[player] += int(s.Fish[cell])
			s.Fish[cell] = 0
			s.Claimed[player] = s.Claimed[player].Set(cell)
		})
		s.Penguins[player] = bitboard.Board(0)
	}
	return s
}
