// Package rules adds optional board-simplification heuristics on top of
// game.State. Prune is the only one today: it detects a penguin sealed
// alone in its own pocket of unclaimed tiles and fast-forwards it through
// that pocket, the same shortcut the original engine's board pruning took
// to keep search from wasting time on a player's only remaining choice.
package rules

import (
	"github.com/jthemphill/htmf/bitboard"
	"github.com/jthemphill/htmf/board"
	"github.com/jthemphill/htmf/game"
)

// fillSearchBudget bounds how many DFS nodes Prune will explore looking
// for a path through one pocket before giving up on it. Pockets bigger
// than this are left alone rather than risk a slow search; Prune always
// stays a safe no-op on pockets it can't solve quickly.
const fillSearchBudget = 20000

// Prune looks at every connected pocket of unclaimed cells on the board.
// Where exactly one penguin touches a pocket and has no way to leave it,
// it slides that penguin through the pocket along the first path found
// that enters every pocket cell, and reports true. Pockets nothing can be proven about are left
// untouched, so Prune never changes who is to act or what moves remain
// legal anywhere else on the board.
func Prune(s game.State) (game.State, bool) {
	if s.Phase != game.Playing {
		return s, false
	}

	changed := false
	for _, pocket := range connectedComponents(free(s)) {
		player, penguin, ok := solePenguinTouching(s, pocket)
		if !ok || canLeave(s, penguin, pocket) {
			continue
		}
		if next, ok := fill(s, player, penguin, pocket); ok {
			s = next
			changed = true
		}
	}
	return s, changed
}

// free returns every cell not claimed and not occupied by any penguin,
// the same predicate LegalMoves uses to stop a ray. A trapped penguin's
// own cell is deliberately excluded: it's where the search starts from,
// not a cell the search still has to reach.
func free(s game.State) bitboard.Board {
	blocked := s.Claimed[0].Union(s.Claimed[1]).Union(s.Penguins[0]).Union(s.Penguins[1])
	return blocked.Complement(board.NumCells)
}

// connectedComponents splits allowed into its maximal connected pieces
// under hex adjacency.
func connectedComponents(allowed bitboard.Board) []bitboard.Board {
	var components []bitboard.Board
	remaining := allowed
	for !remaining.Empty() {
		start, _, _ := remaining.Next()
		comp := floodFill(start, allowed)
		components = append(components, comp)
		remaining = remaining.Without(comp)
	}
	return components
}

func floodFill(start int, allowed bitboard.Board) bitboard.Board {
	visited := bitboard.Of(start)
	stack := []int{start}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range board.Neighbors(board.Cell(cell)) {
			if allowed.Has(int(n)) && !visited.Has(int(n)) {
				visited = visited.Set(int(n))
				stack = append(stack, int(n))
			}
		}
	}
	return visited
}

// solePenguinTouching reports the one player and penguin bordering pocket,
// and false if nobody borders it or more than one penguin does.
func solePenguinTouching(s game.State, pocket bitboard.Board) (int, board.Cell, bool) {
	player, penguin, found := 0, board.Cell(0), 0
	for p := 0; p < game.NumPlayers; p++ {
		s.Penguins[p].Each(func(cell int) {
			for _, n := range board.Neighbors(board.Cell(cell)) {
				if pocket.Has(int(n)) {
					player, penguin = p, board.Cell(cell)
					found++
					return
				}
			}
		})
	}
	return player, penguin, found == 1
}

// canLeave reports whether penguin has a free neighbor outside pocket,
// i.e. a way out besides the pocket itself. Any free neighbor that is
// part of pocket was already reached by the flood fill that built it, so
// this can only be true when penguin borders a second, disjoint pocket.
func canLeave(s game.State, penguin board.Cell, pocket bitboard.Board) bool {
	open := free(s)
	for _, n := range board.Neighbors(penguin) {
		if open.Has(int(n)) && !pocket.Has(int(n)) {
			return true
		}
	}
	return false
}

// fill slides player's penguin through every cell of pocket if a path
// exists, reporting the resulting state and true. It reports s unchanged
// and false if no full traversal was found within the search budget.
func fill(s game.State, player int, penguin board.Cell, pocket bitboard.Board) (game.State, bool) {
	target := pocket.Count()
	if target == 0 {
		return s, false
	}

	scratch := s
	path := []board.Cell{penguin}
	budget := fillSearchBudget
	if !searchPath(&scratch, player, penguin, pocket, bitboard.Board(0), target, &path, &budget) {
		return s, false
	}
	return applyPath(s, player, path), true
}

// searchPath does a mutate-and-backtrack depth-first search over scratch
// for a path that enters every cell of pocket, starting from cur. visited
// tracks pocket cells already entered, not including the penguin's
// starting cell, which is outside pocket by construction. It mutates
// scratch to reflect the penguin's position at each step so LegalMoves
// sees the same blocked rays a real game would, undoing each step before
// trying the next.
func searchPath(scratch *game.State, player int, cur board.Cell, pocket bitboard.Board, visited bitboard.Board, target int, path *[]board.Cell, budget *int) bool {
	if visited.Count() == target {
		return true
	}
	if *budget <= 0 {
		return false
	}
	*budget--

	for _, dst := range scratch.LegalMoves(cur).Cells() {
		if !pocket.Has(dst) || visited.Has(dst) {
			continue
		}

		fish := scratch.Fish[cur]
		scratch.Scores[player] += int(fish)
		scratch.Claimed[player] = scratch.Claimed[player].Set(int(cur))
		scratch.Fish[cur] = 0
		scratch.Penguins[player] = scratch.Penguins[player].Clear(int(cur)).Set(dst)

		*path = append(*path, board.Cell(dst))
		if searchPath(scratch, player, board.Cell(dst), pocket, visited.Set(dst), target, path, budget) {
			return true
		}
		*path = (*path)[:len(*path)-1]

		scratch.Penguins[player] = scratch.Penguins[player].Clear(dst).Set(int(cur))
		scratch.Fish[cur] = fish
		scratch.Claimed[player] = scratch.Claimed[player].Clear(int(cur))
		scratch.Scores[player] -= int(fish)
	}
	return false
}

// applyPath commits path against the real state, claiming each cell the
// penguin departs from. The final cell in path is left occupied and
// unclaimed, same as any other Slide.
func applyPath(s game.State, player int, path []board.Cell) game.State {
	for i := 0; i < len(path)-1; i++ {
		src, dst := path[i], path[i+1]
		s.Scores[player] += int(s.Fish[src])
		s.Claimed[player] = s.Claimed[player].Set(int(src))
		s.Fish[src] = 0
		s.Penguins[player] = s.Penguins[player].Clear(int(src)).Set(int(dst))
	}
	return s
}
