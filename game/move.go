package game

import "github.com/jthemphill/htmf/board"

// NoCell marks the unused source half of a draft placement.
const NoCell board.Cell = -1

// Move is a single action a player can take: either placing a penguin
// during the draft (Src == NoCell) or sliding one already on the board
// from Src to Dst.
type Move struct {
	Src board.Cell
	Dst board.Cell
}

// PlaceMove builds the draft placement of a penguin onto dst.
func PlaceMove(dst board.Cell) Move {
	return Move{Src: NoCell, Dst: dst}
}

// SlideMove builds the in-play slide of a penguin from src to dst.
func SlideMove(src, dst board.Cell) Move {
	return Move{Src: src, Dst: dst}
}

// IsPlacement reports whether m is a draft placement rather than a slide.
func (m Move) IsPlacement() bool {
	return m.Src == NoCell
}

// sortKey gives a deterministic total order over moves, used to break ties
// between equally-valued children during search. Placements sort as if
// their source were cell 0.
func (m Move) sortKey() (int, int) {
	src := int(m.Src)
	if m.IsPlacement() {
		src = 0
	}
	return src, int(m.Dst)
}

// Less reports whether m sorts before other under sortKey.
func (m Move) Less(other Move) bool {
	aSrc, aDst := m.sortKey()
	bSrc, bDst := other.sortKey()
	if aSrc != bSrc {
		return aSrc < bSrc
	}
	return aDst < bDst
}
