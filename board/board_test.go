package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowLengthsSumToNumCells(t *testing.T) {
	total := 0
	for row := 0; row < NumRows; row++ {
		total += evenRowLen(row)
	}
	require.Equal(t, NumCells, total)
}

func TestRowColRoundTrip(t *testing.T) {
	for i := 0; i < NumCells; i++ {
		c := Cell(i)
		row, col := Row(c), Col(c)
		got, ok := CellAt(row, col)
		require.True(t, ok)
		require.Equal(t, c, got, "cell %d should round-trip through row/col", i)
	}
}

func TestEvenAndOddRowLengths(t *testing.T) {
	for row := 0; row < NumRows; row++ {
		if row%2 == 0 {
			require.Equal(t, EvenRowLen, evenRowLen(row))
		} else {
			require.Equal(t, OddRowLen, evenRowLen(row))
		}
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	t.Run("negative row", func(t *testing.T) {
		_, ok := CellAt(-1, 0)
		require.False(t, ok)
	})

	t.Run("row past the board", func(t *testing.T) {
		_, ok := CellAt(NumRows, 0)
		require.False(t, ok)
	})

	t.Run("column past this row's length", func(t *testing.T) {
		_, ok := CellAt(0, EvenRowLen)
		require.False(t, ok)
	})
}

func TestNeighborsAreDistinctFromCell(t *testing.T) {
	for i := 0; i < NumCells; i++ {
		c := Cell(i)
		for _, n := range Neighbors(c) {
			require.NotEqual(t, c, n, "cell %d should not be its own neighbor", i)
		}
	}
}

func TestNeighborsAreSymmetric(t *testing.T) {
	opposite := map[Direction]Direction{
		East: West, West: East,
		NorthEast: SouthWest, SouthWest: NorthEast,
		NorthWest: SouthEast, SouthEast: NorthWest,
	}

	for i := 0; i < NumCells; i++ {
		c := Cell(i)
		for _, d := range Directions() {
			n, ok := Neighbor(c, d)
			if !ok {
				continue
			}
			back, ok := Neighbor(n, opposite[d])
			require.True(t, ok, "cell %d's neighbor %d should see it back", i, n)
			require.Equal(t, c, back)
		}
	}
}

func TestRayTerminatesAtEdgeWithoutRepeats(t *testing.T) {
	for i := 0; i < NumCells; i++ {
		c := Cell(i)
		for _, d := range Directions() {
			ray := Ray(c, d)
			seen := map[Cell]bool{c: true}
			for _, cell := range ray {
				require.False(t, seen[cell], "ray from %d in direction %v repeats cell %d", i, d, cell)
				seen[cell] = true
			}
		}
	}
}

func TestRayStartsAtImmediateNeighbor(t *testing.T) {
	c := Cell(10)
	for _, d := range Directions() {
		ray := Ray(c, d)
		n, ok := Neighbor(c, d)
		if !ok {
			require.Empty(t, ray)
			continue
		}
		require.Equal(t, n, ray[0])
	}
}

func TestAllCellsAscending(t *testing.T) {
	cells := AllCells()
	require.Len(t, cells, NumCells)
	for i, c := range cells {
		require.Equal(t, Cell(i), c)
	}
}

func TestCornerCellHasFewerNeighbors(t *testing.T) {
	// Cell 0 is the top-left corner of the board.
	neighbors := Neighbors(Cell(0))
	require.Less(t, len(neighbors), NumDirections)
}
