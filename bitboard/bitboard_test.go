package bitboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndHas(t *testing.T) {
	t.Run("set adds a member cell", func(t *testing.T) {
		var b Board
		b = b.Set(5)

		require.True(t, b.Has(5))
		require.False(t, b.Has(6))
	})

	t.Run("clear removes a member cell", func(t *testing.T) {
		b := Of(3).Set(4)
		b = b.Clear(3)

		require.False(t, b.Has(3))
		require.True(t, b.Has(4))
	})
}

func TestUnionIntersectWithout(t *testing.T) {
	a := Of(1).Set(2).Set(3)
	b := Of(2).Set(3).Set(4)

	require.Equal(t, Of(1).Set(2).Set(3).Set(4), a.Union(b))
	require.Equal(t, Of(2).Set(3), a.Intersect(b))
	require.Equal(t, Of(1), a.Without(b))
}

func TestComplement(t *testing.T) {
	t.Run("complement within n bits excludes members", func(t *testing.T) {
		b := Of(0).Set(1)

		got := b.Complement(4)

		require.False(t, got.Has(0))
		require.False(t, got.Has(1))
		require.True(t, got.Has(2))
		require.True(t, got.Has(3))
	})

	t.Run("complement never sets bits past n", func(t *testing.T) {
		got := Board(0).Complement(60)

		require.Equal(t, 60, got.Count())
		require.False(t, got.Has(60))
	})
}

func TestCountAndEmpty(t *testing.T) {
	var b Board

	require.True(t, b.Empty())
	require.Equal(t, 0, b.Count())

	b = b.Set(10).Set(20).Set(30)

	require.False(t, b.Empty())
	require.Equal(t, 3, b.Count())
}

func TestCellsAscendingOrder(t *testing.T) {
	b := Of(40).Set(2).Set(17)

	require.Equal(t, []int{2, 17, 40}, b.Cells())
}

func TestEachVisitsAscending(t *testing.T) {
	b := Of(9).Set(1).Set(5)
	var visited []int

	b.Each(func(cell int) {
		visited = append(visited, cell)
	})

	require.Equal(t, []int{1, 5, 9}, visited)
}

func TestNextPopsLowestCell(t *testing.T) {
	b := Of(8).Set(2)

	cell, rest, ok := b.Next()
	require.True(t, ok)
	require.Equal(t, 2, cell)
	require.True(t, rest.Has(8))
	require.False(t, rest.Has(2))

	_, _, ok = Board(0).Next()
	require.False(t, ok)
}
