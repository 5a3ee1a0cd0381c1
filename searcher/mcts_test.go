package searcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jthemphill/htmf/game"
)

func TestSearchGrowsTheTreeAndPicksAMove(t *testing.T) {
	state := game.New(1)
	m := New(state, WithEpisodes(200), WithGoroutines(2))

	m.Search(context.Background())

	require.Greater(t, m.Visits(), 0)
	require.Greater(t, m.TreeSize(), 1)

	move, ok := m.BestMove()
	require.True(t, ok)

	_, err := state.Apply(move)
	require.NoError(t, err, "the move search settles on must be legal")
}

func TestSearchRespectsContextCancellation(t *testing.T) {
	state := game.New(2)
	m := New(state, WithEpisodes(1_000_000), WithGoroutines(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.Search(ctx)

	require.Less(t, m.Visits(), 1_000_000)
}

func TestAdvanceKeepsTheExploredSubtree(t *testing.T) {
	state := game.New(3)
	m := New(state, WithEpisodes(300))
	m.Search(context.Background())

	move, ok := m.BestMove()
	require.True(t, ok)

	visitsBefore := m.ChildVisits()[move]
	require.Greater(t, visitsBefore, 0)

	next, err := state.Apply(move)
	require.NoError(t, err)

	m.Advance(move, next)
	require.Equal(t, visitsBefore, m.Visits(), "the committed child's statistics carry over as the new root")
}

func TestAdvanceResetsOnAnUnexploredMove(t *testing.T) {
	state := game.New(4)
	m := New(state, WithEpisodes(50))
	m.Search(context.Background())

	next := game.New(4) // an unrelated state, standing in for a move never explored
	// Every root move during the draft is a placement (Src == NoCell), so
	// this slide can never match one of the root's explored children.
	m.Advance(game.SlideMove(0, 1), next)

	require.Equal(t, 0, m.Visits())
}

func TestPlayoutOnceRunsSynchronouslyOnTheCallingGoroutine(t *testing.T) {
	state := game.New(6)
	m := New(state, WithSeed(9))

	for i := 0; i < 50; i++ {
		m.PlayoutOnce()
	}

	require.Equal(t, 50, m.Visits())
	require.Equal(t, 50, m.TotalPlayouts())
}

func TestPlayoutNTimesMatchesThatManyPlayoutOnceCalls(t *testing.T) {
	state := game.New(7)
	m := New(state, WithSeed(9))

	m.PlayoutNTimes(30)

	require.Equal(t, 30, m.TotalPlayouts())
}

func TestTotalPlayoutsSurvivesAdvance(t *testing.T) {
	state := game.New(8)
	m := New(state, WithSeed(9))
	m.PlayoutNTimes(20)

	move, ok := m.BestMove()
	require.True(t, ok)
	next, err := state.Apply(move)
	require.NoError(t, err)

	m.Advance(move, next)
	require.Equal(t, 20, m.TotalPlayouts())
}

func TestChildStatsMatchChildVisits(t *testing.T) {
	state := game.New(11)
	m := New(state, WithEpisodes(120))
	m.Search(context.Background())

	visits := m.ChildVisits()
	stats := m.ChildStats()
	require.Len(t, stats, len(visits))
	for move, v := range visits {
		require.Equal(t, v, stats[move].Visits)
	}
}

func TestChildVisitsSumToAtMostRootVisits(t *testing.T) {
	state := game.New(5)
	m := New(state, WithEpisodes(150))
	m.Search(context.Background())

	total := 0
	for _, v := range m.ChildVisits() {
		total += v
	}
	require.LessOrEqual(t, total, m.Visits())
}
