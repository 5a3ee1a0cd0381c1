package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorCountsEpisodes(t *testing.T) {
	c := NewCollector()
	c.Start(4)
	for i := 0; i < 10; i++ {
		c.AddEpisode()
	}
	m := c.Complete()

	require.Equal(t, 4, m.Goroutines)
	require.Equal(t, 10, m.Episodes)
}

func TestNoopCollectorDiscardsEverything(t *testing.T) {
	c := NewNoopCollector()
	c.Start(4)
	c.AddEpisode()
	require.Equal(t, SearchMetric{}, c.Complete())
}
