package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriterWritesGameRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	err = w.WriteGameRecords([]GameRecord{{
		ID:         1,
		Bot0:       "random",
		Bot1:       "mcts",
		Scores:     [2]int{12, 30},
		StartTime:  time.Unix(0, 0),
		EndTime:    time.Unix(10, 0),
		TotalMoves: 40,
	}})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(w.baseDir, "game_records.csv"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "random")
	require.Contains(t, string(contents), "30")
}
