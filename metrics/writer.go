package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord summarizes one finished self-play game.
type GameRecord struct {
	ID         int
	Bot0       string
	Bot1       string
	Scores     [2]int
	StartTime  time.Time
	EndTime    time.Time
	TotalMoves int
}

// MoveRecord summarizes one move within a game, linking it back to the
// SearchMetric the bot spent producing it.
type MoveRecord struct {
	Game int
	MoveMetric
}

// Writer persists benchmark output as CSV under a timestamped directory,
// one file per record kind.
type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/<UTC timestamp>/ and returns a Writer rooted
// there.
func NewWriter(baseDir string) (*Writer, error) {
	dir := filepath.Join(baseDir, time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create benchmark directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// WriteGameRecords writes one row per finished game to game_records.csv.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "game_records.csv"))
	if err != nil {
		return fmt.Errorf("create game records file: %w", err)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	defer out.Flush()

	header := []string{"id", "bot0", "bot1", "score0", "score1", "start_time", "end_time", "total_moves"}
	if err := out.Write(header); err != nil {
		return fmt.Errorf("write game records header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			r.Bot0,
			r.Bot1,
			strconv.Itoa(r.Scores[0]),
			strconv.Itoa(r.Scores[1]),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			strconv.Itoa(r.TotalMoves),
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("write game record row: %w", err)
		}
	}
	return nil
}

// WriteMoveRecords writes one row per move to move_records.csv.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "move_records.csv"))
	if err != nil {
		return fmt.Errorf("create move records file: %w", err)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	defer out.Flush()

	header := []string{"game", "step", "player", "goroutines", "duration", "episodes"}
	if err := out.Write(header); err != nil {
		return fmt.Errorf("write move records header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			strconv.Itoa(r.Player),
			strconv.Itoa(r.Goroutines),
			r.Duration.String(),
			strconv.Itoa(r.Episodes),
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("write move record row: %w", err)
		}
	}
	return nil
}
