package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/searcher"
)

var (
	benchGoroutines []int
	benchDuration   time.Duration
	benchGames      int
)

// bench measures how many playouts per second the searcher manages at
// each goroutine count, run over benchGames concurrent games so the
// measurement isn't skewed by any single position. It replaces the
// original speedup experiment's hardcoded config list with a flag.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure search throughput across goroutine counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, goroutines := range benchGoroutines {
			playouts, err := runBenchRound(goroutines)
			if err != nil {
				return err
			}
			rate := float64(playouts) / benchDuration.Seconds()
			fmt.Printf("goroutines=%d total_playouts=%d playouts/sec=%.1f\n", goroutines, playouts, rate)
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntSliceVar(&benchGoroutines, "goroutines", []int{1, 2, 4, 8}, "goroutine counts to measure")
	benchCmd.Flags().DurationVar(&benchDuration, "duration", 500*time.Millisecond, "search budget per game")
	benchCmd.Flags().IntVar(&benchGames, "games", 4, "concurrent games to average over")
	rootCmd.AddCommand(benchCmd)
}

func runBenchRound(goroutines int) (int, error) {
	g, ctx := errgroup.WithContext(context.Background())
	totals := make([]int, benchGames)

	for i := 0; i < benchGames; i++ {
		i := i
		g.Go(func() error {
			state := game.New(uint64(i) + 1)
			tree := searcher.New(
				state,
				searcher.WithGoroutines(goroutines),
				searcher.WithDuration(benchDuration),
			)
			tree.Search(ctx)
			totals[i] = tree.TotalPlayouts()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, t := range totals {
		total += t
	}
	log.Debug().Int("goroutines", goroutines).Int("total_playouts", total).Msg("bench round complete")
	return total, nil
}
