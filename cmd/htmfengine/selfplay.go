package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jthemphill/htmf/bots"
	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/metrics"
)

var (
	selfplayGames    int
	selfplayBot0     string
	selfplayBot1     string
	selfplayOutDir   string
	selfplaySeed     uint64
	selfplayPly      int
	selfplayPlayouts int
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Play bot0 against bot1 over many games and record the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		writer, err := metrics.NewWriter(selfplayOutDir)
		if err != nil {
			return fmt.Errorf("open benchmark output: %w", err)
		}

		records := make([]metrics.GameRecord, 0, selfplayGames)
		for i := 0; i < selfplayGames; i++ {
			seed := selfplaySeed + uint64(i)
			a := newBot(selfplayBot0, seed, selfplayPly, selfplayPlayouts)
			b := newBot(selfplayBot1, seed+1<<32, selfplayPly, selfplayPlayouts)

			start := time.Now()
			final, moves := playGame(a, b, seed)

			records = append(records, metrics.GameRecord{
				ID:         i,
				Bot0:       selfplayBot0,
				Bot1:       selfplayBot1,
				Scores:     final.Scores,
				StartTime:  start,
				EndTime:    time.Now(),
				TotalMoves: moves,
			})
			log.Info().Int("game", i).Ints("scores", final.Scores[:]).Msg("selfplay game finished")
		}

		if err := writer.WriteGameRecords(records); err != nil {
			return fmt.Errorf("write game records: %w", err)
		}
		return nil
	},
}

func init() {
	selfplayCmd.Flags().IntVar(&selfplayGames, "games", 10, "number of games to play")
	selfplayCmd.Flags().StringVar(&selfplayBot0, "bot0", "mcts", "bot for player 0: random, minimax, mcts")
	selfplayCmd.Flags().StringVar(&selfplayBot1, "bot1", "random", "bot for player 1: random, minimax, mcts")
	selfplayCmd.Flags().StringVar(&selfplayOutDir, "out", "./selfplay-results", "directory to write CSV output under")
	selfplayCmd.Flags().Uint64Var(&selfplaySeed, "seed", 1, "base seed; game i uses seed+i")
	selfplayCmd.Flags().IntVar(&selfplayPly, "ply", 2, "search depth for the minimax bot")
	selfplayCmd.Flags().IntVar(&selfplayPlayouts, "playouts", 2000, "playouts per move for the mcts bot")
	rootCmd.AddCommand(selfplayCmd)
}

func newBot(name string, seed uint64, ply, playouts int) bots.Bot {
	switch name {
	case "random":
		return bots.NewRandomBot(seed)
	case "minimax":
		return bots.NewMinimaxBot(seed, ply)
	case "mcts":
		return bots.NewMCTSBot(seed, playouts)
	default:
		log.Fatal().Str("bot", name).Msg("unknown bot kind")
		return nil
	}
}

// playGame plays a out to completion, alternating turns between a
// (player 0) and b (player 1), and returns the final state along with
// how many moves were played.
func playGame(a, b bots.Bot, seed uint64) (game.State, int) {
	state := game.New(seed)
	moves := 0
	for !state.GameOver() {
		player, ok := state.ActivePlayer()
		if !ok {
			break
		}
		bot := a
		if player == 1 {
			bot = b
		}
		move, err := bot.TakeAction(state)
		if err != nil {
			log.Fatal().Err(err).Msg("bot proposed an illegal action")
		}
		next, err := state.Apply(move)
		if err != nil {
			log.Fatal().Err(err).Msg("bot's move was rejected by the rules engine")
		}
		state = next
		moves++
	}
	return state, moves
}
