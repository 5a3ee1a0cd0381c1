// Command htmfengine hosts the game engine: serve runs it behind HTTP,
// selfplay and bench drive it directly for experiments, the same role
// the Risk agent's ad hoc main()/main2() speedup experiment played
// before it grew into named subcommands.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "htmfengine",
	Short: "Hey, That's My Fish! engine: serve it, or run it head-to-head against itself",
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("htmfengine exited with an error")
	}
}
