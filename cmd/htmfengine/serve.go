package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jthemphill/htmf/communication"
	"github.com/jthemphill/htmf/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API a game shell talks to",
	RunE: func(cmd *cobra.Command, args []string) error {
		search := config.LoadSearch()
		server := config.LoadServer()

		log.Info().Str("addr", server.ListenAddr).Msg("starting htmfengine server")
		return communication.NewServer(search).Router().Run(server.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
