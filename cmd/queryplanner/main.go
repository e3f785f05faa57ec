// Command queryplanner is a thin demonstration binary wiring the planner
// packages together: parse a supergraph SDL file, walk an operation's
// field-step sequence, synthesize a plan, and print it.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "queryplanner",
		Short: "Plan a federated GraphQL operation against a supergraph",
	}
	root.AddCommand(newPlanCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("queryplanner failed")
		os.Exit(1)
	}
}
