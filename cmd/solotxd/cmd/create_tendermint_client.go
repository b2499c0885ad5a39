package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newCreateTendermintClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tendermint-client [chain-id]",
		Short: "Derive a tendermint client/consensus state pair from a counterparty's current status",
		Long: "Unlike the other subcommands, this does not build a transaction: it returns the " +
			"client and consensus state an operator must submit (via another tool) to the solo " +
			"machine's own chain to register the counterparty's light client.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.factory.CreateTendermintClient(cmd.Context(), model.ChainID(args[0]))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(map[string]any{
				"client_state":    result.ClientState,
				"consensus_state": result.ConsensusState,
			}, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}
