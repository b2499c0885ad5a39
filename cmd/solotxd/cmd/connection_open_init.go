package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newConnectionOpenInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connection-open-init [chain-id] [solo-machine-client-id] [tendermint-client-id]",
		Short: "Build a transaction proposing a new connection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.factory.ConnectionOpenInit(cmd.Context(), model.ChainID(args[0]), args[1], args[2], app.memo)
			if err != nil {
				return err
			}
			return printTxRaw(cmd, result)
		},
	}
}
