package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newChannelOpenInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channel-open-init [chain-id] [solo-machine-connection-id]",
		Short: "Build a transaction proposing a new unordered channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.factory.ChannelOpenInit(cmd.Context(), model.ChainID(args[0]), args[1], app.memo)
			if err != nil {
				return err
			}
			return printTxRaw(cmd, result)
		},
	}
}
