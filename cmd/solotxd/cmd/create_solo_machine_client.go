package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newCreateSoloMachineClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-solo-machine-client [chain-id]",
		Short: "Build a transaction registering a new solo machine client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.factory.CreateSoloMachineClient(cmd.Context(), model.ChainID(args[0]), app.memo)
			if err != nil {
				return err
			}
			return printTxRaw(cmd, result)
		},
	}
}
