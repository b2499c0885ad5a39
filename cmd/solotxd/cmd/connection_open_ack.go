package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/handshake"
	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newConnectionOpenAckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "connection-open-ack [chain-id] [solo-machine-connection-id] " +
			"[tendermint-client-id] [tendermint-connection-id]",
		Short: "Build a transaction acknowledging a TRYOPEN connection response",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			var opts []handshake.Option
			if dryRun, _ := cmd.Flags().GetBool(flagDryRun); dryRun {
				opts = append(opts, handshake.WithDryRun())
			}

			result, err := app.factory.ConnectionOpenAck(
				cmd.Context(), model.ChainID(args[0]), args[1], args[2], args[3], app.memo, opts...,
			)
			if err != nil {
				return err
			}
			return printTxRaw(cmd, result)
		},
	}
	cmd.Flags().Bool(flagDryRun, false, "sign proofs without persisting the sequence increments they consume")
	return cmd
}
