package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokenize-x/solomachine-txbuilder/internal/handshake"
	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

func newChannelOpenAckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel-open-ack [chain-id] [solo-machine-channel-id] [tendermint-channel-id]",
		Short: "Build a transaction acknowledging a TRYOPEN channel response",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			var opts []handshake.Option
			if dryRun, _ := cmd.Flags().GetBool(flagDryRun); dryRun {
				opts = append(opts, handshake.WithDryRun())
			}

			result, err := app.factory.ChannelOpenAck(
				cmd.Context(), model.ChainID(args[0]), args[1], args[2], app.memo, opts...,
			)
			if err != nil {
				return err
			}
			return printTxRaw(cmd, result)
		},
	}
	cmd.Flags().Bool(flagDryRun, false, "sign the proof without persisting the sequence increment it consumes")
	return cmd
}
