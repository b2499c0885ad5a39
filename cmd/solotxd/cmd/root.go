// Package cmd implements the solotxd command line tool: one subcommand per
// IBC handshake step the builder can produce a transaction or light client
// pair for.
package cmd

import (
	"encoding/base64"
	"os"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/cosmos/gogoproto/proto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tokenize-x/solomachine-txbuilder/internal/handshake"
	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/internal/proofsigner"
	"github.com/tokenize-x/solomachine-txbuilder/internal/txassembler"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/chainsvc"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/config"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/keyderiv"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/queryhandler"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/remote"
)

const (
	flagConfig      = "config"
	flagMnemonicEnv = "mnemonic-env"
	flagMemo        = "memo"
	flagDryRun      = "dry-run"
)

// NewRootCmd returns the solotxd root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "solotxd",
		Short: "Build signed transactions for a solo-machine IBC client's handshake steps",
	}

	root.PersistentFlags().String(flagConfig, "chains.yaml", "path to the chain registration file")
	root.PersistentFlags().String(flagMnemonicEnv, "SOLOTXD_MNEMONIC", "environment variable carrying the signing mnemonic")
	root.PersistentFlags().String(flagMemo, "", "memo to attach to the built transaction")

	_ = viper.BindPFlag(flagConfig, root.PersistentFlags().Lookup(flagConfig))
	_ = viper.BindPFlag(flagMnemonicEnv, root.PersistentFlags().Lookup(flagMnemonicEnv))

	root.AddCommand(
		newCreateSoloMachineClientCmd(),
		newCreateTendermintClientCmd(),
		newConnectionOpenInitCmd(),
		newConnectionOpenAckCmd(),
		newChannelOpenInitCmd(),
		newChannelOpenAckCmd(),
	)
	return root
}

// app bundles the collaborators every subcommand needs. The query handler
// is a fresh, empty in-memory store and no subcommand fills it, so the
// proof-carrying steps (connection-open-ack, channel-open-ack) fail with
// ErrNotFound when run from this CLI.
type app struct {
	chains  *chainsvc.InMemory
	factory *handshake.Factory
	memo    string
}

func newApp(cmd *cobra.Command) (*app, error) {
	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	mnemonicEnvVar, err := cmd.Flags().GetString(flagMnemonicEnv)
	if err != nil {
		return nil, err
	}
	memo, err := cmd.Flags().GetString(flagMemo)
	if err != nil {
		return nil, err
	}

	chainRecords, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	chains := chainsvc.NewInMemory()
	for _, chain := range chainRecords {
		chains.Register(chain)
	}

	mnemonic := os.Getenv(mnemonicEnvVar)
	if mnemonic == "" {
		return nil, errors.Wrapf(model.ErrConfigMissing, "environment variable %s is not set", mnemonicEnvVar)
	}
	keys, err := keyderiv.New(mnemonic)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger(os.Stderr)
	query := queryhandler.New()
	signer := proofsigner.New(keys, query, logger)
	accounts := remote.NewAccountClient()
	assembler := txassembler.New(keys, accounts, logger)
	nodes := remote.NewNodeClient()
	staking := remote.NewStakingClient()
	factory := handshake.New(chains, keys, signer, query, assembler, nodes, staking, logger)

	return &app{chains: chains, factory: factory, memo: memo}, nil
}

// printTxRaw writes a signed transaction's protobuf-encoded, base64-wrapped
// bytes to stdout, ready for broadcast via any standard Cosmos SDK
// tx-broadcast endpoint.
func printTxRaw(cmd *cobra.Command, result *handshake.TxResult) error {
	bz, err := proto.Marshal(result.Tx)
	if err != nil {
		return err
	}
	cmd.Println(base64.StdEncoding.EncodeToString(bz))
	return nil
}
