package handshake

import (
	"context"

	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"
	commitmenttypes "github.com/cosmos/ibc-go/v10/modules/core/23-commitment/types"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// connectionVersion is the single IBC connection version this builder ever
// proposes: identifier "1" supporting both ordered and unordered channels.
func connectionVersion() *connectiontypes.Version {
	return &connectiontypes.Version{
		Identifier: "1",
		Features:   []string{"ORDER_ORDERED", "ORDER_UNORDERED"},
	}
}

// ConnectionOpenInit builds a transaction proposing a new connection from
// the solo machine client soloMachineClientID to the counterparty's
// tendermintClientID. It carries no proof and does not advance the chain's
// sequence.
func (f *Factory) ConnectionOpenInit(
	ctx context.Context, chainID model.ChainID, soloMachineClientID, tendermintClientID, memo string,
) (*TxResult, error) {
	mu := f.lock(chainID)
	mu.Lock()
	defer mu.Unlock()

	chain, err := f.getChain(chainID)
	if err != nil {
		return nil, err
	}

	signer, err := f.keys.AccountAddress(chain.AccountPrefix)
	if err != nil {
		return nil, err
	}

	msg := &connectiontypes.MsgConnectionOpenInit{
		ClientId: soloMachineClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientId:     tendermintClientID,
			ConnectionId: "",
			Prefix:       commitmenttypes.MerklePrefix{KeyPrefix: []byte("ibc")},
		},
		Version:     connectionVersion(),
		DelayPeriod: 0,
		Signer:      signer,
	}

	tx, err := f.buildTx(ctx, chain, memo, msg)
	if err != nil {
		return nil, err
	}
	return &TxResult{Tx: tx}, nil
}
