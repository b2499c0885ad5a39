package handshake

import (
	"context"

	"cosmossdk.io/errors"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	solomachine "github.com/cosmos/ibc-go/v10/modules/light-clients/06-solomachine"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// CreateSoloMachineClient builds a transaction registering a new solo
// machine client on the counterparty chain. It carries no proof and does
// not advance the chain's sequence.
func (f *Factory) CreateSoloMachineClient(ctx context.Context, chainID model.ChainID, memo string) (*TxResult, error) {
	mu := f.lock(chainID)
	mu.Lock()
	defer mu.Unlock()

	chain, err := f.getChain(chainID)
	if err != nil {
		return nil, err
	}

	publicKeyAny, err := f.keys.PublicKey()
	if err != nil {
		return nil, err
	}

	consensusState := &solomachine.ConsensusState{
		PublicKey:   publicKeyAny,
		Diversifier: chain.Diversifier,
		Timestamp:   chain.ConsensusTimestamp,
	}
	clientState := solomachine.NewClientState(chain.Sequence, consensusState)

	signer, err := f.keys.AccountAddress(chain.AccountPrefix)
	if err != nil {
		return nil, err
	}

	msg, err := clienttypes.NewMsgCreateClient(clientState, consensusState, signer)
	if err != nil {
		return nil, errors.Wrap(model.ErrEncodingFailure, "building MsgCreateClient: "+err.Error())
	}

	tx, err := f.buildTx(ctx, chain, memo, msg)
	if err != nil {
		return nil, err
	}
	return &TxResult{Tx: tx}, nil
}
