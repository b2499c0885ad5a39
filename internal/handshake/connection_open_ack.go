package handshake

import (
	"context"

	"cosmossdk.io/errors"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/encoding"
)

// ConnectionOpenAck builds a transaction acknowledging the counterparty's
// TRYOPEN connection response. It carries three solo-machine proofs, signed
// in order, with the chain's sequence advanced by one between each:
//
//  1. proof_try:      this connection end, at the sequence active on entry
//  2. proof_client:   the tendermint client state, one sequence later
//  3. proof_consensus: the tendermint client's consensus state, one sequence
//     later still
//
// The outer proof_height carries the sequence as it stands after all three
// increments, since that is the sequence the counterparty will verify the
// bundled proofs against.
func (f *Factory) ConnectionOpenAck(
	ctx context.Context,
	chainID model.ChainID,
	soloMachineConnectionID, tendermintClientID, tendermintConnectionID, memo string,
	opts ...Option,
) (*TxResult, error) {
	cfg := resolveOptions(opts)

	mu := f.lock(chainID)
	mu.Lock()
	defer mu.Unlock()

	chain, err := f.getChain(chainID)
	if err != nil {
		return nil, err
	}

	tendermintClientState, found, err := f.query.GetClientState(tendermintClientID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "querying client state %s: %s", tendermintClientID, err)
	}
	if !found {
		return nil, errors.Wrapf(model.ErrNotFound, "client state %s", tendermintClientID)
	}

	proofTry, err := f.signer.ConnectionProof(chain, tendermintConnectionID)
	if err != nil {
		return nil, err
	}
	chain, err = f.advanceSequence(chainID, chain, cfg)
	if err != nil {
		return nil, err
	}

	proofClient, err := f.signer.ClientProof(chain, tendermintClientID)
	if err != nil {
		return nil, err
	}
	chain, err = f.advanceSequence(chainID, chain, cfg)
	if err != nil {
		return nil, err
	}

	proofConsensus, err := f.signer.ConsensusProof(chain, tendermintClientID, tendermintClientState.LatestHeight)
	if err != nil {
		return nil, err
	}
	chain, err = f.advanceSequence(chainID, chain, cfg)
	if err != nil {
		return nil, err
	}

	clientStateAny, err := encoding.ToAny(tendermintClientState)
	if err != nil {
		return nil, err
	}

	signer, err := f.keys.AccountAddress(chain.AccountPrefix)
	if err != nil {
		return nil, err
	}

	msg := &connectiontypes.MsgConnectionOpenAck{
		ConnectionId:             soloMachineConnectionID,
		CounterpartyConnectionId: tendermintConnectionID,
		Version:                  connectionVersion(),
		ClientState:              clientStateAny,
		ProofHeight:              clienttypes.NewHeight(0, chain.Sequence),
		ProofTry:                 proofTry,
		ProofClient:              proofClient,
		ProofConsensus:           proofConsensus,
		ConsensusHeight:          tendermintClientState.LatestHeight,
		Signer:                   signer,
	}

	tx, err := f.buildTx(ctx, chain, memo, msg)
	if err != nil {
		return nil, err
	}
	return &TxResult{Tx: tx}, nil
}
