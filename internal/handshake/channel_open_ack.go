package handshake

import (
	"context"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// ChannelOpenAck builds a transaction acknowledging the counterparty's
// TRYOPEN channel response. It carries one solo-machine proof of this
// channel end, signed at the sequence active on entry, and advances the
// chain's sequence by one. proof_height carries the post-increment
// sequence, matching the sequence the counterparty will verify the proof
// against.
func (f *Factory) ChannelOpenAck(
	ctx context.Context,
	chainID model.ChainID,
	soloMachineChannelID, tendermintChannelID, memo string,
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

	proofTry, err := f.signer.ChannelProof(chain, chain.PortID, tendermintChannelID)
	if err != nil {
		return nil, err
	}
	chain, err = f.advanceSequence(chainID, chain, cfg)
	if err != nil {
		return nil, err
	}

	signer, err := f.keys.AccountAddress(chain.AccountPrefix)
	if err != nil {
		return nil, err
	}

	msg := &channeltypes.MsgChannelOpenAck{
		PortId:                chain.PortID,
		ChannelId:             soloMachineChannelID,
		CounterpartyChannelId: tendermintChannelID,
		CounterpartyVersion:   "ics20-1",
		ProofHeight:           clienttypes.NewHeight(0, chain.Sequence),
		ProofTry:              proofTry,
		Signer:                signer,
	}

	tx, err := f.buildTx(ctx, chain, memo, msg)
	if err != nil {
		return nil, err
	}
	return &TxResult{Tx: tx}, nil
}
