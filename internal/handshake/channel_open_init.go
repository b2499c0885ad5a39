package handshake

import (
	"context"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// ChannelOpenInit builds a transaction proposing a new unordered ICS-20
// channel over soloMachineConnectionID. It carries no proof and does not
// advance the chain's sequence.
func (f *Factory) ChannelOpenInit(
	ctx context.Context, chainID model.ChainID, soloMachineConnectionID, memo string,
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

	msg := &channeltypes.MsgChannelOpenInit{
		PortId: chain.PortID,
		Channel: channeltypes.Channel{
			State:    channeltypes.INIT,
			Ordering: channeltypes.UNORDERED,
			Counterparty: channeltypes.Counterparty{
				PortId:    chain.PortID,
				ChannelId: "",
			},
			ConnectionHops: []string{soloMachineConnectionID},
			Version:        "ics20-1",
		},
		Signer: signer,
	}

	tx, err := f.buildTx(ctx, chain, memo, msg)
	if err != nil {
		return nil, err
	}
	return &TxResult{Tx: tx}, nil
}
