package proofsigner

import (
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibctmtypes "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"
)

// QueryHandler looks up IBC objects registered locally against the solo
// machine's counterparty. Every lookup method reports absence as (nil,
// false, nil); it is the caller's job to turn that into ErrNotFound with
// identifier context.
type QueryHandler interface {
	GetClientState(clientID string) (*ibctmtypes.ClientState, bool, error)
	GetConsensusState(clientID string, height clienttypes.Height) (*ibctmtypes.ConsensusState, bool, error)
	GetConnection(connectionID string) (*connectiontypes.ConnectionEnd, bool, error)
	GetChannel(portID, channelID string) (*channeltypes.Channel, bool, error)
}
