// Package queryhandler provides an in-memory QueryHandler suitable for
// tests; the CLI also constructs one, empty. A production deployment
// would instead back this interface with local IBC state synced from the
// counterparty chain; the builder only ever depends on the interface
// shape, defined alongside its consumer in internal/proofsigner.
package queryhandler

import (
	"sync"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibctmtypes "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"
)

// InMemory stores IBC objects keyed by their local identifiers.
type InMemory struct {
	mu              sync.RWMutex
	clientStates    map[string]*ibctmtypes.ClientState
	consensusStates map[string]*ibctmtypes.ConsensusState
	connections     map[string]*connectiontypes.ConnectionEnd
	channels        map[string]*channeltypes.Channel
}

// New returns an empty in-memory query handler.
func New() *InMemory {
	return &InMemory{
		clientStates:    map[string]*ibctmtypes.ClientState{},
		consensusStates: map[string]*ibctmtypes.ConsensusState{},
		connections:     map[string]*connectiontypes.ConnectionEnd{},
		channels:        map[string]*channeltypes.Channel{},
	}
}

// SetClientState registers a tendermint client state under clientID.
func (h *InMemory) SetClientState(clientID string, state *ibctmtypes.ClientState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clientStates[clientID] = state
}

// SetConsensusState registers a tendermint consensus state under
// (clientID, height).
func (h *InMemory) SetConsensusState(clientID string, height clienttypes.Height, state *ibctmtypes.ConsensusState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.consensusStates[clientID+height.String()] = state
}

// SetConnection registers a connection end under connectionID.
func (h *InMemory) SetConnection(connectionID string, conn *connectiontypes.ConnectionEnd) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[connectionID] = conn
}

// SetChannel registers a channel end under (portID, channelID).
func (h *InMemory) SetChannel(portID, channelID string, channel *channeltypes.Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels[portID+"/"+channelID] = channel
}

func (h *InMemory) GetClientState(clientID string) (*ibctmtypes.ClientState, bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cs, ok := h.clientStates[clientID]
	return cs, ok, nil
}

func (h *InMemory) GetConsensusState(
	clientID string, height clienttypes.Height,
) (*ibctmtypes.ConsensusState, bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cs, ok := h.consensusStates[clientID+height.String()]
	return cs, ok, nil
}

func (h *InMemory) GetConnection(connectionID string) (*connectiontypes.ConnectionEnd, bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.connections[connectionID]
	return conn, ok, nil
}

func (h *InMemory) GetChannel(portID, channelID string) (*channeltypes.Channel, bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	channel, ok := h.channels[portID+"/"+channelID]
	return channel, ok, nil
}
