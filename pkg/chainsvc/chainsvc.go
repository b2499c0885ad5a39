// Package chainsvc provides the ChainService collaborator the builder
// treats as external: chain registration lookup and the single mutable
// piece of state in the whole system, the per-chain sequence counter.
package chainsvc

import (
	"sync"

	"cosmossdk.io/errors"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// Service is the interface the builder's Message Factories consume. Get
// returns a point-in-time snapshot; IncrementSequence advances the stored
// sequence by exactly one and returns the snapshot that reflects it.
type Service interface {
	Get(chainID model.ChainID) (model.Chain, bool, error)
	IncrementSequence(chainID model.ChainID) (model.Chain, error)
}

// InMemory is a Service backed by a map, guarded by a single mutex shared by
// all chains so concurrent calls serialize around the sequence counter
// rather than racing on it. It is the minimal collaborator
// needed to exercise the builder; a persistent implementation can satisfy
// the same Service interface without the builder changing.
type InMemory struct {
	mu     sync.Mutex
	chains map[model.ChainID]*model.Chain
}

// NewInMemory returns an empty in-memory chain registry.
func NewInMemory() *InMemory {
	return &InMemory{chains: map[model.ChainID]*model.Chain{}}
}

// Register adds or replaces a chain's stored snapshot.
func (s *InMemory) Register(chain model.Chain) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := chain
	s.chains[chain.ID] = &stored
}

// Get returns the current snapshot for chainID, or false if unregistered.
func (s *InMemory) Get(chainID model.ChainID) (model.Chain, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain, ok := s.chains[chainID]
	if !ok {
		return model.Chain{}, false, nil
	}
	return *chain, true, nil
}

// IncrementSequence advances chainID's sequence by one and returns the
// post-increment snapshot. The registry mutex is held only for the duration
// of this call; ordering increments across a whole multi-proof operation is
// left to the caller (the Message Factories hold a per-chain lock around
// each operation, including its IncrementSequence calls).
func (s *InMemory) IncrementSequence(chainID model.ChainID) (model.Chain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain, ok := s.chains[chainID]
	if !ok {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "chain %s not registered", chainID)
	}

	chain.Sequence++
	return *chain, nil
}
