// Package handshake implements the builder's message factories: one
// operation per step of bringing up a solo-machine client, a counterparty
// tendermint client, a connection, and a channel. Each factory resolves the
// chain's current registration, builds IBC messages carrying solo-machine
// proofs where the protocol requires them, and hands the result to the
// transaction assembler for signing.
package handshake

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/gogoproto/proto"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/internal/proofsigner"
	"github.com/tokenize-x/solomachine-txbuilder/internal/txassembler"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/keyderiv"
)

// TxResult wraps the signed transaction a Message Factory operation
// produces.
type TxResult struct {
	Tx *txtypes.TxRaw
}

// NodeStatus is the subset of a counterparty chain's sync status a factory
// needs to bootstrap a tendermint light client.
type NodeStatus struct {
	CatchingUp        bool
	NetworkChainID    string
	LatestBlockHeight int64
}

// BlockHeader is the subset of a counterparty block a factory needs to seed
// a tendermint consensus state.
type BlockHeader struct {
	Height             int64
	Time               time.Time
	AppHash            []byte
	NextValidatorsHash []byte
}

// NodeClient reaches a counterparty chain's CometBFT RPC endpoint.
type NodeClient interface {
	Status(ctx context.Context, rpcAddr string) (NodeStatus, error)
	Block(ctx context.Context, rpcAddr string, height int64) (BlockHeader, error)
}

// StakingClient reaches a counterparty chain's staking module.
type StakingClient interface {
	UnbondingPeriod(ctx context.Context, grpcAddr string) (time.Duration, error)
}

// ChainService is the subset of pkg/chainsvc.Service the factories depend on.
type ChainService interface {
	Get(chainID model.ChainID) (model.Chain, bool, error)
	IncrementSequence(chainID model.ChainID) (model.Chain, error)
}

// Factory wires together the builder's collaborators and exposes one method
// per Message Factory operation. Every operation locks the chain's logical
// mutex for its full duration, so sequence increments made mid-operation
// (three by connection ack, one by channel ack) are never interleaved
// with another call against the same chain.
type Factory struct {
	chains    ChainService
	keys      *keyderiv.Adapter
	signer    *proofsigner.Signer
	query     proofsigner.QueryHandler
	assembler *txassembler.Assembler
	nodes     NodeClient
	staking   StakingClient
	logger    log.Logger

	locksMu sync.Mutex
	locks   map[model.ChainID]*sync.Mutex
}

// New returns a Factory. A nil logger is replaced with a no-op logger.
func New(
	chains ChainService,
	keys *keyderiv.Adapter,
	signer *proofsigner.Signer,
	query proofsigner.QueryHandler,
	assembler *txassembler.Assembler,
	nodes NodeClient,
	staking StakingClient,
	logger log.Logger,
) *Factory {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Factory{
		chains:    chains,
		keys:      keys,
		signer:    signer,
		query:     query,
		assembler: assembler,
		nodes:     nodes,
		staking:   staking,
		logger:    logger,
		locks:     map[model.ChainID]*sync.Mutex{},
	}
}

// Option configures a single Message Factory call.
type Option func(*callOptions)

type callOptions struct {
	dryRun bool
}

// WithDryRun computes proofs and assembles a transaction without persisting
// any sequence increment through ChainService: each proof still signs over
// the sequence active at that point, but the advance between proofs happens
// against a local copy of the chain snapshot only. Only operations that
// increment the sequence mid-call (ConnectionOpenAck, ChannelOpenAck) are
// affected.
func WithDryRun() Option {
	return func(o *callOptions) { o.dryRun = true }
}

func resolveOptions(opts []Option) callOptions {
	var cfg callOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// advanceSequence returns chain with its sequence incremented by one. Under
// WithDryRun the increment is local only; otherwise it is persisted through
// ChainService, matching spec.md's sequence protocol.
func (f *Factory) advanceSequence(chainID model.ChainID, chain model.Chain, cfg callOptions) (model.Chain, error) {
	if cfg.dryRun {
		return chain.WithSequence(chain.Sequence + 1), nil
	}
	return f.chains.IncrementSequence(chainID)
}

// lock returns chainID's logical mutex, creating it if necessary.
func (f *Factory) lock(chainID model.ChainID) *sync.Mutex {
	f.locksMu.Lock()
	defer f.locksMu.Unlock()

	mu, ok := f.locks[chainID]
	if !ok {
		mu = &sync.Mutex{}
		f.locks[chainID] = mu
	}
	return mu
}

func (f *Factory) getChain(chainID model.ChainID) (model.Chain, error) {
	chain, found, err := f.chains.Get(chainID)
	if err != nil {
		return model.Chain{}, err
	}
	if !found {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "chain %s not registered", chainID)
	}
	return chain, nil
}

func (f *Factory) buildTx(ctx context.Context, chain model.Chain, memo string, messages ...proto.Message) (*txtypes.TxRaw, error) {
	return f.assembler.Build(ctx, chain, messages, memo)
}
