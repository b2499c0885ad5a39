package handshake

import (
	"context"

	"cosmossdk.io/errors"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-go/v10/modules/core/23-commitment/types"
	ibctmtypes "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// TendermintClientResult is the pair of light client state objects a solo
// machine must register locally after creating a tendermint client, so
// later proofs can be checked against them through the QueryHandler. No
// transaction is produced by this operation.
type TendermintClientResult struct {
	ClientState    *ibctmtypes.ClientState
	ConsensusState *ibctmtypes.ConsensusState
}

// CreateTendermintClient derives a tendermint client state and an initial
// consensus state for chainID from its current RPC status and staking
// unbonding period. It fails if the counterparty node reports that it has
// not finished syncing.
func (f *Factory) CreateTendermintClient(ctx context.Context, chainID model.ChainID) (*TendermintClientResult, error) {
	mu := f.lock(chainID)
	mu.Lock()
	defer mu.Unlock()

	chain, err := f.getChain(chainID)
	if err != nil {
		return nil, err
	}

	status, err := f.nodes.Status(ctx, chain.RPCAddr)
	if err != nil {
		return nil, err
	}
	if status.CatchingUp {
		return nil, errors.Wrapf(model.ErrNodeCatchingUp, "node at %s running chain %s not caught up", chain.RPCAddr, chainID)
	}

	unbondingPeriod, err := f.staking.UnbondingPeriod(ctx, chain.GRPCAddr)
	if err != nil {
		return nil, err
	}

	revisionNumber := clienttypes.ParseChainID(status.NetworkChainID)
	latestHeight := clienttypes.NewHeight(revisionNumber, uint64(status.LatestBlockHeight))

	clientState := ibctmtypes.NewClientState(
		status.NetworkChainID,
		ibctmtypes.Fraction{Numerator: chain.TrustLevel.Numer, Denominator: chain.TrustLevel.Denom},
		chain.TrustingPeriod,
		unbondingPeriod,
		chain.MaxClockDrift,
		latestHeight,
		commitmenttypes.GetSDKSpecs(),
		[]string{"upgrade", "upgradedIBCState"},
	)

	header, err := f.nodes.Block(ctx, chain.RPCAddr, status.LatestBlockHeight)
	if err != nil {
		return nil, err
	}

	consensusState := ibctmtypes.NewConsensusState(
		header.Time,
		commitmenttypes.NewMerkleRoot(header.AppHash),
		header.NextValidatorsHash,
	)

	f.logger.Info("built tendermint client state",
		"chain_id", chainID.String(),
		"latest_height", latestHeight.String(),
	)

	return &TendermintClientResult{ClientState: clientState, ConsensusState: consensusState}, nil
}
