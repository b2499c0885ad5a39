package remote

import (
	"context"

	"cosmossdk.io/errors"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"

	"github.com/tokenize-x/solomachine-txbuilder/internal/handshake"
	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// NodeClient wraps the subset of CometBFT RPC calls a factory needs to
// bootstrap a tendermint light client: current sync status and a
// historical block header. It implements internal/handshake.NodeClient.
type NodeClient struct{}

// NewNodeClient returns a NodeClient.
func NewNodeClient() *NodeClient {
	return &NodeClient{}
}

func dialNode(rpcAddr string) (*rpchttp.HTTP, error) {
	client, err := rpchttp.New(rpcAddr, "/websocket")
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "dialing %s: %s", rpcAddr, err)
	}
	return client, nil
}

// Status returns the node's current sync status.
func (c *NodeClient) Status(ctx context.Context, rpcAddr string) (handshake.NodeStatus, error) {
	client, err := dialNode(rpcAddr)
	if err != nil {
		return handshake.NodeStatus{}, err
	}

	status, err := client.Status(ctx)
	if err != nil {
		return handshake.NodeStatus{}, errors.Wrapf(model.ErrTransportFailure, "querying node status: %s", err)
	}

	return handshake.NodeStatus{
		CatchingUp:        status.SyncInfo.CatchingUp,
		NetworkChainID:    status.NodeInfo.Network,
		LatestBlockHeight: status.SyncInfo.LatestBlockHeight,
	}, nil
}

// Block returns the header of the block at height.
func (c *NodeClient) Block(ctx context.Context, rpcAddr string, height int64) (handshake.BlockHeader, error) {
	client, err := dialNode(rpcAddr)
	if err != nil {
		return handshake.BlockHeader{}, err
	}

	block, err := client.Block(ctx, &height)
	if err != nil {
		return handshake.BlockHeader{}, errors.Wrapf(model.ErrTransportFailure, "querying block %d: %s", height, err)
	}

	header := block.Block.Header
	return handshake.BlockHeader{
		Height:             header.Height,
		Time:               header.Time,
		AppHash:            header.AppHash,
		NextValidatorsHash: header.NextValidatorsHash,
	}, nil
}
