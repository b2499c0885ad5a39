package remote

import (
	"context"
	"time"

	"cosmossdk.io/errors"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// StakingClient resolves the counterparty chain's unbonding period, needed
// to populate a new tendermint client state's trusting period bounds.
type StakingClient struct{}

// NewStakingClient returns a StakingClient.
func NewStakingClient() *StakingClient {
	return &StakingClient{}
}

// UnbondingPeriod returns the chain's configured staking unbonding time.
func (c *StakingClient) UnbondingPeriod(ctx context.Context, grpcAddr string) (time.Duration, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return 0, errors.Wrapf(model.ErrTransportFailure, "dialing %s: %s", grpcAddr, err)
	}
	defer conn.Close()

	client := stakingtypes.NewQueryClient(conn)
	resp, err := client.Params(ctx, &stakingtypes.QueryParamsRequest{})
	if err != nil {
		return 0, errors.Wrapf(model.ErrTransportFailure, "querying staking params: %s", err)
	}

	return resp.Params.UnbondingTime, nil
}
