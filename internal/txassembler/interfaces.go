package txassembler

import "context"

// AccountQuerier fetches the signer's on-chain account number and sequence
// ahead of building AuthInfo. Implementations talk to the counterparty
// chain's auth module over gRPC; see pkg/remote for the production one.
type AccountQuerier interface {
	GetAccount(ctx context.Context, grpcAddr, address string) (accountNumber, accountSequence uint64, err error)
}
