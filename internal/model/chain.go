package model

import (
	"time"

	sdkmath "cosmossdk.io/math"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
)

// ChainID is a counterparty chain identifier carrying a numeric revision
// suffix, e.g. "cosmoshub-4". Revision parsing follows the same convention
// ibc-go's tendermint light client uses to derive IBC height revision
// numbers from chain ids.
type ChainID string

// Revision extracts the revision number from the chain id's "-N" suffix,
// returning 0 if the id carries no parseable suffix.
func (c ChainID) Revision() uint64 {
	return clienttypes.ParseChainID(string(c))
}

func (c ChainID) String() string {
	return string(c)
}

// Fraction is a trust-level rational, e.g. 1/3.
type Fraction struct {
	Numer uint64
	Denom uint64
}

// Fee carries the flat fee charged for every transaction built against a
// chain. Fees are taken verbatim from chain config; the builder performs no
// estimation.
type Fee struct {
	Denom    string
	Amount   sdkmath.Int
	GasLimit uint64
}

// Chain is a snapshot of one counterparty chain's registration. Everything
// but Sequence is immutable once the chain is first registered; Sequence is
// the only field the builder's collaborators are allowed to mutate, and only
// through ChainService.IncrementSequence.
type Chain struct {
	ID                 ChainID
	GRPCAddr           string
	RPCAddr            string
	AccountPrefix      string
	Fee                Fee
	TrustLevel         Fraction
	TrustingPeriod     time.Duration
	UnbondingPeriod    time.Duration
	MaxClockDrift      time.Duration
	PortID             string
	Diversifier        string
	ConsensusTimestamp uint64
	Sequence           uint64
}

// WithSequence returns a copy of the chain with Sequence replaced. Used by
// dry-run paths that must advance a local view of the sequence without
// mutating the real ChainService.
func (c Chain) WithSequence(seq uint64) Chain {
	c.Sequence = seq
	return c
}
