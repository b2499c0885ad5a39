package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/config"
)

const sampleConfig = `
chains:
  - id: test-1
    grpc_addr: localhost:9090
    rpc_addr: http://localhost:26657
    account_prefix: cosmos
    fee_denom: stake
    fee_amount: "1000"
    gas_limit: 300000
    trust_level_numerator: 1
    trust_level_denominator: 3
    trusting_period: 168h
    unbonding_period: 504h
    max_clock_drift: 10s
    port_id: transfer
    diversifier: solo
    consensus_timestamp: 1000
    sequence: 1
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chains.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	return path
}

func TestLoadParsesChainFields(t *testing.T) {
	t.Parallel()

	chains, err := config.Load(writeSampleConfig(t))
	require.NoError(t, err)
	require.Len(t, chains, 1)

	chain := chains[0]
	require.Equal(t, model.ChainID("test-1"), chain.ID)
	require.Equal(t, "localhost:9090", chain.GRPCAddr)
	require.Equal(t, "cosmos", chain.AccountPrefix)
	require.Equal(t, "stake", chain.Fee.Denom)
	require.Equal(t, uint64(300000), chain.Fee.GasLimit)
	require.Equal(t, uint64(1), chain.TrustLevel.Numer)
	require.Equal(t, uint64(3), chain.TrustLevel.Denom)
	require.Equal(t, "solo", chain.Diversifier)
	require.Equal(t, uint64(1000), chain.ConsensusTimestamp)
	require.Equal(t, uint64(1), chain.Sequence)
}

func TestLoadMissingFileReturnsConfigMissing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, model.ErrConfigMissing)
}
