// Package config loads chain registrations from a YAML file (or any source
// viper supports) into model.Chain records ready to seed a ChainService.
package config

import (
	"time"

	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/spf13/viper"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// ChainEntry is the on-disk shape of a single chain registration.
type ChainEntry struct {
	ID                 string `mapstructure:"id"`
	GRPCAddr           string `mapstructure:"grpc_addr"`
	RPCAddr            string `mapstructure:"rpc_addr"`
	AccountPrefix      string `mapstructure:"account_prefix"`
	FeeDenom           string `mapstructure:"fee_denom"`
	FeeAmount          string `mapstructure:"fee_amount"`
	GasLimit           uint64 `mapstructure:"gas_limit"`
	TrustLevelNumer    uint64 `mapstructure:"trust_level_numerator"`
	TrustLevelDenom    uint64 `mapstructure:"trust_level_denominator"`
	TrustingPeriod     string `mapstructure:"trusting_period"`
	UnbondingPeriod    string `mapstructure:"unbonding_period"`
	MaxClockDrift      string `mapstructure:"max_clock_drift"`
	PortID             string `mapstructure:"port_id"`
	Diversifier        string `mapstructure:"diversifier"`
	ConsensusTimestamp uint64 `mapstructure:"consensus_timestamp"`
	Sequence           uint64 `mapstructure:"sequence"`
}

// File is the top-level shape of a chain registration file.
type File struct {
	Chains []ChainEntry `mapstructure:"chains"`
}

// Load reads a chain registration file at path and returns the parsed
// model.Chain records in file order.
func Load(path string) ([]model.Chain, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(model.ErrConfigMissing, "reading %s: %s", path, err)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, errors.Wrapf(model.ErrConfigMissing, "parsing %s: %s", path, err)
	}

	chains := make([]model.Chain, 0, len(file.Chains))
	for _, entry := range file.Chains {
		chain, err := toChain(entry)
		if err != nil {
			return nil, errors.Wrapf(model.ErrConfigMissing, "chain %s: %s", entry.ID, err)
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

func toChain(entry ChainEntry) (model.Chain, error) {
	if entry.ID == "" {
		return model.Chain{}, errors.Wrap(model.ErrConfigMissing, "chain id is required")
	}

	feeAmount, ok := sdkmath.NewIntFromString(entry.FeeAmount)
	if !ok {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "invalid fee amount %q", entry.FeeAmount)
	}

	trustingPeriod, err := time.ParseDuration(entry.TrustingPeriod)
	if err != nil {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "invalid trusting_period: %s", err)
	}
	unbondingPeriod, err := time.ParseDuration(entry.UnbondingPeriod)
	if err != nil {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "invalid unbonding_period: %s", err)
	}
	maxClockDrift, err := time.ParseDuration(entry.MaxClockDrift)
	if err != nil {
		return model.Chain{}, errors.Wrapf(model.ErrConfigMissing, "invalid max_clock_drift: %s", err)
	}

	return model.Chain{
		ID:            model.ChainID(entry.ID),
		GRPCAddr:      entry.GRPCAddr,
		RPCAddr:       entry.RPCAddr,
		AccountPrefix: entry.AccountPrefix,
		Fee: model.Fee{
			Denom:    entry.FeeDenom,
			Amount:   feeAmount,
			GasLimit: entry.GasLimit,
		},
		TrustLevel:         model.Fraction{Numer: entry.TrustLevelNumer, Denom: entry.TrustLevelDenom},
		TrustingPeriod:     trustingPeriod,
		UnbondingPeriod:    unbondingPeriod,
		MaxClockDrift:      maxClockDrift,
		PortID:             entry.PortID,
		Diversifier:        entry.Diversifier,
		ConsensusTimestamp: entry.ConsensusTimestamp,
		Sequence:           entry.Sequence,
	}, nil
}
