package model

import (
	sdkerrors "cosmossdk.io/errors"
)

// ModuleName is the error codespace for every error this module registers.
// NOTE: error codes must start from 2, matching cosmossdk.io/errors convention.
const ModuleName = "solotxbuilder"

var (
	// ErrConfigMissing is returned when a requested chain id is unknown or a
	// required chain field is absent.
	ErrConfigMissing = sdkerrors.Register(ModuleName, 2, "chain config missing")

	// ErrNotFound is returned when an IBC object (client, consensus, connection,
	// channel state) cannot be found through the QueryHandler.
	ErrNotFound = sdkerrors.Register(ModuleName, 3, "ibc object not found")

	// ErrTransportFailure is returned when a gRPC or RPC call to the
	// counterparty chain fails.
	ErrTransportFailure = sdkerrors.Register(ModuleName, 4, "transport failure")

	// ErrNodeCatchingUp is returned when the counterparty RPC endpoint reports
	// that it has not finished syncing.
	ErrNodeCatchingUp = sdkerrors.Register(ModuleName, 5, "node catching up")

	// ErrEncodingFailure is returned when a protobuf encode or decode fails.
	ErrEncodingFailure = sdkerrors.Register(ModuleName, 6, "encoding failure")

	// ErrCryptoFailure is returned when key derivation or signing fails.
	ErrCryptoFailure = sdkerrors.Register(ModuleName, 7, "crypto failure")

	// ErrPrecondition is returned when a required precondition on fetched
	// remote state does not hold (e.g. missing latest height).
	ErrPrecondition = sdkerrors.Register(ModuleName, 8, "precondition failure")
)
