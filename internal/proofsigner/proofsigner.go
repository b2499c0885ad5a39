// Package proofsigner constructs the four flavors of solo-machine state
// proof (client, consensus, connection, channel). Each proof is a signature
// over a SignBytes structure keyed by the object's ICS-24 path, the chain's
// current sequence, and its diversifier, returned as an encoded
// TimestampedSignatureData blob.
package proofsigner

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	txsigning "github.com/cosmos/cosmos-sdk/types/tx/signing"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
	solomachine "github.com/cosmos/ibc-go/v10/modules/light-clients/06-solomachine"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/encoding"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/keyderiv"
)

// commitmentPrefix is prepended, as raw bytes with no inserted separator, to
// every ICS-24 path this signer proves against.
var commitmentPrefix = []byte("ibc")

// Signer produces solo-machine state proofs for one mnemonic's signing key.
// It never mutates a Chain's sequence itself; callers are responsible for
// advancing the sequence through ChainService between proof calls.
type Signer struct {
	keys   *keyderiv.Adapter
	query  QueryHandler
	logger log.Logger
}

// New returns a Signer that reads IBC objects through query and signs with
// the key derived from keys. A nil logger is replaced with a no-op logger.
func New(keys *keyderiv.Adapter, query QueryHandler, logger log.Logger) *Signer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Signer{keys: keys, query: query, logger: logger}
}

// ClientProof proves the counterparty tendermint client state at its
// currently recorded state.
func (s *Signer) ClientProof(chain model.Chain, clientID string) ([]byte, error) {
	clientState, found, err := s.query.GetClientState(clientID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "querying client state %s: %s", clientID, err)
	}
	if !found {
		return nil, errors.Wrapf(model.ErrNotFound, "client state %s", clientID)
	}

	path := prependPrefix(host.FullClientStatePath(clientID))
	data, err := encoding.Encode(clientState)
	if err != nil {
		return nil, err
	}

	return s.sign(chain, "client", path, data)
}

// ConsensusProof proves the counterparty client's consensus state recorded
// at height.
func (s *Signer) ConsensusProof(chain model.Chain, clientID string, height clienttypes.Height) ([]byte, error) {
	consensusState, found, err := s.query.GetConsensusState(clientID, height)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "querying consensus state %s@%s: %s", clientID, height, err)
	}
	if !found {
		return nil, errors.Wrapf(model.ErrNotFound, "consensus state %s@%s", clientID, height)
	}

	path := prependPrefix(host.FullConsensusStatePath(clientID, height))
	data, err := encoding.Encode(consensusState)
	if err != nil {
		return nil, err
	}

	return s.sign(chain, "consensus", path, data)
}

// ConnectionProof proves a connection end registered on the solo machine's
// side of the handshake.
func (s *Signer) ConnectionProof(chain model.Chain, connectionID string) ([]byte, error) {
	connection, found, err := s.query.GetConnection(connectionID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "querying connection %s: %s", connectionID, err)
	}
	if !found {
		return nil, errors.Wrapf(model.ErrNotFound, "connection %s", connectionID)
	}

	path := prependPrefix(host.ConnectionPath(connectionID))
	data, err := encoding.Encode(connection)
	if err != nil {
		return nil, err
	}

	return s.sign(chain, "connection", path, data)
}

// ChannelProof proves a channel end registered on the solo machine's side of
// the handshake.
func (s *Signer) ChannelProof(chain model.Chain, portID, channelID string) ([]byte, error) {
	channel, found, err := s.query.GetChannel(portID, channelID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "querying channel %s/%s: %s", portID, channelID, err)
	}
	if !found {
		return nil, errors.Wrapf(model.ErrNotFound, "channel %s/%s", portID, channelID)
	}

	path := prependPrefix(host.ChannelPath(portID, channelID))
	data, err := encoding.Encode(channel)
	if err != nil {
		return nil, err
	}

	return s.sign(chain, "channel", path, data)
}

// sign builds the path-scoped SignBytes preimage at the chain's current
// sequence, signs it, and returns the encoded TimestampedSignatureData.
// label identifies the proof kind for logging only; it is never part of the
// wire format, which ibc-go's 06-solomachine SignBytes keys purely by path.
func (s *Signer) sign(chain model.Chain, label string, path, data []byte) ([]byte, error) {
	signBytes := &solomachine.SignBytes{
		Sequence:    chain.Sequence,
		Timestamp:   chain.ConsensusTimestamp,
		Diversifier: chain.Diversifier,
		Path:        path,
		Data:        data,
	}

	preimage, err := encoding.Encode(signBytes)
	if err != nil {
		return nil, err
	}

	privKey, err := s.keys.SigningKey()
	if err != nil {
		return nil, err
	}

	rawSig, err := privKey.Sign(preimage)
	if err != nil {
		return nil, errors.Wrap(model.ErrCryptoFailure, "signing proof: "+err.Error())
	}

	s.logger.Debug("signed solo machine proof",
		"chain_id", chain.ID.String(),
		"sequence", chain.Sequence,
		"data_type", label,
	)

	sigData := &txsigning.SignatureDescriptor_Data{
		Sum: &txsigning.SignatureDescriptor_Data_Single_{
			Single: &txsigning.SignatureDescriptor_Data_Single{
				Mode:      txsigning.SignMode_SIGN_MODE_UNSPECIFIED,
				Signature: rawSig,
			},
		},
	}
	sigDataBytes, err := encoding.Encode(sigData)
	if err != nil {
		return nil, err
	}

	timestamped := &solomachine.TimestampedSignatureData{
		SignatureData: sigDataBytes,
		Timestamp:     chain.ConsensusTimestamp,
	}
	return encoding.Encode(timestamped)
}

// prependPrefix concatenates the commitment prefix and an ICS-24 path with
// no separator beyond the path's own formatting, matching the wire-critical
// constant in the builder's specification.
func prependPrefix(path string) []byte {
	out := make([]byte, 0, len(commitmentPrefix)+len(path))
	out = append(out, commitmentPrefix...)
	out = append(out, path...)
	return out
}
