package handshake_test

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	txsigning "github.com/cosmos/cosmos-sdk/types/tx/signing"
	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-go/v10/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
	ibctmtypes "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"
	solomachine "github.com/cosmos/ibc-go/v10/modules/light-clients/06-solomachine"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/solomachine-txbuilder/internal/handshake"
	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/internal/proofsigner"
	"github.com/tokenize-x/solomachine-txbuilder/internal/txassembler"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/chainsvc"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/keyderiv"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/queryhandler"
)

const testMnemonic = "system voyage notice mother enrich glow person blur winter clog" +
	" equip dignity will bicycle stumble purse shock casino wet fan neglect essay vote school"

type fakeAccountQuerier struct{}

func (fakeAccountQuerier) GetAccount(context.Context, string, string) (uint64, uint64, error) {
	return 1, 2, nil
}

type fakeNodeClient struct{}

func (fakeNodeClient) Status(context.Context, string) (handshake.NodeStatus, error) {
	panic("not used by these scenarios")
}

func (fakeNodeClient) Block(context.Context, string, int64) (handshake.BlockHeader, error) {
	panic("not used by these scenarios")
}

type fakeStakingClient struct{}

func (fakeStakingClient) UnbondingPeriod(context.Context, string) (time.Duration, error) {
	panic("not used by these scenarios")
}

func newFactory(t *testing.T, query proofsigner.QueryHandler) (*handshake.Factory, *chainsvc.InMemory) {
	t.Helper()

	keys, err := keyderiv.New(testMnemonic)
	require.NoError(t, err)

	chains := chainsvc.NewInMemory()
	signer := proofsigner.New(keys, query, nil)
	assembler := txassembler.New(keys, fakeAccountQuerier{}, nil)

	factory := handshake.New(chains, keys, signer, query, assembler, fakeNodeClient{}, fakeStakingClient{}, nil)
	return factory, chains
}

func testChain(sequence uint64) model.Chain {
	return model.Chain{
		ID:                 "test-1",
		GRPCAddr:           "localhost:9090",
		AccountPrefix:      "cosmos",
		Diversifier:        "solo",
		ConsensusTimestamp: 1000,
		PortID:             "transfer",
		Sequence:           sequence,
		Fee: model.Fee{
			Denom:    "stake",
			Amount:   sdkmath.NewInt(1000),
			GasLimit: 300000,
		},
	}
}

// requireProofSignedAt checks that proof is a solo-machine signature, by the
// test mnemonic's key, over SignBytes carrying sequence, testChain's
// timestamp and diversifier, the "ibc"-prefixed path, and data's encoding.
func requireProofSignedAt(t *testing.T, proof []byte, sequence uint64, path string, data proto.Message) {
	t.Helper()

	var timestamped solomachine.TimestampedSignatureData
	require.NoError(t, proto.Unmarshal(proof, &timestamped))

	var sigData txsigning.SignatureDescriptor_Data
	require.NoError(t, proto.Unmarshal(timestamped.SignatureData, &sigData))
	single, ok := sigData.Sum.(*txsigning.SignatureDescriptor_Data_Single_)
	require.True(t, ok)

	dataBz, err := proto.Marshal(data)
	require.NoError(t, err)
	preimage, err := proto.Marshal(&solomachine.SignBytes{
		Sequence:    sequence,
		Timestamp:   1000,
		Diversifier: "solo",
		Path:        append([]byte("ibc"), path...),
		Data:        dataBz,
	})
	require.NoError(t, err)

	keys, err := keyderiv.New(testMnemonic)
	require.NoError(t, err)
	privKey, err := keys.SigningKey()
	require.NoError(t, err)
	require.True(t, privKey.PubKey().VerifySignature(preimage, single.Single.Signature))
}

func TestCreateSoloMachineClientScenario(t *testing.T) {
	t.Parallel()

	factory, chains := newFactory(t, queryhandler.New())
	chains.Register(testChain(1))

	result, err := factory.CreateSoloMachineClient(context.Background(), "test-1", "")
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))
	require.Len(t, body.Messages, 1)
	require.Equal(t, "/ibc.core.client.v1.MsgCreateClient", body.Messages[0].TypeUrl)

	var msg clienttypes.MsgCreateClient
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))

	var clientState solomachine.ClientState
	require.NoError(t, proto.Unmarshal(msg.ClientState.Value, &clientState))
	require.Equal(t, uint64(1), clientState.Sequence)
	require.False(t, clientState.IsFrozen)
	require.Equal(t, "solo", clientState.ConsensusState.Diversifier)
	require.Equal(t, uint64(1000), clientState.ConsensusState.Timestamp)
}

func TestConnectionOpenInitScenario(t *testing.T) {
	t.Parallel()

	factory, chains := newFactory(t, queryhandler.New())
	chains.Register(testChain(1))

	result, err := factory.ConnectionOpenInit(context.Background(), "test-1", "06-solomachine-0", "07-tendermint-0", "")
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))

	var msg connectiontypes.MsgConnectionOpenInit
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	require.Equal(t, []byte("ibc"), msg.Counterparty.Prefix.KeyPrefix)
	require.Len(t, msg.Counterparty.Prefix.KeyPrefix, 3)
	require.Equal(t, "1", msg.Version.Identifier)
	require.Equal(t, uint64(0), msg.DelayPeriod)
}

func TestConnectionOpenAckScenarioSignsThreeConsecutiveSequences(t *testing.T) {
	t.Parallel()

	clientState := ibctmtypes.NewClientState(
		"tendermint-1",
		ibctmtypes.Fraction{Numerator: 1, Denominator: 3},
		time.Hour, 2*time.Hour, time.Minute,
		clienttypes.NewHeight(1, 100),
		commitmenttypes.GetSDKSpecs(),
		[]string{"upgrade", "upgradedIBCState"},
	)
	consensusState := ibctmtypes.NewConsensusState(time.Unix(0, 0), commitmenttypes.NewMerkleRoot([]byte("apphash")), []byte("nextvals"))
	connection := &connectiontypes.ConnectionEnd{ClientId: "06-solomachine-0"}

	query := queryhandler.New()
	query.SetClientState("07-tendermint-0", clientState)
	query.SetConsensusState("07-tendermint-0", clientState.LatestHeight, consensusState)
	query.SetConnection("connection-0", connection)

	factory, chains := newFactory(t, query)
	chains.Register(testChain(10))

	result, err := factory.ConnectionOpenAck(context.Background(), "test-1", "connection-1", "07-tendermint-0", "connection-0", "")
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))

	var msg connectiontypes.MsgConnectionOpenAck
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	requireProofSignedAt(t, msg.ProofTry, 10, host.ConnectionPath("connection-0"), connection)
	requireProofSignedAt(t, msg.ProofClient, 11, host.FullClientStatePath("07-tendermint-0"), clientState)
	requireProofSignedAt(t, msg.ProofConsensus, 12,
		host.FullConsensusStatePath("07-tendermint-0", clientState.LatestHeight), consensusState)
	require.Equal(t, clienttypes.NewHeight(0, 13), msg.ProofHeight)
	require.Equal(t, clientState.LatestHeight, msg.ConsensusHeight)

	chain, found, err := chains.Get("test-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(13), chain.Sequence)
}

func TestChannelOpenInitScenario(t *testing.T) {
	t.Parallel()

	factory, chains := newFactory(t, queryhandler.New())
	chains.Register(testChain(1))

	result, err := factory.ChannelOpenInit(context.Background(), "test-1", "connection-0", "")
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))

	var msg channeltypes.MsgChannelOpenInit
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	require.Equal(t, channeltypes.INIT, msg.Channel.State)
	require.Equal(t, channeltypes.UNORDERED, msg.Channel.Ordering)
	require.Equal(t, []string{"connection-0"}, msg.Channel.ConnectionHops)
	require.Equal(t, "ics20-1", msg.Channel.Version)
}

func TestChannelOpenAckScenarioSignsAtStartSequence(t *testing.T) {
	t.Parallel()

	channel := &channeltypes.Channel{State: channeltypes.TRYOPEN}
	query := queryhandler.New()
	query.SetChannel("transfer", "channel-0", channel)

	factory, chains := newFactory(t, query)
	chains.Register(testChain(20))

	result, err := factory.ChannelOpenAck(context.Background(), "test-1", "channel-1", "channel-0", "")
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))

	var msg channeltypes.MsgChannelOpenAck
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	requireProofSignedAt(t, msg.ProofTry, 20, host.ChannelPath("transfer", "channel-0"), channel)
	require.Equal(t, clienttypes.NewHeight(0, 21), msg.ProofHeight)
	require.Equal(t, "ics20-1", msg.CounterpartyVersion)

	chain, found, err := chains.Get("test-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(21), chain.Sequence)
}

func TestChannelOpenAckDryRunLeavesChainServiceSequenceUnchanged(t *testing.T) {
	t.Parallel()

	channel := &channeltypes.Channel{State: channeltypes.TRYOPEN}
	query := queryhandler.New()
	query.SetChannel("transfer", "channel-0", channel)

	factory, chains := newFactory(t, query)
	chains.Register(testChain(20))

	result, err := factory.ChannelOpenAck(
		context.Background(), "test-1", "channel-1", "channel-0", "", handshake.WithDryRun(),
	)
	require.NoError(t, err)

	var body txtypes.TxBody
	require.NoError(t, proto.Unmarshal(result.Tx.BodyBytes, &body))

	var msg channeltypes.MsgChannelOpenAck
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	require.Equal(t, clienttypes.NewHeight(0, 21), msg.ProofHeight)

	chain, found, err := chains.Get("test-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(20), chain.Sequence)
}

func TestCreateSoloMachineClientReplayIsDeterministic(t *testing.T) {
	t.Parallel()

	factory1, chains1 := newFactory(t, queryhandler.New())
	chains1.Register(testChain(1))
	result1, err := factory1.CreateSoloMachineClient(context.Background(), "test-1", "")
	require.NoError(t, err)

	factory2, chains2 := newFactory(t, queryhandler.New())
	chains2.Register(testChain(1))
	result2, err := factory2.CreateSoloMachineClient(context.Background(), "test-1", "")
	require.NoError(t, err)

	require.Equal(t, result1.Tx.BodyBytes, result2.Tx.BodyBytes)
	require.Equal(t, result1.Tx.AuthInfoBytes, result2.Tx.AuthInfoBytes)
	require.Equal(t, result1.Tx.Signatures, result2.Tx.Signatures)
}
