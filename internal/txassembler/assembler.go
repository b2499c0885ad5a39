// Package txassembler composes TxBody, AuthInfo, and SignDoc for a set of
// payload messages, signs the SignDoc, and emits a TxRaw whose body_bytes
// and auth_info_bytes are exactly the bytes that were signed.
package txassembler

import (
	"context"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txsigning "github.com/cosmos/cosmos-sdk/types/tx/signing"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/gogoproto/proto"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/encoding"
	"github.com/tokenize-x/solomachine-txbuilder/pkg/keyderiv"
)

// Assembler composes and signs transactions for a single mnemonic's signing
// key. It performs no sequence mutation of its own; the Chain's sequence is
// the Proof Signer's concern, not the Assembler's.
type Assembler struct {
	keys     *keyderiv.Adapter
	accounts AccountQuerier
	logger   log.Logger
}

// New returns an Assembler that signs with keys and resolves account
// number/sequence through accounts. A nil logger is replaced with a no-op
// logger.
func New(keys *keyderiv.Adapter, accounts AccountQuerier, logger log.Logger) *Assembler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Assembler{keys: keys, accounts: accounts, logger: logger}
}

// Build assembles, signs, and returns a TxRaw carrying messages as its
// payload. messages must be non-empty.
func (a *Assembler) Build(
	ctx context.Context, chain model.Chain, messages []proto.Message, memo string,
) (*txtypes.TxRaw, error) {
	if len(messages) == 0 {
		return nil, errors.Wrap(model.ErrEncodingFailure, "cannot build a transaction with no messages")
	}

	bodyBytes, err := a.buildTxBody(messages, memo)
	if err != nil {
		return nil, err
	}

	signerAddr, err := a.keys.AccountAddress(chain.AccountPrefix)
	if err != nil {
		return nil, err
	}

	accountNumber, accountSequence, err := a.accounts.GetAccount(ctx, chain.GRPCAddr, signerAddr)
	if err != nil {
		return nil, errors.Wrapf(model.ErrTransportFailure, "looking up account %s: %s", signerAddr, err)
	}

	authInfoBytes, err := a.buildAuthInfo(chain, accountSequence)
	if err != nil {
		return nil, err
	}

	signature, err := a.sign(bodyBytes, authInfoBytes, chain.ID.String(), accountNumber)
	if err != nil {
		return nil, err
	}

	a.logger.Info("assembled transaction",
		"chain_id", chain.ID.String(),
		"account_number", accountNumber,
		"account_sequence", accountSequence,
		"message_count", len(messages),
	)

	return &txtypes.TxRaw{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		Signatures:    [][]byte{signature},
	}, nil
}

func (a *Assembler) buildTxBody(messages []proto.Message, memo string) ([]byte, error) {
	anys, err := encoding.ToAnyList(messages)
	if err != nil {
		return nil, err
	}

	body := &txtypes.TxBody{
		Messages:                    anys,
		Memo:                        memo,
		TimeoutHeight:               0,
		ExtensionOptions:            nil,
		NonCriticalExtensionOptions: nil,
	}
	return encoding.Encode(body)
}

func (a *Assembler) buildAuthInfo(chain model.Chain, accountSequence uint64) ([]byte, error) {
	pubKeyAny, err := a.keys.PublicKey()
	if err != nil {
		return nil, err
	}

	signerInfo := &txtypes.SignerInfo{
		PublicKey: pubKeyAny,
		ModeInfo: &txtypes.ModeInfo{
			Sum: &txtypes.ModeInfo_Single_{
				Single: &txtypes.ModeInfo_Single{Mode: txsigning.SignMode_SIGN_MODE_DIRECT},
			},
		},
		Sequence: accountSequence,
	}

	fee := &txtypes.Fee{
		Amount: sdk.Coins{sdk.NewCoin(chain.Fee.Denom, chain.Fee.Amount)},
		GasLimit: chain.Fee.GasLimit,
		Payer:    "",
		Granter:  "",
	}

	authInfo := &txtypes.AuthInfo{
		SignerInfos: []*txtypes.SignerInfo{signerInfo},
		Fee:         fee,
	}
	return encoding.Encode(authInfo)
}

func (a *Assembler) sign(bodyBytes, authInfoBytes []byte, chainID string, accountNumber uint64) ([]byte, error) {
	signDoc := &txtypes.SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}

	preimage, err := encoding.Encode(signDoc)
	if err != nil {
		return nil, err
	}

	privKey, err := a.keys.SigningKey()
	if err != nil {
		return nil, err
	}

	signature, err := privKey.Sign(preimage)
	if err != nil {
		return nil, errors.Wrap(model.ErrCryptoFailure, "signing sign doc: "+err.Error())
	}
	return signature, nil
}
