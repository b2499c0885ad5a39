// Package keyderiv derives the ECDSA (secp256k1) signing key, compressed
// public key, and bech32 account address used throughout the solo-machine
// transaction builder from a single BIP-39 mnemonic.
package keyderiv

import (
	"cosmossdk.io/errors"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	bip39 "github.com/cosmos/go-bip39"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// CoinType is the BIP-44 coin type used to derive solo-machine signing keys;
// 118 is the registered Cosmos coin type.
const CoinType = 118

// Adapter derives key material from a single mnemonic. It is stateless
// beyond the mnemonic itself and safe to share across goroutines.
type Adapter struct {
	mnemonic string
}

// New validates the mnemonic and returns an Adapter bound to it.
func New(mnemonic string) (*Adapter, error) {
	if _, err := bip39.NewSeedWithErrorChecking(mnemonic, ""); err != nil {
		return nil, errors.Wrap(model.ErrCryptoFailure, "invalid mnemonic: "+err.Error())
	}
	return &Adapter{mnemonic: mnemonic}, nil
}

// SigningKey derives the secp256k1 private scalar used to sign both the
// transaction SignDoc and the solo-machine proof SignBytes.
func (a *Adapter) SigningKey() (*secp256k1.PrivKey, error) {
	hdPath := hd.CreateHDPath(CoinType, 0, 0).String()
	derivedKey, err := hd.Secp256k1.Derive()(a.mnemonic, "", hdPath)
	if err != nil {
		return nil, errors.Wrap(model.ErrCryptoFailure, "deriving key: "+err.Error())
	}

	privKey, ok := hd.Secp256k1.Generate()(derivedKey).(*secp256k1.PrivKey)
	if !ok {
		return nil, errors.Wrap(model.ErrCryptoFailure, "derived key is not secp256k1")
	}
	return privKey, nil
}

// PublicKey returns the compressed SEC1 public key wrapped as an Any, using
// the canonical Cosmos secp256k1 pubkey type URL
// (/cosmos.crypto.secp256k1.PubKey).
func (a *Adapter) PublicKey() (*codectypes.Any, error) {
	privKey, err := a.SigningKey()
	if err != nil {
		return nil, err
	}

	pubKeyAny, err := codectypes.NewAnyWithValue(privKey.PubKey())
	if err != nil {
		return nil, errors.Wrap(model.ErrEncodingFailure, "wrapping public key: "+err.Error())
	}
	return pubKeyAny, nil
}

// AccountAddress derives the bech32 account address for the given HRP:
// bech32(hrp, ripemd160(sha256(compressed_pubkey))).
func (a *Adapter) AccountAddress(hrp string) (string, error) {
	privKey, err := a.SigningKey()
	if err != nil {
		return "", err
	}

	addr := privKey.PubKey().Address()
	encoded, err := bech32.ConvertAndEncode(hrp, addr.Bytes())
	if err != nil {
		return "", errors.Wrap(model.ErrCryptoFailure, "invalid account prefix: "+err.Error())
	}
	return encoded, nil
}
