// Package encoding provides the canonical, deterministic protobuf encoding
// used for every message and proof the builder produces. It never emits
// unknown fields and fails closed on types it cannot wrap.
package encoding

import (
	"cosmossdk.io/errors"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/tokenize-x/solomachine-txbuilder/internal/model"
)

// Encode protobuf-encodes msg. Identical logical messages always produce
// identical bytes: gogoproto's marshalling is deterministic for the message
// types this builder uses (no maps, stable field order).
func Encode(msg proto.Message) ([]byte, error) {
	bz, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(model.ErrEncodingFailure, "encoding %T: %s", msg, err)
	}
	return bz, nil
}

// ToAny wraps msg in an Any envelope, tagging it with msg's compile-time
// registered type URL.
func ToAny(msg proto.Message) (*codectypes.Any, error) {
	any, err := codectypes.NewAnyWithValue(msg)
	if err != nil {
		return nil, errors.Wrapf(model.ErrEncodingFailure, "wrapping %T as Any: %s", msg, err)
	}
	return any, nil
}

// ToAnyList wraps every message in msgs as an Any, preserving order. The
// first failure aborts the whole conversion: a partially wrapped list is
// never returned.
func ToAnyList[T proto.Message](msgs []T) ([]*codectypes.Any, error) {
	anys := make([]*codectypes.Any, len(msgs))
	for i, msg := range msgs {
		any, err := ToAny(msg)
		if err != nil {
			return nil, err
		}
		anys[i] = any
	}
	return anys, nil
}
