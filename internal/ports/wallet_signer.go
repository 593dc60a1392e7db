package ports

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrSignatureDeclined marks a wallet that cannot or will not sign. It is a
// distinct condition from a transport failure and is never downgraded.
var ErrSignatureDeclined = errors.New("wallet declined to sign")

// WalletSigner is the capability boundary to the key holder. The core never
// touches private key material.
type WalletSigner interface {
	SignMessage(ctx context.Context, text string) (string, error)
	SignTypedData(ctx context.Context, typedDomain, types, value json.RawMessage) (string, error)
}
