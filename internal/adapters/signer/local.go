package signer

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/bnema/lensgraph-cli/internal/ports"
)

const hkdfInfoSigning = "lensgraph/wallet/signing/v1"

// Local is a wallet signer backed by a key derived from a BIP-39 mnemonic.
// It exists so the CLI works end to end without an external wallet; the
// orchestration core only ever sees the ports.WalletSigner contract.
type Local struct {
	priv    ed25519.PrivateKey
	address string
}

var _ ports.WalletSigner = (*Local)(nil)

func NewFromMnemonic(mnemonic, passphrase string) (*Local, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("mnemonic is not a valid BIP-39 phrase")
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	signingSeed, err := hkdfExpand(seed, hkdfInfoSigning, ed25519.SeedSize)
	if err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}

	priv := ed25519.NewKeyFromSeed(signingSeed)
	pub := priv.Public().(ed25519.PublicKey)

	return &Local{priv: priv, address: deriveAddress(pub)}, nil
}

// Address is the wallet address the signer proves ownership of.
func (s *Local) Address() string {
	return s.address
}

func (s *Local) SignMessage(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.priv) == 0 {
		return "", ports.ErrSignatureDeclined
	}

	return encodeSignature(ed25519.Sign(s.priv, []byte(text))), nil
}

func (s *Local) SignTypedData(ctx context.Context, typedDomain, types, value json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.priv) == 0 {
		return "", ports.ErrSignatureDeclined
	}

	digest := typedDataDigest(typedDomain, types, value)
	return encodeSignature(ed25519.Sign(s.priv, digest)), nil
}

// typedDataDigest hashes the three envelope parts with length prefixes so no
// two distinct envelopes share a digest.
func typedDataDigest(parts ...json.RawMessage) []byte {
	h := sha256.New()
	for _, part := range parts {
		_ = binary.Write(h, binary.BigEndian, uint64(len(part)))
		h.Write(part)
	}
	return h.Sum(nil)
}

func hkdfExpand(seed []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, seed, nil, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

// deriveAddress keeps the familiar 0x-prefixed 20-byte form: the last twenty
// bytes of the Keccak-256 hash of the public key.
func deriveAddress(pub ed25519.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	digest := h.Sum(nil)
	return "0x" + hex.EncodeToString(digest[len(digest)-20:])
}

func encodeSignature(sig []byte) string {
	return "0x" + hex.EncodeToString(sig)
}

// Declining refuses every signing request. It stands in when no wallet is
// configured, so login surfaces a signature_declined classification instead
// of pretending a key exists.
type Declining struct{}

var _ ports.WalletSigner = Declining{}

func (Declining) SignMessage(ctx context.Context, text string) (string, error) {
	return "", ports.ErrSignatureDeclined
}

func (Declining) SignTypedData(ctx context.Context, typedDomain, types, value json.RawMessage) (string, error) {
	return "", ports.ErrSignatureDeclined
}
