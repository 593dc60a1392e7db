package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/lensgraph-cli/internal/adapters/codec"
	graphadapter "github.com/bnema/lensgraph-cli/internal/adapters/graph"
	tomlrepo "github.com/bnema/lensgraph-cli/internal/adapters/repo/toml"
	signeradapter "github.com/bnema/lensgraph-cli/internal/adapters/signer"
	"github.com/bnema/lensgraph-cli/internal/application"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

type app struct {
	auth    *application.AuthService
	publish *application.PublishService
	lookup  *application.LookupService
	wallet  ports.WalletSigner
	now     func() time.Time
}

func wireApp() (*app, error) {
	sessions, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	client := &graphadapter.Client{
		Endpoint:       envOrDefault("LG_API_URL", "https://api-v2-mumbai.lens.dev"),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: envDurationOrDefault("LG_REQUEST_TIMEOUT", 30*time.Second),
		PollInterval:   envDurationOrDefault("LG_INDEXING_POLL_INTERVAL", 2*time.Second),
		PollBudget:     envDurationOrDefault("LG_INDEXING_BUDGET", 90*time.Second),
		Sessions:       sessions,
	}

	wallet, err := wireSigner()
	if err != nil {
		return nil, err
	}

	tokenCodec := codec.New()

	return &app{
		auth:    application.NewAuthService(client, wallet, tokenCodec, ports.SystemClock{}),
		publish: application.NewPublishService(client, wallet),
		lookup:  application.NewLookupService(client),
		wallet:  wallet,
		now:     time.Now,
	}, nil
}

// wireSigner builds the wallet from LG_WALLET_MNEMONIC. Without one, a
// declining signer stands in: reads still work and signing operations fail
// with a signature_declined classification instead of a fake key.
func wireSigner() (ports.WalletSigner, error) {
	mnemonic := os.Getenv("LG_WALLET_MNEMONIC")
	if mnemonic == "" {
		return signeradapter.Declining{}, nil
	}

	wallet, err := signeradapter.NewFromMnemonic(mnemonic, os.Getenv("LG_WALLET_PASSPHRASE"))
	if err != nil {
		return nil, fmt.Errorf("wire wallet signer: %w", err)
	}
	return wallet, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
