package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

const maxGraphResponseBytes = 1 << 20

// Client speaks the social-graph GraphQL API over HTTP and implements
// ports.SocialGraphClient. Expected service rejections surface as
// KindRejectedByService; anything that keeps the request from completing is
// KindTransport.
type Client struct {
	Endpoint       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	PollInterval   time.Duration
	PollBudget     time.Duration
	Sessions       ports.SessionStore
}

var _ ports.SocialGraphClient = (*Client)(nil)

type graphRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphError struct {
	Message string `json:"message"`
}

type graphResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphError    `json:"errors"`
}

func (c *Client) GenerateChallenge(ctx context.Context, address string) (domain.Challenge, error) {
	var payload struct {
		Challenge struct {
			Text string `json:"text"`
		} `json:"challenge"`
	}

	vars := map[string]any{"request": map[string]any{"signedBy": address}}
	if err := c.post(ctx, "", challengeQuery, vars, &payload); err != nil {
		return domain.Challenge{}, fmt.Errorf("request challenge: %w", err)
	}
	if payload.Challenge.Text == "" {
		return domain.Challenge{}, domain.NewError(domain.KindTransport, "challenge response missing text")
	}

	return domain.Challenge{Text: payload.Challenge.Text, Address: address}, nil
}

func (c *Client) Authenticate(ctx context.Context, address, signature string) (string, error) {
	var payload struct {
		Authenticate struct {
			AccessToken string `json:"accessToken"`
		} `json:"authenticate"`
	}

	vars := map[string]any{"request": map[string]any{"address": address, "signature": signature}}
	if err := c.post(ctx, "", authenticateMutation, vars, &payload); err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	if payload.Authenticate.AccessToken == "" {
		return "", domain.NewError(domain.KindRejectedByService, "authenticate response missing access token")
	}

	if c.Sessions != nil {
		record := domain.SessionRecord{
			Address:    address,
			Token:      payload.Authenticate.AccessToken,
			ObtainedAt: time.Now(),
		}
		if err := c.Sessions.Save(ctx, record); err != nil {
			return "", fmt.Errorf("cache session token: %w", err)
		}
	}

	return payload.Authenticate.AccessToken, nil
}

func (c *Client) LookupProfile(ctx context.Context, handle string) (*domain.Profile, error) {
	var payload struct {
		Profile *struct {
			ID     string `json:"id"`
			Handle struct {
				FullHandle string `json:"fullHandle"`
			} `json:"handle"`
			Metadata struct {
				DisplayName string `json:"displayName"`
				Bio         string `json:"bio"`
			} `json:"metadata"`
			Stats struct {
				Followers int `json:"followers"`
				Following int `json:"following"`
			} `json:"stats"`
		} `json:"profile"`
	}

	vars := map[string]any{"request": map[string]any{"forHandle": handle}}
	if err := c.post(ctx, "", profileQuery, vars, &payload); err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if payload.Profile == nil {
		return nil, nil
	}

	return &domain.Profile{
		ID:        payload.Profile.ID,
		Handle:    payload.Profile.Handle.FullHandle,
		Name:      payload.Profile.Metadata.DisplayName,
		Bio:       payload.Profile.Metadata.Bio,
		Followers: payload.Profile.Stats.Followers,
		Following: payload.Profile.Stats.Following,
	}, nil
}

func (c *Client) CreatePostTypedData(ctx context.Context, token, contentURI string) (domain.TypedDataEnvelope, error) {
	var payload struct {
		CreateOnchainPostTypedData struct {
			ID        string `json:"id"`
			TypedData struct {
				Domain json.RawMessage `json:"domain"`
				Types  json.RawMessage `json:"types"`
				Value  json.RawMessage `json:"value"`
			} `json:"typedData"`
		} `json:"createOnchainPostTypedData"`
	}

	vars := map[string]any{"request": map[string]any{"contentURI": contentURI}}
	if err := c.post(ctx, token, createOnchainPostTypedDataMutation, vars, &payload); err != nil {
		return domain.TypedDataEnvelope{}, fmt.Errorf("create post typed data: %w", err)
	}
	if payload.CreateOnchainPostTypedData.ID == "" {
		return domain.TypedDataEnvelope{}, domain.NewError(domain.KindTransport, "typed data response missing id")
	}

	return domain.TypedDataEnvelope{
		ID:     payload.CreateOnchainPostTypedData.ID,
		Domain: payload.CreateOnchainPostTypedData.TypedData.Domain,
		Types:  payload.CreateOnchainPostTypedData.TypedData.Types,
		Value:  payload.CreateOnchainPostTypedData.TypedData.Value,
	}, nil
}

func (c *Client) Broadcast(ctx context.Context, token, envelopeID, signature string) (domain.BroadcastOutcome, error) {
	var payload struct {
		BroadcastOnchain struct {
			TxHash string `json:"txHash"`
			Reason string `json:"reason"`
		} `json:"broadcastOnchain"`
	}

	vars := map[string]any{"request": map[string]any{"id": envelopeID, "signature": signature}}
	if err := c.post(ctx, token, broadcastOnchainMutation, vars, &payload); err != nil {
		return domain.BroadcastOutcome{}, fmt.Errorf("broadcast: %w", err)
	}

	if payload.BroadcastOnchain.Reason != "" {
		return domain.BroadcastOutcome{RelayReason: payload.BroadcastOnchain.Reason}, nil
	}
	if payload.BroadcastOnchain.TxHash == "" {
		return domain.BroadcastOutcome{}, domain.NewError(domain.KindTransport, "broadcast response missing tx hash")
	}

	return domain.BroadcastOutcome{TxHash: payload.BroadcastOnchain.TxHash}, nil
}

// AwaitIndexed polls the indexing status until the service reports the
// transaction as queryable or the polling budget runs out.
func (c *Client) AwaitIndexed(ctx context.Context, token, txHash string) error {
	interval := c.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	budget := c.PollBudget
	if budget <= 0 {
		budget = 90 * time.Second
	}

	deadline := time.Now().Add(budget)
	for {
		indexed, err := c.indexedOnce(ctx, token, txHash)
		if err != nil {
			return err
		}
		if indexed {
			return nil
		}

		if time.Now().Add(interval).After(deadline) {
			return domain.NewError(domain.KindIndexingTimeout, fmt.Sprintf("transaction %s not indexed within %s", txHash, budget))
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) indexedOnce(ctx context.Context, token, txHash string) (bool, error) {
	var payload struct {
		HasTxHashBeenIndexed struct {
			Indexed bool   `json:"indexed"`
			Reason  string `json:"reason"`
		} `json:"hasTxHashBeenIndexed"`
	}

	vars := map[string]any{"request": map[string]any{"forTxHash": txHash}}
	if err := c.post(ctx, token, hasTxHashBeenIndexedQuery, vars, &payload); err != nil {
		return false, fmt.Errorf("check indexing status: %w", err)
	}
	if payload.HasTxHashBeenIndexed.Reason != "" {
		return false, domain.NewError(domain.KindRejectedByService, payload.HasTxHashBeenIndexed.Reason)
	}

	return payload.HasTxHashBeenIndexed.Indexed, nil
}

func (c *Client) ListPublications(ctx context.Context, profileID string, limit int) ([]domain.Publication, error) {
	var payload struct {
		Publications struct {
			Items []struct {
				ID string `json:"id"`
				By struct {
					ID string `json:"id"`
				} `json:"by"`
				Metadata struct {
					Content string `json:"content"`
				} `json:"metadata"`
				CreatedAt time.Time `json:"createdAt"`
			} `json:"items"`
		} `json:"publications"`
	}

	vars := map[string]any{"request": map[string]any{
		"where": map[string]any{
			"from":             []string{profileID},
			"publicationTypes": []string{"POST"},
		},
		"limit": limit,
	}}
	if err := c.post(ctx, "", publicationsQuery, vars, &payload); err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}

	publications := make([]domain.Publication, 0, len(payload.Publications.Items))
	for _, item := range payload.Publications.Items {
		publications = append(publications, domain.Publication{
			ID:              item.ID,
			AuthorProfileID: item.By.ID,
			Content:         item.Metadata.Content,
			CreatedAt:       item.CreatedAt,
		})
	}

	return publications, nil
}

func (c *Client) ActiveToken(ctx context.Context) (string, bool, error) {
	if c.Sessions == nil {
		return "", false, nil
	}

	record, ok, err := c.Sessions.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("load cached session: %w", err)
	}
	if !ok || strings.TrimSpace(record.Token) == "" {
		return "", false, nil
	}

	return record.Token, true, nil
}

// InvalidateSession revokes the token remotely and clears the local cache.
// The local cache is cleared even when the remote revocation fails.
func (c *Client) InvalidateSession(ctx context.Context, token string) error {
	revokeErr := c.post(ctx, token, revokeAuthenticationMutation, nil, nil)

	if c.Sessions != nil {
		if err := c.Sessions.Clear(ctx); err != nil {
			return errors.Join(revokeErr, fmt.Errorf("clear cached session: %w", err))
		}
	}

	if revokeErr != nil {
		return fmt.Errorf("revoke authentication: %w", revokeErr)
	}
	return nil
}

func (c *Client) post(ctx context.Context, token, query string, variables map[string]any, out any) error {
	endpoint, err := c.endpointURL()
	if err != nil {
		return err
	}

	body, err := json.Marshal(graphRequest{Query: query, Variables: variables})
	if err != nil {
		return domain.WrapError(domain.KindTransport, "encode graph request", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.WrapError(domain.KindTransport, "create graph request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.WrapError(domain.KindTransport, "send graph request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.NewError(domain.KindTransport, fmt.Sprintf("graph request: status %d", resp.StatusCode))
	}

	var decoded graphResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGraphResponseBytes)).Decode(&decoded); err != nil {
		return domain.WrapError(domain.KindTransport, "decode graph response", err)
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, graphErr := range decoded.Errors {
			messages = append(messages, graphErr.Message)
		}
		return domain.NewError(domain.KindRejectedByService, strings.Join(messages, "; "))
	}

	if out == nil {
		return nil
	}
	if len(decoded.Data) == 0 {
		return domain.NewError(domain.KindTransport, "graph response missing data")
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return domain.WrapError(domain.KindTransport, "decode graph data", err)
	}

	return nil
}

func (c *Client) endpointURL() (string, error) {
	if c.Endpoint == "" {
		return "", domain.NewError(domain.KindTransport, "graph endpoint is required")
	}

	parsed, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", domain.WrapError(domain.KindTransport, "parse graph endpoint", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", domain.NewError(domain.KindTransport, "graph endpoint must use http or https")
	}
	if parsed.Host == "" {
		return "", domain.NewError(domain.KindTransport, "graph endpoint host is required")
	}

	return parsed.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
