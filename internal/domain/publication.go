package domain

import (
	"encoding/json"
	"time"
)

// PublicationDraft is user-owned content that has not been broadcast yet.
// The caller keeps it until a submit attempt fully succeeds.
type PublicationDraft struct {
	Content string
}

// PublicationMetadata is the wire-facing description of a post. Immutable
// once built; a fresh one (with a fresh MetadataID) is built per attempt.
type PublicationMetadata struct {
	Version          string   `json:"version"`
	MetadataID       string   `json:"metadata_id"`
	Description      string   `json:"description"`
	Content          string   `json:"content"`
	Locale           string   `json:"locale"`
	Tags             []string `json:"tags"`
	MainContentFocus string   `json:"mainContentFocus"`
}

// TypedDataEnvelope is the structured payload the service asks the wallet to
// sign. Domain, Types and Value are opaque to the core; only the signer
// interprets them. An envelope is consumed by exactly one signing attempt.
type TypedDataEnvelope struct {
	ID     string
	Domain json.RawMessage
	Types  json.RawMessage
	Value  json.RawMessage
}

// BroadcastOutcome is a tagged result: either the relay accepted the
// transaction (TxHash set) or it refused (RelayReason set), never both.
type BroadcastOutcome struct {
	TxHash      string
	RelayReason string
}

func (o BroadcastOutcome) Rejected() bool {
	return o.RelayReason != ""
}

// Publication is a single authored post as returned by the graph service.
type Publication struct {
	ID              string    `json:"id"`
	AuthorProfileID string    `json:"author_profile_id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}

// FeedPage holds publications in the order the service returned them,
// reverse-chronological by convention.
type FeedPage struct {
	Items []Publication `json:"items"`
}
