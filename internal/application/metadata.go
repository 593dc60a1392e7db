package application

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

const (
	metadataVersion      = "2.0.0"
	metadataLocale       = "en-US"
	metadataContentFocus = "TEXT_ONLY"
	maxDescriptionRunes  = 250
)

// BuildMetadata derives the wire metadata for a draft. Every call mints a
// fresh metadata identifier, so two submit attempts for the same draft are
// distinguishable on the wire.
func BuildMetadata(content string) domain.PublicationMetadata {
	return domain.PublicationMetadata{
		Version:          metadataVersion,
		MetadataID:       "metadata-" + uuid.NewString(),
		Description:      truncateRunes(content, maxDescriptionRunes),
		Content:          content,
		Locale:           metadataLocale,
		Tags:             []string{},
		MainContentFocus: metadataContentFocus,
	}
}

// EncodeContentURI embeds the metadata JSON as a data URI, the form the
// typed-data request expects.
func EncodeContentURI(metadata domain.PublicationMetadata) (string, error) {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("encode publication metadata: %w", err)
	}

	return "data:application/json," + string(payload), nil
}

// truncateRunes cuts at rune boundaries so a multibyte character is never
// split.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
