package toml

import (
	"fmt"
	"time"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Address    string    `toml:"address"`
	Token      string    `toml:"token"`
	ObtainedAt time.Time `toml:"obtained_at,omitempty"`
}

func toSchema(record domain.SessionRecord) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Session: sessionSchema{
			Address:    record.Address,
			Token:      record.Token,
			ObtainedAt: record.ObtainedAt,
		},
	}
}

func fromSchema(file fileSchema) domain.SessionRecord {
	return domain.SessionRecord{
		Address:    file.Session.Address,
		Token:      file.Session.Token,
		ObtainedAt: file.Session.ObtainedAt,
	}
}
