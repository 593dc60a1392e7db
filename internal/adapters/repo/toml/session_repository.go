package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	sessionPathKey    = "session.path"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigDir  = ".lensgraph"
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

// Repository persists the single active session record as a TOML file under
// the user's config directory. The token it holds is what a later process
// restores a session from.
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sessionConfigDir, sessionConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sessionConfigDir))
	cfg.SetDefault(sessionPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionPath := cfg.GetString(sessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(record.Token) == "" {
		return errors.New("session record token is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(record))
}

func (r *Repository) Load(ctx context.Context) (domain.SessionRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok, err := r.readSchema()
	if err != nil || !ok {
		return domain.SessionRecord{}, false, err
	}
	if strings.TrimSpace(file.Session.Token) == "" {
		return domain.SessionRecord{}, false, nil
	}

	return fromSchema(file), true, nil
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.sessionPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionPath, sessionFileMode); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
