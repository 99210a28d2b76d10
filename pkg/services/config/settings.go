package config

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

const (
	sectionName = "runai"
	keyAPIURL   = "api_url"
	keyToken    = "token"

	defaultFileName = ".runaicfg"
)

// Store is the settings store the connection is read from and written to.
// Values are global to the user, not to a working directory.
type Store interface {
	Get(ctx context.Context) (domain.ConnectionConfig, error)
	Update(ctx context.Context, cfg domain.ConnectionConfig) error
}

type fileStore struct {
	path string
}

func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if usr, uerr := user.Current(); uerr == nil {
			home = usr.HomeDir
		}
	}
	return filepath.Join(home, defaultFileName)
}

func (fs *fileStore) Get(_ context.Context) (domain.ConnectionConfig, error) {
	cfg, err := fs.load()
	if err != nil {
		return domain.ConnectionConfig{}, err
	}

	section := cfg.Section(sectionName)
	return domain.ConnectionConfig{
		APIURL: section.Key(keyAPIURL).String(),
		Token:  section.Key(keyToken).String(),
	}, nil
}

// Update writes the api url and, when set, the token. An empty token keeps
// whatever token is already stored. A file that no longer parses is replaced.
func (fs *fileStore) Update(ctx context.Context, conn domain.ConnectionConfig) error {
	cfg, err := fs.load()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", fs.path).Msg("overwriting unreadable settings file")
		cfg = ini.Empty()
	}

	section := cfg.Section(sectionName)
	section.Key(keyAPIURL).SetValue(conn.APIURL)
	if conn.Token != "" {
		section.Key(keyToken).SetValue(conn.Token)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(fs.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fs.path, err)
	}
	// the file holds the token, so an older looser mode is tightened
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to restrict %s: %w", fs.path, err)
	}
	if _, err := cfg.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", fs.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", fs.path, err)
	}
	return nil
}

// load treats a missing file as an empty one.
func (fs *fileStore) load() (*ini.File, error) {
	cfg, err := ini.LooseLoad(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fs.path, err)
	}
	return cfg, nil
}
