package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/config"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

type ClientFactory func(cfg domain.ConnectionConfig) (client.RunAI, error)

// Overrides adjusts the stored connection before a client is built.
type Overrides func(cfg domain.ConnectionConfig) domain.ConnectionConfig

// Session owns the current connection and the client built from it. It is
// created once and handed to every provider and command.
type Session struct {
	store     config.Store
	factory   ClientFactory
	overrides Overrides

	mu        sync.RWMutex
	cfg       domain.ConnectionConfig
	client    client.RunAI
	listeners []func(client.RunAI)
}

type Option func(*Session)

func WithOverrides(o Overrides) Option {
	return func(s *Session) {
		s.overrides = o
	}
}

// New loads the stored connection. An unconfigured store is not an error;
// the session simply has no client until Configure is called. When loading
// fails the session is still returned, without a client, next to the error.
func New(ctx context.Context, store config.Store, factory ClientFactory, opts ...Option) (*Session, error) {
	s := &Session{store: store, factory: factory}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Client is the capability check every caller performs before calling out.
func (s *Session) Client() (client.RunAI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client, s.client != nil
}

func (s *Session) Config() domain.ConnectionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Session) Configured() bool {
	_, ok := s.Client()
	return ok
}

// Subscribe registers fn to receive every client built after a reconfiguration.
func (s *Session) Subscribe(fn func(client.RunAI)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload re-reads the store and rebuilds the client.
func (s *Session) Reload(ctx context.Context) error {
	cfg, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load connection settings: %w", err)
	}
	return s.apply(ctx, cfg)
}

// Configure builds a client from cfg and persists cfg only once the client
// exists, so a rejected url never reaches the store. An empty token keeps
// the stored one.
func (s *Session) Configure(ctx context.Context, cfg domain.ConnectionConfig) error {
	if !cfg.Configured() {
		return fmt.Errorf("api url is required")
	}
	if cfg.Token == "" {
		if stored, err := s.store.Get(ctx); err == nil {
			cfg.Token = stored.Token
		}
	}

	resolved, c, err := s.build(cfg)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save connection settings: %w", err)
	}
	s.swap(ctx, resolved, c)
	return nil
}

func (s *Session) apply(ctx context.Context, cfg domain.ConnectionConfig) error {
	resolved, c, err := s.build(cfg)
	if err != nil {
		return err
	}
	s.swap(ctx, resolved, c)
	return nil
}

// build applies the overrides and creates a client when the result has an
// api url. The returned client is nil for an unconfigured connection.
func (s *Session) build(cfg domain.ConnectionConfig) (domain.ConnectionConfig, client.RunAI, error) {
	if s.overrides != nil {
		cfg = s.overrides(cfg)
	}
	if !cfg.Configured() {
		return cfg, nil, nil
	}
	c, err := s.factory(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return cfg, c, nil
}

func (s *Session) swap(ctx context.Context, cfg domain.ConnectionConfig, c client.RunAI) {
	s.mu.Lock()
	s.cfg = cfg
	s.client = c
	listeners := append([]func(client.RunAI){}, s.listeners...)
	s.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("api_url", cfg.APIURL).Bool("configured", c != nil).Msg("session updated")

	if c == nil {
		return
	}
	for _, fn := range listeners {
		fn(c)
	}
}
