package vault

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"github.com/mod7ex/chrome-ext-test/internal/cryptox"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"github.com/mod7ex/chrome-ext-test/internal/server/repositories/kv"
)

type State = protocol.State

// Store owns the user record. Memory is only updated after the
// corresponding repository write has succeeded, so a failed write leaves
// the previous state in place.
type Store struct {
	mu     sync.RWMutex
	repo   kv.Repository
	codec  cryptox.Codec
	logger logging.Logger
	state  State
}

func NewStore(repo kv.Repository, codec cryptox.Codec, logger logging.Logger) *Store {
	if codec == nil {
		codec = cryptox.Identity{}
	}
	return &Store{repo: repo, codec: codec, logger: logger.With("module", "vault")}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load reads the persisted fields into memory. authenticated is reset.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.repo.Get(ctx, common.KeySecret, common.KeyInitialized)
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	var next State
	if raw, ok := values[common.KeySecret]; ok && len(raw) > 0 {
		secret, err := s.codec.Decode(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrCorruptState, common.KeySecret, err)
		}
		next.Secret = string(secret)
	}
	if raw, ok := values[common.KeyInitialized]; ok && len(raw) > 0 {
		initialized, err := strconv.ParseBool(string(raw))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrCorruptState, common.KeyInitialized, err)
		}
		next.Initialized = initialized
	}

	s.state = next
	s.logger.Info(ctx, "state loaded", "initialized", next.Initialized, "has_secret", next.Secret != "")
	return nil
}

func (s *Store) StoreSecret(ctx context.Context, secret string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := s.codec.Encode([]byte(secret))
	if err != nil {
		return s.state, fmt.Errorf("encode error: %w", err)
	}
	if err := s.repo.Set(ctx, map[string][]byte{common.KeySecret: encoded}); err != nil {
		return s.state, err
	}

	s.state.Secret = secret
	return s.state, nil
}

func (s *Store) Init(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, map[string][]byte{common.KeyInitialized: []byte(strconv.FormatBool(true))}); err != nil {
		return s.state, err
	}

	s.state.Initialized = true
	return s.state, nil
}

// SignIn refuses an uninitialized record so that authenticated always
// implies initialized.
func (s *Store) SignIn(_ context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Initialized {
		return s.state, common.ErrNotInitialized
	}
	s.state.Authenticated = true
	return s.state, nil
}

func (s *Store) SignOut(_ context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Authenticated = false
	return s.state, nil
}

// Reset wipes every persisted key and all in-memory fields.
func (s *Store) Reset(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return s.state, err
	}

	s.state = State{}
	s.logger.Info(ctx, "state wiped")
	return s.state, nil
}
