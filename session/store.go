package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/octabyte/becas-client/models"
	"github.com/octabyte/becas-client/storage"
)

const (
	userKey   = "user"
	tokensKey = "tokens"
)

// Store mirrors a session into durable storage as two JSON values.
type Store struct {
	backend   storage.Storage
	userKey   string
	tokensKey string
}

// NewStore namespaces both keys with prefix, which may be empty.
func NewStore(backend storage.Storage, prefix string) *Store {
	return &Store{
		backend:   backend,
		userKey:   prefix + userKey,
		tokensKey: prefix + tokensKey,
	}
}

// Load returns the persisted session, or nil when none is usable. A nil
// session with a nil error means nothing was stored; a non-nil error
// explains why stored data was discarded and is never fatal.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	rawUser, err := s.backend.Get(ctx, s.userKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.userKey, err)
	}

	rawTokens, err := s.backend.Get(ctx, s.tokensKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.tokensKey, err)
	}

	if isNull(rawUser) || isNull(rawTokens) {
		return nil, errNullValue
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.userKey, err)
	}
	var tokens models.TokenSet
	if err := json.Unmarshal([]byte(rawTokens), &tokens); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.tokensKey, err)
	}

	return &models.Session{User: &user, Tokens: &tokens}, nil
}

var errNullValue = errors.New("stored session value is null")

func isNull(raw string) bool {
	return strings.TrimSpace(raw) == "null"
}

// Save writes tokens first, then the user. If the user write fails, both
// keys are removed so an earlier user can never pair with the new tokens.
func (s *Store) Save(ctx context.Context, user models.User, tokens models.TokenSet) error {
	rawTokens, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := s.backend.Set(ctx, s.tokensKey, string(rawTokens)); err != nil {
		return fmt.Errorf("write %s: %w", s.tokensKey, err)
	}
	if err := s.backend.Set(ctx, s.userKey, string(rawUser)); err != nil {
		err = fmt.Errorf("write %s: %w", s.userKey, err)
		if delErr := s.backend.Del(ctx, s.userKey, s.tokensKey); delErr != nil {
			return errors.Join(err, fmt.Errorf("clear partial session: %w", delErr))
		}
		return err
	}
	return nil
}

// Clear removes both keys in a single backend call.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Del(ctx, s.userKey, s.tokensKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
