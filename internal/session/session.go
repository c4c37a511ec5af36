// Package session holds the client credential used to authenticate catalog requests.
//
// The credential is read from its repository on every call so that a logout from another
// process is seen by the next request.
package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	sessionrepo "github.com/KirkDiggler/calamity-catalog/internal/repositories/session"
)

// CredentialName is the fixed key the bearer token is stored under
const CredentialName = "jwt_token"

// Config configures a Session
type Config struct {
	Repository sessionrepo.Repository
	Logger     *slog.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Repository == nil {
		return errors.InvalidArgument("repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return nil
}

// Session owns one credential
type Session struct {
	repo   sessionrepo.Repository
	logger *slog.Logger
}

// New creates a Session over cfg.Repository
func New(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{repo: cfg.Repository, logger: cfg.Logger}, nil
}

// NewInMemory creates a Session that forgets its credential when the process exits
func NewInMemory() *Session {
	return &Session{repo: sessionrepo.NewMemory(), logger: slog.Default()}
}

// Token returns the stored credential, or "" when none is stored
func (s *Session) Token(ctx context.Context) (string, error) {
	out, err := s.repo.Get(ctx, sessionrepo.GetInput{Name: CredentialName})
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read credential")
	}
	return out.Value, nil
}

// SetToken stores a credential after a successful login
func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.InvalidArgument("token cannot be empty")
	}
	if _, err := s.repo.Put(ctx, sessionrepo.PutInput{Name: CredentialName, Value: token}); err != nil {
		return errors.Wrap(err, "failed to store credential")
	}
	s.logger.Debug("credential stored")
	return nil
}

// Clear removes the credential. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	out, err := s.repo.Delete(ctx, sessionrepo.DeleteInput{Name: CredentialName})
	if err != nil {
		return errors.Wrap(err, "failed to clear credential")
	}
	if out.Existed {
		s.logger.Info("credential cleared")
	}
	return nil
}
