package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/events"
	"github.com/spec-kit/feed-service/internal/repository"
	"github.com/spec-kit/feed-service/pkg/util"
)

// AuthService issues tokens for known accounts. There is no credential
// verification in this system: presenting a known id is the whole login.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
	}
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login resolves the account and issues a signed token.
func (s *AuthService) Login(ctx context.Context, id string) (string, time.Time, error) {
	user, ok := s.users.GetByID(ctx, id)
	if !ok {
		return "", time.Time{}, util.NewUnauthorized("Invalid user ID")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, util.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserLoggedIn,
			Actor:     events.Actor{UserID: user.ID, Role: user.Role},
			Timestamp: time.Now(),
			Payload:   events.UserLoggedInPayload{UserID: user.ID, Role: user.Role},
		})
	}

	return token, expiresAt, nil
}
