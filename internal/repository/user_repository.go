package repository

import (
	"context"

	"github.com/spec-kit/feed-service/internal/domain"
)

// UserRepository resolves known accounts. The backing list is static for the
// lifetime of the process; there is no registration flow in this system.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, bool)
}

type staticUserRepository struct {
	users map[string]domain.User
}

// NewStaticUserRepository builds a repository over a fixed account list.
func NewStaticUserRepository(users []domain.User) UserRepository {
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &staticUserRepository{users: byID}
}

func (r *staticUserRepository) GetByID(ctx context.Context, id string) (*domain.User, bool) {
	user, ok := r.users[id]
	if !ok {
		return nil, false
	}
	return &user, true
}
