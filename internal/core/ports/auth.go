package ports

import (
	"context"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// UserRepository persists staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthService registers staff accounts and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
