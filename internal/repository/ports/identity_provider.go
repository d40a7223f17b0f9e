package ports

import (
	"context"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

// IdentityProvider resolves the caller behind a bearer token. An empty token
// means an anonymous caller.
type IdentityProvider interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
