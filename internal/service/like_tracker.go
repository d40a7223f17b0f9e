package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/metrics"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

// ToggleObserver receives one outcome per toggle. *metrics.Metrics satisfies it.
type ToggleObserver interface {
	ObserveToggle(outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveToggle(string) {}

// LikeTracker keeps the per-user like flag and per-recipe like count in step
// with the favorites table. It holds no state of its own; the unique
// (user_id, recipe_id) pair in the store is what makes concurrent toggles safe.
//
// None of its operations fail. Store or identity errors are logged and the
// caller gets a safe state back: the unchanged prior state for a toggle and
// the zero state for a fetch.
type LikeTracker struct {
	favorites ports.FavoriteRepository
	identity  ports.IdentityProvider
	observer  ToggleObserver
}

func NewLikeTracker(favorites ports.FavoriteRepository, identity ports.IdentityProvider, observer ToggleObserver) *LikeTracker {
	if observer == nil {
		observer = noopObserver{}
	}
	return &LikeTracker{favorites: favorites, identity: identity, observer: observer}
}

// FetchState derives the like state from the recipe's favorites. Anonymous
// callers, and callers whose token no longer authenticates, get the public
// count with liked=false.
func (t *LikeTracker) FetchState(ctx context.Context, token string, recipeID uuid.UUID) domain.LikeState {
	user, err := t.identity.CurrentUser(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			logging.Warn(ctx).Err(err).Str("recipe_id", recipeID.String()).Msg("like state: identity lookup failed")
			return domain.LikeState{}
		}
		// Expired or revoked tokens read like anonymous callers.
		user = nil
	}

	favorites, err := t.favorites.ListByRecipe(ctx, recipeID)
	if err != nil {
		logging.Error(ctx).Err(err).Str("recipe_id", recipeID.String()).Msg("like state: list favorites failed")
		return domain.LikeState{}
	}
	return domain.LikeStateFrom(favorites, user)
}

// Refresh re-reads the true aggregate after a toggle has settled.
func (t *LikeTracker) Refresh(ctx context.Context, token string, recipeID uuid.UUID) domain.LikeState {
	return t.FetchState(ctx, token, recipeID)
}

// Toggle flips the caller's like using current as the starting point. The
// returned count is adjusted from current rather than re-read, so it can lag
// the real aggregate until the next Refresh.
func (t *LikeTracker) Toggle(ctx context.Context, token string, recipeID uuid.UUID, current domain.LikeState) domain.LikeState {
	user, err := t.identity.CurrentUser(ctx, token)
	if err != nil || user == nil || recipeID == uuid.Nil {
		if err != nil {
			logging.Warn(ctx).Err(err).Str("recipe_id", recipeID.String()).Msg("like toggle: identity lookup failed")
		}
		t.observer.ObserveToggle(metrics.ToggleUnauthenticated)
		return current.Collapse(current.Liked)
	}

	if current.Liked {
		return t.unlike(ctx, user.ID, recipeID, current)
	}
	return t.like(ctx, user.ID, recipeID, current)
}

func (t *LikeTracker) unlike(ctx context.Context, userID, recipeID uuid.UUID, current domain.LikeState) domain.LikeState {
	exists, err := t.favorites.Exists(ctx, userID, recipeID)
	if err != nil {
		return t.failed(ctx, err, userID, recipeID, current, "check favorite")
	}
	if !exists {
		t.observer.ObserveToggle(metrics.ToggleCollapsed)
		return current.Collapse(false)
	}

	if err := t.favorites.Remove(ctx, userID, recipeID); err != nil {
		if isNotFound(err) {
			// Removed by a concurrent request between the check and the delete.
			t.observer.ObserveToggle(metrics.ToggleCollapsed)
			return current.Collapse(false)
		}
		return t.failed(ctx, err, userID, recipeID, current, "remove favorite")
	}
	t.observer.ObserveToggle(metrics.ToggleUnliked)
	return current.UnlikedBy()
}

func (t *LikeTracker) like(ctx context.Context, userID, recipeID uuid.UUID, current domain.LikeState) domain.LikeState {
	if _, err := t.favorites.Add(ctx, userID, recipeID); err != nil {
		if isNotFound(err) || isUniqueViolation(err) {
			t.observer.ObserveToggle(metrics.ToggleCollapsed)
			return current.Collapse(true)
		}
		return t.failed(ctx, err, userID, recipeID, current, "add favorite")
	}
	t.observer.ObserveToggle(metrics.ToggleLiked)
	return current.LikedBy()
}

func (t *LikeTracker) failed(ctx context.Context, err error, userID, recipeID uuid.UUID, current domain.LikeState, action string) domain.LikeState {
	logging.Error(ctx).Err(err).
		Str("user_id", userID.String()).
		Str("recipe_id", recipeID.String()).
		Msg("like toggle: " + action + " failed")
	t.observer.ObserveToggle(metrics.ToggleFailed)
	return current.Collapse(current.Liked)
}
