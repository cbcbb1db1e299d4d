package service

import (
	"context"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/observability"
)

// FavoritesService manages the per-user favorites set. Add and Remove are
// idempotent set operations; repeated application leaves the same state.
type FavoritesService struct {
	userRepo domain.UserRepository
}

func NewFavoritesService(userRepo domain.UserRepository) *FavoritesService {
	return &FavoritesService{userRepo: userRepo}
}

// Add puts an item into the user's favorites. Adding a present item is a
// no-op that still succeeds.
func (s *FavoritesService) Add(ctx context.Context, userID, item string) error {
	if item == "" {
		return domain.ErrInvalidInput
	}

	if err := s.userRepo.AddFavorite(ctx, userID, item); err != nil {
		return err
	}

	observability.FavoritesMutations.WithLabelValues("add").Inc()
	return nil
}

// Remove deletes an item from the user's favorites. Removing an absent item
// succeeds silently.
func (s *FavoritesService) Remove(ctx context.Context, userID, item string) error {
	if err := s.userRepo.RemoveFavorite(ctx, userID, item); err != nil {
		return err
	}

	observability.FavoritesMutations.WithLabelValues("remove").Inc()
	return nil
}

// List returns the user's favorites. An account with no favorites yields an
// empty slice; a vanished account yields domain.ErrUserNotFound.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]string, error) {
	return s.userRepo.ListFavorites(ctx, userID)
}
