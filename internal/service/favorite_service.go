package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type FavoriteService struct {
	favorites ports.FavoriteRepository
}

type FavoriteListResult struct {
	Items  []domain.FavoriteRecipe
	Total  int64
	Limit  int
	Offset int
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favoriteRepo}
}

// ListFavorites returns the recipes the user liked, most recently liked first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) (*FavoriteListResult, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}

	items, err := s.favorites.ListRecipesByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.favorites.CountRecipesByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &FavoriteListResult{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
