package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type ProfileService struct {
	users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the editable profile fields. An empty bio clears it.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, email, username, fullName string, bio *string) (*domain.User, error) {
	update := domain.ProfileUpdate{
		Email:    normalizeEmail(email),
		Username: strings.TrimSpace(username),
		FullName: strings.TrimSpace(fullName),
		Bio:      normalizeString(bio),
	}
	switch {
	case update.Email == "" || !strings.Contains(update.Email, "@"):
		return nil, fmt.Errorf("%w: a valid email is required", ErrProfileValidation)
	case update.Username == "":
		return nil, fmt.Errorf("%w: username is required", ErrProfileValidation)
	case update.FullName == "":
		return nil, fmt.Errorf("%w: full name is required", ErrProfileValidation)
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrUnauthenticated
		case isUniqueViolation(err):
			return nil, profileConflict(err)
		default:
			return nil, err
		}
	}
	return user, nil
}

// Ping reports whether the profile store answers.
func (s *ProfileService) Ping(ctx context.Context) error {
	return s.users.Ping(ctx)
}

func normalizeString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
