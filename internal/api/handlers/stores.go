package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/models"
)

// UserStore persists credential records.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProfileStore persists profile documents keyed by user identity.
type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}
