package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/database"
	"github.com/thereayou/geoguess/internal/models"
)

// UserStore хранилище учётных записей, реализуется *database.Database
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SearchUsersByUsername(ctx context.Context, term string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd database.ProfileUpdate) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	SetAvatarIfEmpty(ctx context.Context, id uuid.UUID, fileName string) (bool, error)
	ClearAvatar(ctx context.Context, id uuid.UUID) error
}

// ActionStore журнал действий, реализуется *database.Database
type ActionStore interface {
	SaveAction(ctx context.Context, action *models.Action) error
	GetActions(ctx context.Context, limit int, search string) ([]models.Action, error)
	DeleteAction(ctx context.Context, id uuid.UUID) (int64, error)
}

// ActionPublisher рассылает записанные действия в live-ленту
type ActionPublisher interface {
	PublishAction(ctx context.Context, action *models.Action) error
}
