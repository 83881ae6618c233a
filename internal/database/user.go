package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/models"
)

// ProfileUpdate поля, которые пользователь может изменить сам
type ProfileUpdate struct {
	Username string
	Name     string
	Surname  string
	Email    string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return translate(d.db.WithContext(ctx).Create(user).Error)
}

func (d *Database) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// SearchUsersByUsername поиск по подстроке без учёта регистра, без ограничения выдачи
func (d *Database) SearchUsersByUsername(ctx context.Context, term string) ([]models.User, error) {
	var users []models.User
	err := d.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, containsPattern(term)).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

// UpdateProfile меняет поля профиля, проверяя уникальность нового username
func (d *Database) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) error {
	return d.Transaction(ctx, func(tx *Database) error {
		var count int64
		err := tx.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", upd.Username, id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		res := tx.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
			"username": upd.Username,
			"name":     upd.Name,
			"surname":  upd.Surname,
			"email":    upd.Email,
		})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *Database) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	res := d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvatarIfEmpty записывает аватар только если он ещё не задан
func (d *Database) SetAvatarIfEmpty(ctx context.Context, id uuid.UUID, fileName string) (bool, error) {
	res := d.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND (avatar IS NULL OR avatar = '')", id).
		Update("avatar", fileName)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (d *Database) ClearAvatar(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("avatar", nil).Error
}
