package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/models"
)

func (d *Database) SaveAction(ctx context.Context, action *models.Action) error {
	return d.db.WithContext(ctx).Create(action).Error
}

// GetActions последние действия, новые первыми; search фильтрует по username владельца
func (d *Database) GetActions(ctx context.Context, limit int, search string) ([]models.Action, error) {
	var actions []models.Action

	query := d.db.WithContext(ctx).Model(&models.Action{})
	if search != "" {
		owners := d.db.Model(&models.User{}).
			Select("id").
			Where(`LOWER(username) LIKE ? ESCAPE '\'`, containsPattern(search))
		query = query.Where("user_id IN (?)", owners)
	}

	err := query.
		Order("performed_at DESC").
		Limit(limit).
		Preload("User").
		Find(&actions).Error

	return actions, err
}

// DeleteAction возвращает число удалённых строк
func (d *Database) DeleteAction(ctx context.Context, id uuid.UUID) (int64, error) {
	res := d.db.WithContext(ctx).Delete(&models.Action{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
