package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionType вид пользовательского действия в интерфейсе
type ActionType string

const (
	ActionClick  ActionType = "click"
	ActionScroll ActionType = "scroll"
	ActionInput  ActionType = "input"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionClick, ActionScroll, ActionInput:
		return true
	}
	return false
}

// Action неизменяемая запись журнала действий
type Action struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type        ActionType `gorm:"not null" json:"type"`
	Component   string     `gorm:"not null" json:"component"`
	Value       *string    `json:"value"`
	URL         string     `gorm:"not null" json:"url"`
	PerformedAt time.Time  `gorm:"not null;index" json:"performedAt"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`

	// Связи
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user"`
}

func (a *Action) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
