package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/models"
)

type RecordActionRequest struct {
	Type      string  `json:"type" binding:"required,oneof=click scroll input"`
	Component string  `json:"component" binding:"required,max=255"`
	Value     *string `json:"value"`
	URL       string  `json:"url" binding:"required,max=2048"`
}

type ListActionsQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

type ActionResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Component   string    `json:"component"`
	Value       *string   `json:"value"`
	URL         string    `json:"url"`
	PerformedAt time.Time `json:"performedAt"`
	User        UserInfo  `json:"user"`
}

func NewActionResponse(a *models.Action) ActionResponse {
	return ActionResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		Component:   a.Component,
		Value:       a.Value,
		URL:         a.URL,
		PerformedAt: a.PerformedAt,
		User:        NewUserInfo(&a.User),
	}
}
