package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/models"
)

type ActionInput struct {
	Type      models.ActionType
	Component string
	Value     *string
	URL       string
}

// ActionFilter Search сравнивается с username владельца без учёта регистра
type ActionFilter struct {
	Limit  int
	Search string
}

type ActionService struct {
	actions   ActionStore
	publisher ActionPublisher
	now       func() time.Time
}

// NewActionService publisher может быть nil, тогда live-лента отключена
func NewActionService(actions ActionStore, publisher ActionPublisher) *ActionService {
	return &ActionService{
		actions:   actions,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ActionService) RecordAction(ctx context.Context, user *models.User, in ActionInput) (*models.Action, error) {
	if !in.Type.Valid() {
		return nil, invalid("unknown action type")
	}

	action := &models.Action{
		Type:        in.Type,
		Component:   in.Component,
		Value:       in.Value,
		URL:         in.URL,
		PerformedAt: s.now(),
		UserID:      user.ID,
	}
	if err := s.actions.SaveAction(ctx, action); err != nil {
		return nil, storageFailure("save action", err)
	}
	action.User = *user

	if s.publisher != nil {
		if err := s.publisher.PublishAction(ctx, action); err != nil {
			logger.Warningf("publish action %s: %v", action.ID, err)
		}
	}
	return action, nil
}

func (s *ActionService) SelectActions(ctx context.Context, filter ActionFilter) ([]models.Action, error) {
	if filter.Limit <= 0 {
		return nil, invalid("limit must be positive")
	}

	actions, err := s.actions.GetActions(ctx, filter.Limit, filter.Search)
	if err != nil {
		return nil, storageFailure("select actions", err)
	}
	return actions, nil
}

func (s *ActionService) RemoveAction(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.actions.DeleteAction(ctx, id)
	if err != nil {
		return false, storageFailure("delete action", err)
	}
	if n == 0 {
		return false, notFound("action not found")
	}
	return true, nil
}
