package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/handlers/dto"
	"github.com/thereayou/geoguess/internal/middleware"
	"github.com/thereayou/geoguess/internal/models"
	"github.com/thereayou/geoguess/internal/services"
)

const defaultActionsLimit = 50

type ActionHandler struct {
	actions *services.ActionService
	auth    *services.AuthService
}

func NewActionHandler(actions *services.ActionService, auth *services.AuthService) *ActionHandler {
	return &ActionHandler{actions: actions, auth: auth}
}

// RecordAction сохраняет действие текущего пользователя
func (h *ActionHandler) RecordAction(c *gin.Context) {
	var req dto.RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.CurrentUser(ctx, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	action, err := h.actions.RecordAction(ctx, user, services.ActionInput{
		Type:      models.ActionType(req.Type),
		Component: req.Component,
		Value:     req.Value,
		URL:       req.URL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewActionResponse(action))
}

// ListActions журнал действий, новые первыми
func (h *ActionHandler) ListActions(c *gin.Context) {
	var query dto.ListActionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultActionsLimit
	}

	// лишняя строка показывает, есть ли следующая страница
	actions, err := h.actions.SelectActions(c.Request.Context(), services.ActionFilter{
		Limit:  query.Limit + 1,
		Search: query.Search,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	hasMore := len(actions) > query.Limit
	if hasMore {
		actions = actions[:query.Limit]
	}

	result := make([]dto.ActionResponse, len(actions))
	for i := range actions {
		result[i] = dto.NewActionResponse(&actions[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"actions":  result,
		"has_more": hasMore,
	})
}

func (h *ActionHandler) RemoveAction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid action id"))
		return
	}

	removed, err := h.actions.RemoveAction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
