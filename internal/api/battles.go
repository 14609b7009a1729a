package api

import (
	"errors"
	"net/http"

	"github.com/forestfirst/gatecrash/internal/attachments"
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/logging"
	"github.com/forestfirst/gatecrash/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattleRequest struct {
	Name       string `json:"name"`
	PlayerName string `json:"player_name"`
}

// CreateBattle starts a new run and returns the battle with its join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.PlayerName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
		return
	}
	if req.PlayerName == "" {
		req.PlayerName = "Anonymous"
	}

	b, err := h.rt.StartBattle(req.Name, req.PlayerName, generateJoinCode())
	if err != nil {
		logging.Error("failed to create battle", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GetBattle returns the full battle state for the join code.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, out)
}

// GetHand returns just the playable cards and the action budget.
func (h *BattleHandler) GetHand(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{
		"hand_state": b.State.HandState,
		"hand":       b.State.Hand,
		"budget":     b.State.Budget,
		"turn":       b.State.Turn,
	})
}

type PlayCardRequest struct {
	Index int `json:"index"`
}

// PlayCard plays one card from the hand. Rules rejections come back as
// HTTP 200 with success=false so clients can surface the reason in play.
func (h *BattleHandler) PlayCard(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	var req PlayCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, res, err := h.rt.PlayCard(code, req.Index)
	if err != nil {
		h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"battle": gin.H{
			constants.JSONKeyStatus:  b.Status,
			constants.JSONKeyMessage: b.Message,
			"state":                  b.State,
		},
	})
}

type PreviewRequest struct {
	Index int `json:"index"`
}

// PreviewCard returns the per-target damage forecast for one hand slot.
func (h *BattleHandler) PreviewCard(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.rt.PreviewCard(code, req.Index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPreviewBadIndex), errors.Is(err, service.ErrPreviewNoCard):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			h.serviceError(c, err, constants.ErrFailedFetchBattle)
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

// ClearPreview drops the active forecast for observers.
func (h *BattleHandler) ClearPreview(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	h.rt.ClearPreview(code)
	c.Status(http.StatusNoContent)
}

// EndTurn resolves the enemy phase and opens the next player turn.
func (h *BattleHandler) EndTurn(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, err := h.rt.EndTurn(code)
	if err != nil {
		h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus:  b.Status,
		constants.JSONKeyMessage: b.Message,
		"state":                  b.State,
	})
}

// AbandonBattle ends the run at the player's request.
func (h *BattleHandler) AbandonBattle(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, err := h.rt.AbandonBattle(code)
	if err != nil {
		h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus:  b.Status,
		constants.JSONKeyMessage: b.Message,
	})
}

// battleCode extracts and validates the join code path parameter.
func (h *BattleHandler) battleCode(c *gin.Context) (string, bool) {
	code := normalizeJoinCode(c.Param("code"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return "", false
	}
	return code, true
}

// serviceError maps shared service errors onto HTTP statuses.
func (h *BattleHandler) serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrBattleOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleOver})
	case errors.Is(err, attachments.ErrSlotOutOfRange), errors.Is(err, attachments.ErrSlotEmpty):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		logging.Error("battle operation failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
