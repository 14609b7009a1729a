package api

import (
	"net/http"
	"strconv"

	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/logging"

	"github.com/gin-gonic/gin"
)

// ListWeapons returns the weapon catalog with config stats applied.
func (h *BattleHandler) ListWeapons(c *gin.Context) {
	weapons, err := h.repo.GetWeapons()
	if err != nil {
		logging.Error("failed to fetch weapons", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchWeapons})
		return
	}
	c.JSON(http.StatusOK, weapons)
}

// ListAttachments returns the attachment catalog with config stats applied.
func (h *BattleHandler) ListAttachments(c *gin.Context) {
	attachments, err := h.repo.GetAttachments()
	if err != nil {
		logging.Error("failed to fetch attachments", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchAttachments})
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// ListLeaderboard returns the best finished runs.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	records, err := h.repo.GetTopRuns(limit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}
