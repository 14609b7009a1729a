package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/forestfirst/gatecrash/internal/attachments"
	"github.com/forestfirst/gatecrash/internal/constants"

	"github.com/gin-gonic/gin"
)

// AttachmentOptions draws a batch of selection candidates for the battle.
func (h *BattleHandler) AttachmentOptions(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	options, err := h.rt.AttachmentOptions(code)
	if err != nil {
		h.serviceError(c, err, constants.ErrFailedFetchAttachments)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

type EquipRequest struct {
	AttachmentID uint `json:"attachment_id"`
}

// EquipAttachment applies the chosen attachment to the battle's caster.
func (h *BattleHandler) EquipAttachment(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	var req EquipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, res, err := h.rt.EquipAttachment(code, req.AttachmentID)
	if err != nil {
		switch {
		case errors.Is(err, attachments.ErrUnknownAttachment),
			errors.Is(err, attachments.ErrNoEffects),
			errors.Is(err, attachments.ErrUnknownEffect),
			errors.Is(err, attachments.ErrUniqueEquipped):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"caster": b.State.Caster,
		"slots":  b.State.Slots,
	})
}

// DetachAttachment clears an equip slot; applied deltas stay.
func (h *BattleHandler) DetachAttachment(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	slot, ok := h.slotIndex(c)
	if !ok {
		return
	}
	b, err := h.rt.DetachAttachment(code, slot)
	if err != nil {
		h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": b.State.Slots})
}

// EnhanceAttachment raises a slot's enhancement level.
func (h *BattleHandler) EnhanceAttachment(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	slot, ok := h.slotIndex(c)
	if !ok {
		return
	}
	b, level, err := h.rt.EnhanceAttachment(code, slot)
	if err != nil {
		if errors.Is(err, attachments.ErrEnhancementCap) {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
			return
		}
		h.serviceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": level, "slots": b.State.Slots})
}

func (h *BattleHandler) slotIndex(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSlotIndex})
		return 0, false
	}
	return slot, true
}
