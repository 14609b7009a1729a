package service

import (
	"fmt"

	"github.com/forestfirst/gatecrash/internal/attachments"
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"
)

// AttachmentOptions draws the configured number of selection candidates for
// the battle. The pool is the full catalog; candidates never repeat within
// one batch.
func (rt *Runtime) AttachmentOptions(code string) ([]game.Attachment, error) {
	if _, err := rt.loadActive(code); err != nil {
		return nil, err
	}
	n := rt.Balance.Attachments.OptionCount
	if n < 1 {
		n = 3
	}
	return rt.Attach.GenerateOptions(code, n), nil
}

// EquipAttachment applies the catalog attachment to the battle's caster and
// persists the result. Rule rejections (unknown id, unique already
// equipped) come back as attachment system errors.
func (rt *Runtime) EquipAttachment(code string, attachmentID uint) (*game.Battle, *attachments.EquipResult, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, nil, err
	}

	att, err := rt.Repo.GetAttachmentByID(attachmentID)
	if err != nil {
		return nil, nil, attachments.ErrUnknownAttachment
	}
	res, err := rt.Attach.Equip(&b.State, code, att)
	if err != nil {
		return b, nil, err
	}

	rt.touchDeadline(b)
	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, nil, fmt.Errorf("failed to update battle: %w", err)
	}
	logging.Info("attachment equipped", logging.Fields{
		constants.LogFieldBattleCode: code,
		constants.LogFieldAttachment: att.Name,
		constants.LogFieldSlot:       res.SlotIndex,
	})
	return b, res, nil
}

// DetachAttachment clears the slot. Applied stat deltas stay with the
// caster.
func (rt *Runtime) DetachAttachment(code string, slotIndex int) (*game.Battle, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, err
	}
	name, err := rt.Attach.Detach(&b.State, code, slotIndex)
	if err != nil {
		return b, err
	}
	rt.touchDeadline(b)
	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, fmt.Errorf("failed to update battle: %w", err)
	}
	logging.Info("attachment removed", logging.Fields{
		constants.LogFieldBattleCode: code,
		constants.LogFieldAttachment: name,
		constants.LogFieldSlot:       slotIndex,
	})
	return b, nil
}

// EnhanceAttachment raises the slot's enhancement level up to the cap.
func (rt *Runtime) EnhanceAttachment(code string, slotIndex int) (*game.Battle, int, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, 0, err
	}
	level, err := rt.Attach.Enhance(&b.State, code, slotIndex)
	if err != nil {
		return b, level, err
	}
	rt.touchDeadline(b)
	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, 0, fmt.Errorf("failed to update battle: %w", err)
	}
	return b, level, nil
}
