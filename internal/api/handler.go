package api

import (
	"github.com/forestfirst/gatecrash/internal/service"
	"github.com/forestfirst/gatecrash/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	rt   *service.Runtime
	repo storage.Repository
}

// NewBattleHandler creates a BattleHandler over the service runtime. The
// full repository is kept for read endpoints the runtime does not cover.
func NewBattleHandler(rt *service.Runtime, repo storage.Repository) *BattleHandler {
	return &BattleHandler{rt: rt, repo: repo}
}
