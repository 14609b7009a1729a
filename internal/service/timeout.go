package service

import (
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"
)

// HandleTimedOutBattle resolves a single battle whose player idled past the
// action deadline: the run is marked abandoned and recorded once. Battles
// that finished in the meantime are left untouched.
func (rt *Runtime) HandleTimedOutBattle(b *game.Battle) error {
	if b.Status != game.StatusInProgress {
		return nil
	}
	logging.Info("battle timed out; abandoning", logging.Fields{
		constants.LogFieldBattleCode: b.JoinCode,
		constants.LogFieldTurn:       b.State.Turn,
	})
	rt.finishBattle(b, game.StatusAbandoned, "The assault ended due to inactivity.")
	return rt.Repo.UpdateBattle(b)
}
