package service

import (
	"fmt"

	"github.com/forestfirst/gatecrash/internal/battlefield"
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/hand"
	"github.com/forestfirst/gatecrash/internal/logging"
)

// PlayCard plays one card from the battle's hand. A rules rejection comes
// back as a structured result with Success=false, not as an error; errors
// are reserved for missing battles and persistence failures. When the last
// action of the turn is spent the hand is refreshed anyway and the player
// decides when to end the turn.
func (rt *Runtime) PlayCard(code string, index int) (*game.Battle, *hand.PlayResult, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, nil, err
	}

	res := rt.Hand.PlayCard(&b.State, code, index)
	if !res.Success {
		return b, res, nil
	}

	summary := fmt.Sprintf("%s dealt %d damage", res.Card.DisplayName, res.TotalDamage)
	if res.HealingDone > 0 {
		summary = fmt.Sprintf("%s restored %d hp", res.Card.DisplayName, res.HealingDone)
	}
	if res.EnemiesDefeated > 0 {
		summary += fmt.Sprintf(", defeating %d enemy(ies)", res.EnemiesDefeated)
	}
	if res.GatesDestroyed > 0 {
		summary += fmt.Sprintf(", destroying %d gate(s)", res.GatesDestroyed)
	}
	b.LastTurnSummary = summary
	b.Message = summary

	if battlefield.New(&b.State.Field).Cleared() {
		rt.finishBattle(b, game.StatusVictory, "All enemies destroyed. The gates are yours.")
	} else if res.ActionsRemaining > 0 {
		if err := rt.Hand.RefreshAfterPlay(&b.State, code); err != nil {
			logging.Warn("hand refresh after play failed", err, logging.Fields{constants.LogFieldBattleCode: code})
		}
	}

	rt.touchDeadline(b)
	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, nil, fmt.Errorf("failed to update battle: %w", err)
	}
	logging.Info("card played", logging.Fields{
		constants.LogFieldBattleCode: code,
		constants.LogFieldTurn:       b.State.Turn,
		constants.LogFieldCard:       res.Card.DisplayName,
		constants.LogFieldDamage:     res.TotalDamage,
	})
	return b, res, nil
}
