package service

import (
	"fmt"
	"time"

	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"
)

// enemyAttackDivisor scales an enemy's strike from its own max HP, so
// heavier enemies hit harder without a separate attack stat in the catalog.
const enemyAttackDivisor = 10

// EndTurn closes the player's turn, resolves the enemy phase and, when the
// caster survives, opens the next player turn with a fresh hand and budget.
func (rt *Runtime) EndTurn(code string) (*game.Battle, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, err
	}

	rt.Hand.EndPlayerTurn(&b.State, code)
	summary := rt.resolveEnemyPhase(&b.State)
	b.LastTurnSummary = summary
	b.Message = summary

	if b.State.Caster.CurrentHP <= 0 {
		b.State.Caster.CurrentHP = 0
		rt.finishBattle(b, game.StatusDefeat, "The caster has fallen. The assault is over.")
	} else {
		rt.Hand.StartPlayerTurn(&b.State, code)
		b.TurnCount = b.State.Turn
		rt.touchDeadline(b)
	}

	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, fmt.Errorf("failed to update battle: %w", err)
	}
	logging.Info("turn resolved", logging.Fields{
		constants.LogFieldBattleCode: code,
		constants.LogFieldTurn:       b.State.Turn,
		constants.LogFieldStatus:     b.Status,
	})
	return b, nil
}

// resolveEnemyPhase lets every living enemy strike the caster once.
func (rt *Runtime) resolveEnemyPhase(s *game.BattleState) string {
	total := 0
	attackers := 0
	for i := range s.Field.Enemies {
		e := &s.Field.Enemies[i]
		if e.Defeated {
			continue
		}
		dmg := e.MaxHP / enemyAttackDivisor
		if dmg < 1 {
			dmg = 1
		}
		s.Caster.CurrentHP -= dmg
		total += dmg
		attackers++
	}
	if attackers == 0 {
		return "The field is quiet; no enemy could strike back."
	}
	return fmt.Sprintf("%d enemy(ies) struck back for %d damage", attackers, total)
}

// AbandonBattle ends the run at the player's request.
func (rt *Runtime) AbandonBattle(code string) (*game.Battle, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, err
	}
	rt.finishBattle(b, game.StatusAbandoned, "The assault was abandoned.")
	if err := rt.Repo.UpdateBattle(b); err != nil {
		return nil, fmt.Errorf("failed to update battle: %w", err)
	}
	return b, nil
}

// finishBattle closes the battle and records the run once for the
// leaderboard.
func (rt *Runtime) finishBattle(b *game.Battle, status, message string) {
	b.Status = status
	b.Message = message
	b.ActionDeadline = time.Time{}
	if !b.StatsCounted {
		rec := &game.BattleRecord{
			PlayerName:  b.PlayerName,
			JoinCode:    b.JoinCode,
			Outcome:     status,
			Turns:       b.State.Turn,
			CardsPlayed: b.State.CardsPlayed,
			DamageDealt: b.State.DamageDealt,
		}
		if err := rt.Repo.SaveBattleRecord(rec); err != nil {
			logging.Error("failed to save battle record", err, logging.Fields{constants.LogFieldBattleCode: b.JoinCode})
		}
		b.StatsCounted = true
	}
	rt.Publisher.Publish(game.Event{Kind: game.EventBattleFinished, BattleCode: b.JoinCode, Payload: map[string]interface{}{
		constants.JSONKeyStatus:  status,
		constants.JSONKeyMessage: message,
		"turns":                  b.State.Turn,
		"damage_dealt":           b.State.DamageDealt,
	}})
}
