package service

import (
	"fmt"

	"github.com/forestfirst/gatecrash/internal/battlefield"
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"
)

// StartBattle performs all server-side initialization for a new run: the
// caster is armed from the weapon catalog, the battlefield is generated
// from the enemy templates, slots and budget are initialized and the first
// hand is dealt. The created battle is persisted with the provided join
// code.
func (rt *Runtime) StartBattle(name, playerName, joinCode string) (*game.Battle, error) {
	weapons, err := rt.Repo.GetWeapons()
	if err != nil || len(weapons) == 0 {
		return nil, ErrNoWeapons
	}
	templates, err := rt.Repo.GetEnemyTemplates()
	if err != nil || len(templates) == 0 {
		return nil, ErrNoEnemies
	}

	if max := rt.Balance.Caster.MaxEquippedWeapons; max > 0 && len(weapons) > max {
		weapons = weapons[:max]
	}

	bal := rt.Balance
	state := game.BattleState{
		Turn:  1,
		Phase: game.PhasePlayerTurn,
		Caster: game.CasterStats{
			BaseAttackPower:     bal.Caster.BaseAttackPower,
			OriginalAttackPower: bal.Caster.BaseAttackPower,
			MaxHP:               bal.Caster.MaxHP,
			CurrentHP:           bal.Caster.MaxHP,
			Weapons:             weapons,
		},
		Field:      battlefield.Generate(templates, bal.Field.Rows, bal.Field.Cols, bal.Field.EnemyCount, bal.Field.GateHP),
		HandState:  game.HandEmpty,
		Budget:     game.ActionBudget{Max: bal.Hand.BaseActions},
		Slots:      rt.Attach.InitSlots(),
		Cooldowns:  map[string]int{},
		WeaponUses: map[string]int{},
		NextCardID: 1,
	}
	state.Budget.Reset()

	b := &game.Battle{
		Name:       name,
		PlayerName: playerName,
		JoinCode:   joinCode,
		Status:     game.StatusInProgress,
		Message:    "The assault has begun. Play a card.",
		TurnCount:  1,
		State:      state,
	}
	rt.Hand.GenerateHand(&b.State, joinCode)
	rt.touchDeadline(b)

	if err := rt.Repo.CreateBattle(b); err != nil {
		return nil, fmt.Errorf("failed to create battle: %w", err)
	}
	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleCode: b.JoinCode,
		"enemies":                    len(b.State.Field.Enemies),
		"weapons":                    len(weapons),
	})
	return b, nil
}
