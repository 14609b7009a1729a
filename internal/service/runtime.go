// Package service hosts the battle operations behind the HTTP handlers:
// battle creation, card plays, previews, attachment management and turn
// resolution. Each operation loads the battle row, drives the combat
// components and persists the updated state.
package service

import (
	"errors"
	"time"

	"github.com/forestfirst/gatecrash/internal/attachments"
	"github.com/forestfirst/gatecrash/internal/config"
	"github.com/forestfirst/gatecrash/internal/engine"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/hand"
	"github.com/forestfirst/gatecrash/internal/rng"
	"github.com/forestfirst/gatecrash/internal/storage"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleOver     = errors.New("battle is already over")
	ErrNoWeapons      = errors.New("no weapons available in the catalog")
	ErrNoEnemies      = errors.New("no enemy templates available in the catalog")
)

// BattleRepo is the narrow repository surface the service operations need.
type BattleRepo interface {
	GetWeapons() ([]game.Weapon, error)
	GetAttachmentByID(id uint) (*game.Attachment, error)
	GetAttachments() ([]game.Attachment, error)
	GetEnemyTemplates() ([]game.EnemyTemplate, error)
	CreateBattle(b *game.Battle) error
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	SaveBattleRecord(rec *game.BattleRecord) error
}

var _ BattleRepo = (storage.Repository)(nil)

// Runtime bundles the combat components with the repository. All systems
// are stateless over the battle rows, so one Runtime serves every battle.
type Runtime struct {
	Repo    BattleRepo
	Balance config.Balance

	Calculator *engine.Calculator
	Hand       *hand.Machine
	Attach     *attachments.System
	Publisher  *game.Publisher

	// ActionTimeout abandons idle battles; zero disables the deadline.
	ActionTimeout time.Duration
}

// NewRuntime wires the combat components from the loaded configuration.
// src seeds every random draw and may be nil for the production source.
func NewRuntime(repo BattleRepo, loaded *config.LoadedConfig, bal config.Balance, src rng.RandomSource, pub *game.Publisher) *Runtime {
	if src == nil {
		src = rng.Default()
	}
	calc := engine.NewCalculator(bal.EngineConfig(), src, pub)

	// The option pool prefers repository rows so drawn attachments carry the
	// database ids the equip endpoint consumes.
	pool := loaded.Attachments
	if atts, err := repo.GetAttachments(); err == nil && len(atts) > 0 {
		pool = atts
	}
	return &Runtime{
		Repo:          repo,
		Balance:       bal,
		Calculator:    calc,
		Hand:          hand.NewMachine(bal.HandConfig(), calc, hand.NewWeaponDeck(src), pub),
		Attach:        attachments.NewSystem(bal.AttachmentConfig(), pool, src, pub),
		Publisher:     pub,
		ActionTimeout: time.Duration(bal.ActionTimeoutSeconds) * time.Second,
	}
}

// loadActive fetches the battle by join code and rejects finished ones.
func (rt *Runtime) loadActive(code string) (*game.Battle, error) {
	b, err := rt.Repo.FindBattleByJoinCode(code)
	if err != nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleOver
	}
	return b, nil
}

// touchDeadline pushes the inactivity deadline forward after any player
// action.
func (rt *Runtime) touchDeadline(b *game.Battle) {
	if rt.ActionTimeout > 0 {
		b.ActionDeadline = time.Now().Add(rt.ActionTimeout)
	}
}
