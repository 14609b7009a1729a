package storage

import (
	"time"

	"github.com/forestfirst/gatecrash/internal/game"
)

type Repository interface {
	// Catalog lookups. Stats always come from the config catalogs; the
	// database rows only pin identity.
	GetWeapons() ([]game.Weapon, error)
	GetWeaponByName(name string) (*game.Weapon, error)
	GetAttachments() ([]game.Attachment, error)
	GetAttachmentByID(id uint) (*game.Attachment, error)
	GetEnemyTemplates() ([]game.EnemyTemplate, error)

	CreateBattle(b *game.Battle) error
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error

	// Leaderboard
	SaveBattleRecord(rec *game.BattleRecord) error
	GetTopRuns(limit int) ([]game.BattleRecord, error)

	// FindTimedOutBattles returns battles that are in progress and whose
	// action deadline is at or before the provided time. The caller decides
	// how to resolve them (for example, marking them abandoned).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
