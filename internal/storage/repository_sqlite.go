package storage

import (
	"strings"
	"time"

	"github.com/forestfirst/gatecrash/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// weaponsByName maps lowercase weapon name -> config definition (stats).
	weaponsByName map[string]game.Weapon
	// attachmentsByName maps lowercase attachment name -> config definition.
	attachmentsByName map[string]game.Attachment
	// enemiesByName maps lowercase enemy name -> config definition.
	enemiesByName map[string]game.EnemyTemplate
}

func NewSQLiteRepository(db *gorm.DB, cfgWeapons []game.Weapon, cfgAttachments []game.Attachment, cfgEnemies []game.EnemyTemplate) Repository {
	wm := make(map[string]game.Weapon, len(cfgWeapons))
	for _, w := range cfgWeapons {
		wm[strings.ToLower(w.Name)] = w
	}
	am := make(map[string]game.Attachment, len(cfgAttachments))
	for _, a := range cfgAttachments {
		am[strings.ToLower(a.Name)] = a
	}
	em := make(map[string]game.EnemyTemplate, len(cfgEnemies))
	for _, e := range cfgEnemies {
		em[strings.ToLower(e.Name)] = e
	}
	return &sqliteRepository{db: db, weaponsByName: wm, attachmentsByName: am, enemiesByName: em}
}

func (r *sqliteRepository) overlayWeapon(w *game.Weapon) {
	if conf, ok := r.weaponsByName[strings.ToLower(w.Name)]; ok {
		w.Attribute = conf.Attribute
		w.Category = conf.Category
		w.Shape = conf.Shape
		w.RangeRow = conf.RangeRow
		w.BasePower = conf.BasePower
		w.CriticalChance = conf.CriticalChance
		w.CooldownTurns = conf.CooldownTurns
		w.Traits = conf.Traits
	}
}

func (r *sqliteRepository) GetWeapons() ([]game.Weapon, error) {
	var weapons []game.Weapon
	if err := r.db.Find(&weapons).Error; err != nil {
		return nil, err
	}
	// Override stats from config (config is source of truth)
	for i := range weapons {
		r.overlayWeapon(&weapons[i])
	}
	return weapons, nil
}

func (r *sqliteRepository) GetWeaponByName(name string) (*game.Weapon, error) {
	var w game.Weapon
	if err := r.db.Where("lower(name) = ?", strings.ToLower(name)).First(&w).Error; err != nil {
		return nil, err
	}
	r.overlayWeapon(&w)
	return &w, nil
}

func (r *sqliteRepository) GetAttachments() ([]game.Attachment, error) {
	var attachments []game.Attachment
	if err := r.db.Find(&attachments).Error; err != nil {
		return nil, err
	}
	for i := range attachments {
		if conf, ok := r.attachmentsByName[strings.ToLower(attachments[i].Name)]; ok {
			attachments[i].Rarity = conf.Rarity
			attachments[i].Category = conf.Category
			attachments[i].Unique = conf.Unique
			attachments[i].Effects = conf.Effects
		}
	}
	return attachments, nil
}

func (r *sqliteRepository) GetAttachmentByID(id uint) (*game.Attachment, error) {
	var a game.Attachment
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	if conf, ok := r.attachmentsByName[strings.ToLower(a.Name)]; ok {
		a.Rarity = conf.Rarity
		a.Category = conf.Category
		a.Unique = conf.Unique
		a.Effects = conf.Effects
	}
	return &a, nil
}

func (r *sqliteRepository) GetEnemyTemplates() ([]game.EnemyTemplate, error) {
	var enemies []game.EnemyTemplate
	if err := r.db.Find(&enemies).Error; err != nil {
		return nil, err
	}
	for i := range enemies {
		if conf, ok := r.enemiesByName[strings.ToLower(enemies[i].Name)]; ok {
			enemies[i].HP = conf.HP
			enemies[i].Mechanical = conf.Mechanical
		}
	}
	return enemies, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("join_code = ?", code).First(&b).Error; err != nil {
		return nil, err
	}
	// Overlay weapon stats inside the serialized run state so cooldown and
	// trait changes in the config survive persisted sessions.
	for i := range b.State.Caster.Weapons {
		r.overlayWeapon(&b.State.Caster.Weapons[i])
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) SaveBattleRecord(rec *game.BattleRecord) error {
	return r.db.Create(rec).Error
}

// GetTopRuns returns the best finished runs ordered by damage dealt, then
// by the fewest turns taken.
func (r *sqliteRepository) GetTopRuns(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []game.BattleRecord
	if err := r.db.Model(&game.BattleRecord{}).
		Where("outcome = ?", game.StatusVictory).
		Order("damage_dealt DESC").
		Order("turns ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	if err := r.db.Where("status = ? AND action_deadline != ? AND action_deadline <= ?",
		game.StatusInProgress, time.Time{}, now).Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}
