package storage

import (
	"github.com/forestfirst/gatecrash/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, cfgWeapons []game.Weapon, cfgAttachments []game.Attachment, cfgEnemies []game.EnemyTemplate) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; the DB file is removed
	// manually when a clean slate is needed.
	err = db.AutoMigrate(&game.Weapon{}, &game.Attachment{}, &game.EnemyTemplate{}, &game.Battle{}, &game.BattleRecord{})
	if err != nil {
		return nil, err
	}

	seedTemplates(db, cfgWeapons, cfgAttachments, cfgEnemies)
	return db, nil
}

// seedTemplates inserts catalog identity rows on first run. Stats are
// intentionally not persisted: the config file stays the single source of
// truth and the repository overlays it on every read.
func seedTemplates(db *gorm.DB, weapons []game.Weapon, attachments []game.Attachment, enemies []game.EnemyTemplate) {
	var count int64
	db.Model(&game.Weapon{}).Count(&count)
	if count == 0 && len(weapons) > 0 {
		rows := make([]game.Weapon, len(weapons))
		copy(rows, weapons)
		db.Create(&rows)
	}

	db.Model(&game.Attachment{}).Count(&count)
	if count == 0 && len(attachments) > 0 {
		rows := make([]game.Attachment, len(attachments))
		copy(rows, attachments)
		db.Create(&rows)
	}

	db.Model(&game.EnemyTemplate{}).Count(&count)
	if count == 0 && len(enemies) > 0 {
		rows := make([]game.EnemyTemplate, len(enemies))
		copy(rows, enemies)
		db.Create(&rows)
	}
}
