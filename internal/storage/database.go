package storage

import (
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the SQLite database, migrates the schema and seeds
// a zeroed leaderboard row for every library character.
func OpenAndMigrate(dataSourceName string, roster []game.Combatant) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.CharacterStats{}); err != nil {
		return nil, err
	}
	if err := seedCharacterStats(db, roster); err != nil {
		return nil, err
	}
	return db, nil
}

func seedCharacterStats(db *gorm.DB, roster []game.Combatant) error {
	if len(roster) == 0 {
		return nil
	}
	rows := make([]game.CharacterStats, 0, len(roster))
	for _, c := range roster {
		rows = append(rows, game.CharacterStats{CharacterID: c.ID, Name: c.Name})
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	logging.Debug("character stats seeded", logging.Fields{"count": len(rows)})
	return nil
}
