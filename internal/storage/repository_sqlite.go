package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/clash-of-gods/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func notFound(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: battle %s", ErrNotFound, key)
	}
	return err
}

func (r *sqliteRepository) CreateBattle(rec *game.BattleRecord) error {
	rec.Sync()
	rec.TurnDeadline = rec.TurnDeadline.UTC()
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByKey(key string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.Where("battle_key = ?", key).First(&rec).Error; err != nil {
		return nil, notFound(err, key)
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateBattle(rec *game.BattleRecord) error {
	rec.Sync()
	rec.TurnDeadline = rec.TurnDeadline.UTC()
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []game.BattleRecord
	if err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	err := r.db.
		Where("phase = ? AND turn_deadline > ? AND turn_deadline <= ?", game.PhaseCombat, time.Time{}, now.UTC()).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *game.BattleRecord) error {
	if rec.State.Phase != game.PhaseOver {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stored game.BattleRecord
		if err := tx.Select("id", "stats_counted").Where("battle_key = ?", rec.Key).First(&stored).Error; err != nil {
			return notFound(err, rec.Key)
		}
		if stored.StatsCounted {
			rec.StatsCounted = true
			return nil
		}
		for team := range rec.State.Teams {
			win, loss := 0, 0
			switch rec.State.Winner {
			case game.TeamName(team):
				win = 1
			case game.WinnerDraw, game.WinnerNone:
			default:
				loss = 1
			}
			for _, c := range rec.State.Teams[team] {
				ko := 0
				if c.Defeated() {
					ko = 1
				}
				row := game.CharacterStats{CharacterID: c.ID, Name: c.Name, Battles: 1, Wins: win, Losses: loss, Knockouts: ko}
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "character_id"}},
					DoUpdates: clause.Assignments(map[string]interface{}{
						"name":       c.Name,
						"battles":    gorm.Expr("battles + ?", 1),
						"wins":       gorm.Expr("wins + ?", win),
						"losses":     gorm.Expr("losses + ?", loss),
						"knockouts":  gorm.Expr("knockouts + ?", ko),
						"updated_at": time.Now(),
					}),
				}).Create(&row).Error
				if err != nil {
					return err
				}
			}
		}
		if err := tx.Model(&game.BattleRecord{}).Where("id = ?", stored.ID).Update("stats_counted", true).Error; err != nil {
			return err
		}
		rec.StatsCounted = true
		return nil
	})
}

// GetTopCharacters returns top N characters ordered by Wins desc, then Battles desc
func (r *sqliteRepository) GetTopCharacters(limit int) ([]game.CharacterStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []game.CharacterStats
	if err := r.db.Model(&game.CharacterStats{}).
		Order("wins DESC").
		Order("battles DESC").
		Order("character_id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
