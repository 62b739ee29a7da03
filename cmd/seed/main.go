package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roombooking/internal/config"
	"roombooking/internal/database"
	"roombooking/internal/domain"
	"roombooking/internal/pkg/logger"
)

type seedRoom struct {
	name     string
	capacity int
}

var seedData = []struct {
	building domain.Building
	rooms    []seedRoom
}{
	{
		building: domain.Building{Name: "Main Building", Location: "1 University Ave"},
		rooms:    []seedRoom{{"A101", 30}, {"A102", 12}, {"Board Room", 8}},
	},
	{
		building: domain.Building{Name: "Science Center", Location: "12 Research Park"},
		rooms:    []seedRoom{{"Lab 1", 20}, {"Lab 2", 20}, {"Seminar", 40}},
	},
	{
		building: domain.Building{Name: "Library", Location: "3 Quiet Lane"},
		rooms:    []seedRoom{{"Study 1", 4}, {"Study 2", 4}},
	},
}

// Inserts demo buildings and rooms. Running it again changes nothing.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "seed")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.OptionsFromConfig(cfg), lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	var buildings, rooms int64
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range seedData {
			b := item.building
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&b)
			if res.Error != nil {
				return res.Error
			}
			buildings += res.RowsAffected

			// Reload so an existing building yields its stored id.
			var stored domain.Building
			if err := tx.Where("name = ?", b.Name).First(&stored).Error; err != nil {
				return err
			}

			for _, r := range item.rooms {
				room := domain.Room{BuildingID: stored.ID, Name: r.name, Capacity: r.capacity}
				res := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "building_id"}, {Name: "name"}},
					DoNothing: true,
				}).Create(&room)
				if res.Error != nil {
					return res.Error
				}
				rooms += res.RowsAffected
			}
		}
		return nil
	})
	if err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}

	lg.Info("seed completed", zap.Int64("buildings_inserted", buildings), zap.Int64("rooms_inserted", rooms))
}
