package migration

import (
	"fmt"

	"benigna-backend/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var models = []any{
	&entities.User{},
	&entities.Institution{},
	&entities.Category{},
	&entities.Subcategory{},
	&entities.Donation{},
	&entities.Rating{},
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("error enabling uuid-ossp: %w", err)
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %T: %w", model, err)
		}
	}

	logger.Info("database migration complete", zap.Int("tables", len(models)))
	return nil
}
