package database

import (
	"errors"

	"favorites-restful/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedCharacters = []models.Character{
	{ID: 1, Name: "Rick Sanchez", Species: models.String("Human"), Status: models.String("Alive"), Gender: models.String("Male"), Image: models.String("https://rickandmortyapi.com/api/character/avatar/1.jpeg")},
	{ID: 2, Name: "Morty Smith", Species: models.String("Human"), Status: models.String("Alive"), Gender: models.String("Male"), Image: models.String("https://rickandmortyapi.com/api/character/avatar/2.jpeg")},
	{ID: 3, Name: "Summer Smith", Species: models.String("Human"), Status: models.String("Alive"), Gender: models.String("Female"), Image: models.String("https://rickandmortyapi.com/api/character/avatar/3.jpeg")},
}

var seedLocations = []models.Location{
	{ID: 1, Name: "Earth (C-137)", Type: models.String("Planet"), Dimension: models.String("Dimension C-137")},
	{ID: 2, Name: "Abadango", Type: models.String("Cluster"), Dimension: models.String("unknown")},
	{ID: 3, Name: "Citadel of Ricks", Type: models.String("Space station"), Dimension: models.String("unknown")},
}

// SeedCatalog inserts the bundled characters and locations that are not
// present yet. Existing rows are left untouched.
func SeedCatalog(db *gorm.DB, log *zap.Logger) {
	for _, c := range seedCharacters {
		var existing models.Character
		err := db.First(&existing, c.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				log.Warn("Failed to seed character", zap.String("name", c.Name), zap.Error(err))
				continue
			}
			log.Info("Seeded character", zap.String("name", c.Name))
		} else if err != nil {
			log.Warn("Error checking for character", zap.Uint("id", c.ID), zap.Error(err))
		}
	}

	for _, l := range seedLocations {
		var existing models.Location
		err := db.First(&existing, l.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&l).Error; err != nil {
				log.Warn("Failed to seed location", zap.String("name", l.Name), zap.Error(err))
				continue
			}
			log.Info("Seeded location", zap.String("name", l.Name))
		} else if err != nil {
			log.Warn("Error checking for location", zap.Uint("id", l.ID), zap.Error(err))
		}
	}
}
