package repositories

import (
	"favorites-restful/models"

	"gorm.io/gorm"
)

// LocationRepository defines Location-related database operations
type LocationRepository interface {
	Create(location *models.Location) error
	FindByID(id uint) (*models.Location, error)
	Update(location *models.Location) error
	Delete(id uint) error
	FindAll(page int, pageSize int) ([]models.Location, int64, error)
	FavoritedBy(id uint) ([]models.User, error)
}

type locationRepository struct {
	db *gorm.DB
}

var _ LocationRepository = (*locationRepository)(nil)

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *models.Location) error {
	return translate(r.db.Create(location).Error)
}

func (r *locationRepository) FindByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		return nil, translate(err)
	}
	return &location, nil
}

func (r *locationRepository) Update(location *models.Location) error {
	return translate(r.db.Save(location).Error)
}

// Delete removes the location and every favorite row pointing at it.
func (r *locationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&models.FavoriteLocation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Location{}, id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *locationRepository) FindAll(page int, pageSize int) ([]models.Location, int64, error) {
	offset, limit := paginate(page, pageSize)
	var locations []models.Location
	var total int64

	if err := r.db.Model(&models.Location{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&locations).Error; err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// FavoritedBy returns the users whose favorite set contains the location.
func (r *locationRepository) FavoritedBy(id uint) ([]models.User, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}
	var users []models.User
	err := r.db.
		Joins("JOIN favorite_locations ON favorite_locations.user_id = users.id").
		Where("favorite_locations.location_id = ?", id).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
