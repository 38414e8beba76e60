package repositories

import (
	"favorites-restful/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository interface defines User-related database operations
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByIDWithFavorites(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	FindAll(page int, pageSize int) ([]models.User, int64, error)

	AddFavoriteCharacter(userID, characterID uint) error
	RemoveFavoriteCharacter(userID, characterID uint) error
	AddFavoriteLocation(userID, locationID uint) error
	RemoveFavoriteLocation(userID, locationID uint) error
}

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

var _ UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and reads it back so column defaults
// (is_active) are populated on the passed value.
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Omit(clause.Associations).Create(user).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.First(user, user.ID).Error)
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByIDWithFavorites loads the user together with both favorite sets.
func (r *userRepository) FindByIDWithFavorites(id uint) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("FavoriteCharacters").
		Preload("FavoriteLocations").
		First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Update saves scalar columns only; favorites change through the
// Add/Remove methods.
func (r *userRepository) Update(user *models.User) error {
	return translate(r.db.Omit(clause.Associations).Save(user).Error)
}

// Delete removes the user and its join rows in one transaction.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteCharacter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteLocation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindAll Pagination find all Users
func (r *userRepository) FindAll(page int, pageSize int) ([]models.User, int64, error) {
	offset, limit := paginate(page, pageSize)
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AddFavoriteCharacter links the character to the user. Linking an
// already favorited character is a no-op.
func (r *userRepository) AddFavoriteCharacter(userID, characterID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err)
		}
		var character models.Character
		if err := tx.First(&character, characterID).Error; err != nil {
			return translate(err)
		}
		// Omit the target's columns so Append only writes the join row
		return translate(tx.Model(&user).Omit("FavoriteCharacters.*").
			Association("FavoriteCharacters").Append(&character))
	})
}

func (r *userRepository) RemoveFavoriteCharacter(userID, characterID uint) error {
	result := r.db.Where("user_id = ? AND character_id = ?", userID, characterID).
		Delete(&models.FavoriteCharacter{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) AddFavoriteLocation(userID, locationID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err)
		}
		var location models.Location
		if err := tx.First(&location, locationID).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&user).Omit("FavoriteLocations.*").
			Association("FavoriteLocations").Append(&location))
	})
}

func (r *userRepository) RemoveFavoriteLocation(userID, locationID uint) error {
	result := r.db.Where("user_id = ? AND location_id = ?", userID, locationID).
		Delete(&models.FavoriteLocation{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
