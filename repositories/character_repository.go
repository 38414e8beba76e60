package repositories

import (
	"favorites-restful/models"

	"gorm.io/gorm"
)

// CharacterRepository defines Character-related database operations
type CharacterRepository interface {
	Create(character *models.Character) error
	FindByID(id uint) (*models.Character, error)
	Update(character *models.Character) error
	Delete(id uint) error
	FindAll(page int, pageSize int) ([]models.Character, int64, error)
	FavoritedBy(id uint) ([]models.User, error)
}

type characterRepository struct {
	db *gorm.DB
}

var _ CharacterRepository = (*characterRepository)(nil)

func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(character *models.Character) error {
	return translate(r.db.Create(character).Error)
}

func (r *characterRepository) FindByID(id uint) (*models.Character, error) {
	var character models.Character
	if err := r.db.First(&character, id).Error; err != nil {
		return nil, translate(err)
	}
	return &character, nil
}

func (r *characterRepository) Update(character *models.Character) error {
	return translate(r.db.Save(character).Error)
}

// Delete removes the character and every favorite row pointing at it.
func (r *characterRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("character_id = ?", id).Delete(&models.FavoriteCharacter{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Character{}, id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *characterRepository) FindAll(page int, pageSize int) ([]models.Character, int64, error) {
	offset, limit := paginate(page, pageSize)
	var characters []models.Character
	var total int64

	if err := r.db.Model(&models.Character{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&characters).Error; err != nil {
		return nil, 0, err
	}
	return characters, total, nil
}

// FavoritedBy returns the users whose favorite set contains the character.
func (r *characterRepository) FavoritedBy(id uint) ([]models.User, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}
	var users []models.User
	err := r.db.
		Joins("JOIN favorite_characters ON favorite_characters.user_id = users.id").
		Where("favorite_characters.character_id = ?", id).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
