package services

import (
	"fmt"

	"favorites-restful/models"
	"favorites-restful/repositories"
)

// CatalogService manages the characters and locations users can favorite.
type CatalogService interface {
	CreateCharacter(input *CharacterInput) (*models.Character, error)
	GetCharacter(id uint) (*models.Character, error)
	ListCharacters(page int, pageSize int) ([]models.Character, int64, error)
	UpdateCharacter(id uint, input *CharacterInput) (*models.Character, error)
	DeleteCharacter(id uint) error
	CharacterFavoritedBy(id uint) ([]models.User, error)

	CreateLocation(input *LocationInput) (*models.Location, error)
	GetLocation(id uint) (*models.Location, error)
	ListLocations(page int, pageSize int) ([]models.Location, int64, error)
	UpdateLocation(id uint, input *LocationInput) (*models.Location, error)
	DeleteLocation(id uint) error
	LocationFavoritedBy(id uint) ([]models.User, error)
}

// CharacterInput mirrors the catalog columns. ID is optional on create so
// records can keep the external catalog's identifiers.
type CharacterInput struct {
	ID      uint    `json:"id,omitempty"`
	Name    string  `json:"name"`
	Species *string `json:"species"`
	Status  *string `json:"status"`
	Gender  *string `json:"gender"`
	Image   *string `json:"image"`
}

func (in *CharacterInput) validate() error {
	if err := checkRequired("name", in.Name, 100); err != nil {
		return err
	}
	if err := checkOptional("species", in.Species, 50); err != nil {
		return err
	}
	if err := checkOptional("status", in.Status, 20); err != nil {
		return err
	}
	if err := checkOptional("gender", in.Gender, 20); err != nil {
		return err
	}
	return checkOptional("image", in.Image, 200)
}

type LocationInput struct {
	ID        uint    `json:"id,omitempty"`
	Name      string  `json:"name"`
	Type      *string `json:"type"`
	Dimension *string `json:"dimension"`
}

func (in *LocationInput) validate() error {
	if err := checkRequired("name", in.Name, 100); err != nil {
		return err
	}
	if err := checkOptional("type", in.Type, 50); err != nil {
		return err
	}
	return checkOptional("dimension", in.Dimension, 100)
}

type catalogService struct {
	characters repositories.CharacterRepository
	locations  repositories.LocationRepository
}

var _ CatalogService = (*catalogService)(nil)

func NewCatalogService(characters repositories.CharacterRepository, locations repositories.LocationRepository) CatalogService {
	return &catalogService{characters: characters, locations: locations}
}

func (s *catalogService) CreateCharacter(input *CharacterInput) (*models.Character, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	character := models.Character{
		ID:      input.ID,
		Name:    input.Name,
		Species: input.Species,
		Status:  input.Status,
		Gender:  input.Gender,
		Image:   input.Image,
	}
	if err := s.characters.Create(&character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return &character, nil
}

func (s *catalogService) GetCharacter(id uint) (*models.Character, error) {
	character, err := s.characters.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", id, err)
	}
	return character, nil
}

func (s *catalogService) ListCharacters(page int, pageSize int) ([]models.Character, int64, error) {
	characters, total, err := s.characters.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, total, nil
}

// UpdateCharacter replaces every column of an existing character.
func (s *catalogService) UpdateCharacter(id uint, input *CharacterInput) (*models.Character, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	character, err := s.characters.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", id, err)
	}
	character.Name = input.Name
	character.Species = input.Species
	character.Status = input.Status
	character.Gender = input.Gender
	character.Image = input.Image
	if err := s.characters.Update(character); err != nil {
		return nil, fmt.Errorf("failed to update character %d: %w", id, err)
	}
	return character, nil
}

func (s *catalogService) DeleteCharacter(id uint) error {
	if err := s.characters.Delete(id); err != nil {
		return fmt.Errorf("failed to delete character %d: %w", id, err)
	}
	return nil
}

func (s *catalogService) CharacterFavoritedBy(id uint) ([]models.User, error) {
	users, err := s.characters.FavoritedBy(id)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", id, err)
	}
	return users, nil
}

func (s *catalogService) CreateLocation(input *LocationInput) (*models.Location, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	location := models.Location{
		ID:        input.ID,
		Name:      input.Name,
		Type:      input.Type,
		Dimension: input.Dimension,
	}
	if err := s.locations.Create(&location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return &location, nil
}

func (s *catalogService) GetLocation(id uint) (*models.Location, error) {
	location, err := s.locations.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("location %d: %w", id, err)
	}
	return location, nil
}

func (s *catalogService) ListLocations(page int, pageSize int) ([]models.Location, int64, error) {
	locations, total, err := s.locations.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, total, nil
}

func (s *catalogService) UpdateLocation(id uint, input *LocationInput) (*models.Location, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	location, err := s.locations.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("location %d: %w", id, err)
	}
	location.Name = input.Name
	location.Type = input.Type
	location.Dimension = input.Dimension
	if err := s.locations.Update(location); err != nil {
		return nil, fmt.Errorf("failed to update location %d: %w", id, err)
	}
	return location, nil
}

func (s *catalogService) DeleteLocation(id uint) error {
	if err := s.locations.Delete(id); err != nil {
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}
	return nil
}

func (s *catalogService) LocationFavoritedBy(id uint) ([]models.User, error) {
	users, err := s.locations.FavoritedBy(id)
	if err != nil {
		return nil, fmt.Errorf("location %d: %w", id, err)
	}
	return users, nil
}
