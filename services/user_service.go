package services

import (
	"errors"
	"fmt"

	"favorites-restful/models"
	"favorites-restful/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService covers user accounts and their favorite sets.
type UserService interface {
	CreateUser(input *CreateUserInput) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUser(userID uint) (*models.User, error)
	GetUserWithFavorites(userID uint) (*models.User, error)
	UpdateUser(userID uint, requestingUserID uint, input *UpdateUserInput) (*models.User, error)
	ListUsers(page int, pageSize int) ([]models.User, int64, error)
	DeleteUser(userID uint, requestingUserID uint) error

	AddFavoriteCharacter(userID, requestingUserID, characterID uint) error
	RemoveFavoriteCharacter(userID, requestingUserID, characterID uint) error
	AddFavoriteLocation(userID, requestingUserID, locationID uint) error
	RemoveFavoriteLocation(userID, requestingUserID, locationID uint) error
}

type CreateUserInput struct {
	Email    string `json:"email" description:"Unique email address"`
	Password string `json:"password" description:"Plain-text password, stored as a bcrypt hash"`
	IsActive *bool  `json:"is_active,omitempty" description:"Defaults to true"`
}

type UpdateUserInput struct {
	// Pointers distinguish "not provided" from empty values
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type userService struct {
	repo repositories.UserRepository
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser registers a user. Email uniqueness is left to the unique index.
func (s *userService) CreateUser(input *CreateUserInput) (*models.User, error) {
	if err := checkRequired("email", input.Email, 120); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, invalid("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		IsActive: input.IsActive,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate resolves the user for a login attempt. Unknown emails,
// wrong passwords and inactive accounts all yield ErrInvalidCredentials.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUser(userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetUserWithFavorites(userID uint) (*models.User, error) {
	user, err := s.repo.FindByIDWithFavorites(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateUser changes the caller's own account.
func (s *userService) UpdateUser(userID uint, requestingUserID uint, input *UpdateUserInput) (*models.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("%w: you can only update your own account", ErrForbidden)
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	needsSave := false
	if input.Email != nil && *input.Email != user.Email {
		if err := checkRequired("email", *input.Email, 120); err != nil {
			return nil, err
		}
		user.Email = *input.Email
		needsSave = true
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, invalid("password must not be empty")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("could not hash new password: %w", err)
		}
		user.Password = string(hashedPassword)
		needsSave = true
	}
	if input.IsActive != nil && *input.IsActive != user.Active() {
		user.IsActive = models.Bool(*input.IsActive)
		needsSave = true
	}

	if needsSave {
		if err := s.repo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to save user updates: %w", err)
		}
	}
	return user, nil
}

func (s *userService) ListUsers(page int, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.repo.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) DeleteUser(userID uint, requestingUserID uint) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: you can only delete your own account", ErrForbidden)
	}
	if err := s.repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return nil
}

func (s *userService) AddFavoriteCharacter(userID, requestingUserID, characterID uint) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: favorites belong to their owner", ErrForbidden)
	}
	if err := s.repo.AddFavoriteCharacter(userID, characterID); err != nil {
		return fmt.Errorf("favorite character %d: %w", characterID, err)
	}
	return nil
}

func (s *userService) RemoveFavoriteCharacter(userID, requestingUserID, characterID uint) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: favorites belong to their owner", ErrForbidden)
	}
	if err := s.repo.RemoveFavoriteCharacter(userID, characterID); err != nil {
		return fmt.Errorf("favorite character %d: %w", characterID, err)
	}
	return nil
}

func (s *userService) AddFavoriteLocation(userID, requestingUserID, locationID uint) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: favorites belong to their owner", ErrForbidden)
	}
	if err := s.repo.AddFavoriteLocation(userID, locationID); err != nil {
		return fmt.Errorf("favorite location %d: %w", locationID, err)
	}
	return nil
}

func (s *userService) RemoveFavoriteLocation(userID, requestingUserID, locationID uint) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: favorites belong to their owner", ErrForbidden)
	}
	if err := s.repo.RemoveFavoriteLocation(userID, locationID); err != nil {
		return fmt.Errorf("favorite location %d: %w", locationID, err)
	}
	return nil
}
