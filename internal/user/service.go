package user

import (
	"interview-prep-server/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service defines the interface for user business logic
type Service interface {
	Register(user *User) error
	Login(email, password string) (*User, error)
	GetUserByID(id uint64) (*User, error)
	UpdateProfile(id uint64, name string) (*User, error)
	DeactivateUser(id uint64) error
}

// DefaultService implements Service
type DefaultService struct {
	repository UserRepository
}

// NewService creates a new user service
func NewService(repository UserRepository) Service {
	return &DefaultService{repository: repository}
}

// Register registers a new user
func (s *DefaultService) Register(user *User) error {
	// Check if user with email already exists
	_, err := s.repository.FindByEmail(user.Email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if err == nil {
		return errors.ErrUnprocessableEntity(nil).WithMessage("User already registered")
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrUnprocessableEntity(err)
	}
	user.PasswordHash = string(hashedPassword)
	user.IsActive = true

	// Create user
	return s.repository.Create(user)
}

// Login authenticates a user
func (s *DefaultService) Login(email, password string) (*User, error) {
	// Find user by email
	user, err := s.repository.FindByEmail(email)
	if err != nil {
		return nil, errors.ErrUnauthorized(err).WithMessage("User not found")
	}

	// Check if user is active
	if !user.IsActive {
		return nil, errors.ErrUnauthorized(nil).WithMessage("User is not active")
	}

	// Check password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, errors.ErrUnprocessableEntity(err).WithMessage("Wrong password")
	}

	return user, nil
}

// GetUserByID gets a user by ID
func (s *DefaultService) GetUserByID(id uint64) (*User, error) {
	return s.repository.FindByID(id)
}

// UpdateProfile updates the user's editable profile fields
func (s *DefaultService) UpdateProfile(id uint64, name string) (*User, error) {
	if name == "" {
		return nil, errors.ErrInvalidInput(nil).WithMessage("Name cannot be empty")
	}

	user, err := s.repository.FindByID(id)
	if err != nil {
		return nil, errors.ErrNotFound(err).WithMessage("User not found")
	}

	user.Name = name
	if err := s.repository.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser deactivates a user
func (s *DefaultService) DeactivateUser(id uint64) error {
	return s.repository.Deactivate(id)
}
