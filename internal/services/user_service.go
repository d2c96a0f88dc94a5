package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

const maxUsernameLength = 150

// dummyHash is compared against when the username is unknown so that a failed
// lookup costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("spendlog-dummy-password"), bcrypt.DefaultCost)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Signup registers a new user. It does not log the user in.
func (s *userService) Signup(username, password, confirm string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username and password are required.")
	}
	if len(username) > maxUsernameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username must be at most 150 characters.")
	}
	if password != confirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.db.Create(user).Error; err != nil {
		// A concurrent signup can claim the name between the count and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// Authenticate checks credentials and stamps last_login_at. Unknown usernames
// and wrong passwords both return ErrInvalidCredentials.
func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
