package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(fullName, password, email string, provider models.Provider) (*models.User, error) {
	if fullName == "" || password == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "full name, password, and email are required")
	}
	if provider == "" {
		provider = models.ProviderSelf
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("full_name = ?", fullName).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		FullName: fullName,
		Password: string(hashedPassword),
		Email:    strings.ToLower(email),
		Provider: provider,
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID without an ownership check. Intended for
// internal use by other services and the auth flow.
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

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUser retrieves a user by ID on behalf of callerID. Users may only read
// their own record.
func (s *userService) GetUser(callerID, id uint) (*models.User, error) {
	if callerID != id {
		return nil, apperrors.ErrForbidden
	}
	return s.GetUserByID(id)
}

// UpdateUser applies a partial update to the caller's own user record.
func (s *userService) UpdateUser(callerID, id uint, input UpdateUserInput) (*models.User, error) {
	if callerID != id {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashedPassword)
	}
	if input.Email != nil {
		updates["email"] = strings.ToLower(*input.Email)
	}
	if input.Provider != nil {
		updates["provider"] = *input.Provider
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil, apperrors.ErrDuplicateUser
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}

// DeleteUser deletes the caller's own user record. Deletion cascades to the
// user's budget, goal, transactions, and investments.
func (s *userService) DeleteUser(callerID, id uint) error {
	if callerID != id {
		return apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.Transaction{},
			&models.Investment{},
			&models.Budget{},
			&models.Goal{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Delete(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// StoreRefreshTokenHash persists the SHA-256 hash of a user's refresh token.
func (s *userService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID uint) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}
