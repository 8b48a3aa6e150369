package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/logger"
	"centavo/internal/models"
)

// userService handles user provisioning and lookup.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// EnsureUser resolves an identity provider principal to a user row,
// creating the row and its default categories on first sight. Idempotent:
// repeated calls for the same external id return the existing row.
func (s *userService) EnsureUser(externalID, email, name string) (*models.User, error) {
	if externalID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "external id is required")
	}

	var user models.User
	err := s.db.Where("external_id = ?", externalID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if name == "" {
		name = displayNameFromEmail(email)
	}

	user = models.User{
		ExternalID: externalID,
		Email:      strings.ToLower(email),
		Name:       name,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return seedDefaultCategories(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("provisioned user",
		"user_id", user.ID,
		"categories", len(models.DefaultCategories),
	)
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateProfile updates the user's display name.
func (s *userService) UpdateProfile(id, name string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := s.db.Model(user).Update("name", name).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return user, nil
}

// seedDefaultCategories creates the default category set for a new user.
func seedDefaultCategories(tx *gorm.DB, userID string) error {
	categories := make([]models.Category, 0, len(models.DefaultCategories))
	for _, d := range models.DefaultCategories {
		categories = append(categories, models.Category{
			UserID: userID,
			Name:   d.Name,
			Type:   d.Type,
			Color:  d.Color,
			Icon:   d.Icon,
		})
	}
	if err := tx.Create(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// displayNameFromEmail derives a fallback display name from the local part
// of an email address.
func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
