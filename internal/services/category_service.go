package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	userID, name string,
	categoryType models.CategoryType,
	color, icon string,
	budgetLimit *decimal.Decimal,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Color:       color,
		Icon:        icon,
		BudgetLimit: budgetLimit,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves the user's categories ordered by name, each
// carrying its transaction count, optionally filtered by type.
func (s *categoryService) GetUserCategories(userID string, categoryType *models.CategoryType) ([]models.CategoryWithCount, error) {
	base := s.db.Where("user_id = ?", userID)
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := base.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// One grouped count query instead of a count per category.
	type categoryCount struct {
		CategoryID string
		Count      int64
	}
	var counts []categoryCount
	if err := s.db.Model(&models.Transaction{}).
		Select("category_id, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.CategoryID] = c.Count
	}

	result := make([]models.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		result = append(result, models.CategoryWithCount{
			Category:         category,
			TransactionCount: countByID[category.ID],
		})
	}
	return result, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates the provided fields of an existing category.
func (s *categoryService) UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.BudgetLimit != nil {
		updates["budget_limit"] = *update.BudgetLimit
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory deletes a category. Deletion is refused while any
// transaction still references the category.
func (s *categoryService) DeleteCategory(userID, categoryID string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	var transactionCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&transactionCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactionCount > 0 {
		return nil, apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}
