package category

import (
	"context"
	"errors"

	"benigna-backend/domain"
	"benigna-backend/entities"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		CreateCategory(ctx context.Context, category *entities.Category) error
		CreateSubcategory(ctx context.Context, subcategory *entities.Subcategory) error
		DeleteCategory(ctx context.Context, id string) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).
		Preload("Subcategories").
		Where("id = ?", id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCategoryAlreadyExists
		}
		return err
	}
	return nil
}

func (r *categoryRepository) CreateSubcategory(ctx context.Context, subcategory *entities.Subcategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Category{}).Where("id = ?", subcategory.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrCategoryNotFound
		}

		if err := tx.Model(&entities.Subcategory{}).
			Where("category_id = ? AND LOWER(name) = LOWER(?)", subcategory.CategoryID, subcategory.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrSubcategoryExists
		}

		return tx.Create(subcategory).Error
	})
}

// DeleteCategory removes the category; its subcategories go with it
// through the cascading foreign key.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&entities.Subcategory{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrCategoryNotFound
		}
		return nil
	})
}
