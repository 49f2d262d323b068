package category

import (
	"context"
	"strings"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	CategoryService interface {
		GetCategories(ctx context.Context) ([]*domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error)
		CreateSubcategory(ctx context.Context, categoryID string, req domain.SubcategoryRequest) (*domain.SubcategoryResponse, error)
		DeleteCategory(ctx context.Context, id string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
		logger             *zap.Logger
	}
)

func NewCategoryService(categoryRepository CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]*domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	response := make([]*domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategoryResponse(c))
	}
	return response, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	now := time.Now()
	category := &entities.Category{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Icon:          strings.TrimSpace(req.Icon),
		Subcategories: []*entities.Subcategory{},
		Timestamp:     entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.String("category", category.Name))
	return toCategoryResponse(category), nil
}

func (s *categoryService) CreateSubcategory(ctx context.Context, categoryID string, req domain.SubcategoryRequest) (*domain.SubcategoryResponse, error) {
	parsed, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	now := time.Now()
	sub := &entities.Subcategory{
		ID:         uuid.New(),
		CategoryID: parsed,
		Name:       strings.TrimSpace(req.Name),
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepository.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(sub), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepository.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func toCategoryResponse(c *entities.Category) *domain.CategoryResponse {
	subs := make([]*domain.SubcategoryResponse, 0, len(c.Subcategories))
	for _, sub := range c.Subcategories {
		subs = append(subs, toSubcategoryResponse(sub))
	}
	return &domain.CategoryResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Icon:          c.Icon,
		Subcategories: subs,
	}
}

func toSubcategoryResponse(s *entities.Subcategory) *domain.SubcategoryResponse {
	return &domain.SubcategoryResponse{
		ID:         s.ID.String(),
		CategoryID: s.CategoryID.String(),
		Name:       s.Name,
	}
}
