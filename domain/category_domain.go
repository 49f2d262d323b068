package domain

import "errors"

var (
	MessageSuccessGetCategories     = "categories retrieved successfully"
	MessageSuccessCreateCategory    = "category created successfully"
	MessageSuccessCreateSubcategory = "subcategory created successfully"
	MessageSuccessDeleteCategory    = "category deleted successfully"
	MessageFailedGetCategories      = "failed to retrieve categories"
	MessageFailedCreateCategory     = "failed to create category"
	MessageFailedCreateSubcategory  = "failed to create subcategory"
	MessageFailedDeleteCategory     = "failed to delete category"

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrSubcategoryExists     = errors.New("subcategory already exists")
)

type (
	CategoryRequest struct {
		Name string `json:"name" validate:"required,min=2,max=50"`
		Icon string `json:"icon" validate:"max=50"`
	}

	SubcategoryRequest struct {
		Name string `json:"name" validate:"required,min=2,max=50"`
	}

	SubcategoryResponse struct {
		ID         string `json:"id"`
		CategoryID string `json:"category_id"`
		Name       string `json:"name"`
	}

	CategoryResponse struct {
		ID            string                 `json:"id"`
		Name          string                 `json:"name"`
		Icon          string                 `json:"icon"`
		Subcategories []*SubcategoryResponse `json:"subcategories"`
	}
)
