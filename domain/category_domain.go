package domain

import "errors"

var (
	MessageSuccessGetCategories  = "success get categories"
	MessageSuccessCreateCategory = "category created successfully"

	MessageFailedGetCategories  = "failed to get categories"
	MessageFailedCreateCategory = "failed to create category"

	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

type (
	CategoryOption struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	CreateCategoryRequest struct {
		Name        string `json:"name" validate:"required,max=60"`
		Description string `json:"description" validate:"max=300"`
	}
)
