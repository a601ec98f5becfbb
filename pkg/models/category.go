package models

import "github.com/trackspring/client/pkg/types"

// DefaultCategoryColor is used when a category has no color set.
const DefaultCategoryColor = "#6B7280"

// Category is either a system provided default category or one created by the user.
type Category struct {
	ID               int64           `json:"id" example:"7"`
	Name             string          `json:"name" example:"Food & Dining"`
	Description      string          `json:"description" example:"Restaurants and groceries"`
	Color            string          `json:"color" example:"#F59E0B"`
	IsDefault        bool            `json:"isDefault" example:"true"`
	TransactionCount int64           `json:"transactionCount" example:"12"`
	CreatedAt        types.Timestamp `json:"createdAt"`
	UpdatedAt        types.Timestamp `json:"updatedAt"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

// CategoryStatistics summarizes the categories available to a user.
type CategoryStatistics struct {
	TotalCategories   int64 `json:"totalCategories"`
	DefaultCategories int64 `json:"defaultCategories"`
	UserCategories    int64 `json:"userCategories"`
	CategoriesInUse   int64 `json:"categoriesInUse"`
	UnusedCategories  int64 `json:"unusedCategories"`
}

// CleanupResult is returned when unused user categories are removed.
type CleanupResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// Common category names offered for each transaction type.
var CommonCategories = map[TransactionType][]string{
	Income: {
		"Salary",
		"Freelance",
		"Investment",
		"Bonus",
		"Gift",
		"Other Income",
	},
	Expense: {
		"Food & Dining",
		"Transportation",
		"Housing",
		"Utilities",
		"Healthcare",
		"Entertainment",
		"Shopping",
		"Education",
		"Travel",
		"Other Expense",
	},
}
