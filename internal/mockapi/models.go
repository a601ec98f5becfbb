package mockapi

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/types"
)

// User is a registered account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
}

// Token is an issued bearer token.
type Token struct {
	Value     string `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	User      User
	CreatedAt time.Time
}

// Transaction is a stored transaction. Dates are stored in UTC.
type Transaction struct {
	ID              int64 `gorm:"primaryKey"`
	UserID          uint  `gorm:"index"`
	Description     string
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type            models.TransactionType
	Category        string `gorm:"index"`
	Notes           string
	Currency        string
	TransactionDate time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t Transaction) model() models.Transaction {
	return models.Transaction{
		ID:              t.ID,
		Description:     t.Description,
		Amount:          t.Amount,
		Type:            t.Type,
		Category:        t.Category,
		Notes:           t.Notes,
		Currency:        t.Currency,
		TransactionDate: types.NewTimestamp(t.TransactionDate),
		CreatedAt:       types.NewTimestamp(t.CreatedAt),
		UpdatedAt:       types.NewTimestamp(t.UpdatedAt),
	}
}

func transactionModels(ts []Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.model())
	}
	return out
}

// Category is a default category when UserID is nil, otherwise owned by the user.
type Category struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      *uint `gorm:"index"`
	Name        string
	Description string
	Color       string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Category) model(count int64) models.Category {
	return models.Category{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Color:            c.Color,
		IsDefault:        c.IsDefault,
		TransactionCount: count,
		CreatedAt:        types.NewTimestamp(c.CreatedAt),
		UpdatedAt:        types.NewTimestamp(c.UpdatedAt),
	}
}

var defaultCategoryColors = map[string]string{
	"Salary":         "#10B981",
	"Freelance":      "#14B8A6",
	"Investment":     "#3B82F6",
	"Bonus":          "#22C55E",
	"Gift":           "#EC4899",
	"Other Income":   "#6B7280",
	"Food & Dining":  "#F59E0B",
	"Transportation": "#6366F1",
	"Housing":        "#8B5CF6",
	"Utilities":      "#0EA5E9",
	"Healthcare":     "#EF4444",
	"Entertainment":  "#F97316",
	"Shopping":       "#D946EF",
	"Education":      "#84CC16",
	"Travel":         "#06B6D4",
	"Other Expense":  "#6B7280",
}

// defaultCategories returns the categories available to every user.
func defaultCategories() []Category {
	var cs []Category
	for _, t := range models.TransactionTypes {
		for _, name := range models.CommonCategories[t] {
			cs = append(cs, Category{
				Name:        name,
				Description: t.Label() + " category",
				Color:       defaultCategoryColors[name],
				IsDefault:   true,
			})
		}
	}
	return cs
}
