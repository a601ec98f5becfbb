package service

import "errors"

// Validation failures. Their messages are shown to the user as they are.
var (
	ErrCurrencyCodeLength      = errors.New("Currency code must be 3 characters long")
	ErrCurrencyCodeUnsupported = errors.New("Unsupported currency code")
	ErrAmountInvalid           = errors.New("Amount must be a valid number")
	ErrAmountNotPositive       = errors.New("Amount must be greater than 0")
	ErrAmountTooLarge          = errors.New("Amount is too large")
	ErrCategoryNameRequired    = errors.New("Category name is required")
	ErrCategoryNameTooLong     = errors.New("Category name must not exceed 100 characters")
	ErrCategoryColorInvalid    = errors.New("Color must be a valid hex color code (e.g., #FF5733)")
)
