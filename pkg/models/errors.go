package models

import "errors"

var (
	ErrTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
	ErrSortFieldInvalid       = errors.New("the specified sort field is invalid")
	ErrSortDirectionInvalid   = errors.New("the specified sort direction is invalid")
)
