package models

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SortField is a transaction attribute a list can be ordered by.
type SortField string

const (
	SortByTransactionDate SortField = "transactionDate"
	SortByDescription     SortField = "description"
	SortByType            SortField = "type"
	SortByAmount          SortField = "amount"
	SortByCategory        SortField = "category"
)

// SortFields lists all fields transactions can be sorted by.
var SortFields = []SortField{SortByTransactionDate, SortByDescription, SortByType, SortByAmount, SortByCategory}

// Valid reports if the field is a known sort field.
func (f SortField) Valid() bool {
	return slices.Contains(SortFields, f)
}

// SortDirection is the order of a sorted list.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Valid reports if the direction is asc or desc.
func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// ParseSortField parses a sort field.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrSortFieldInvalid, s)
	}
	return f, nil
}

// ParseSortDirection parses a sort direction.
func ParseSortDirection(s string) (SortDirection, error) {
	d := SortDirection(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrSortDirectionInvalid, s)
	}
	return d, nil
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage slices all into the page with the given number and size.
func NewPage[T any](all []T, number, size int) Page[T] {
	total := len(all)

	start := PageOffset(number, size, int64(total))
	end := total
	if size < total-start {
		end = start + size
	}

	return PageOf(slices.Clone(all[start:end]), int64(total), number, size)
}

// PageOffset returns the index of the first element of the page, at most
// total. Page numbers too large to multiply out land behind the last element.
func PageOffset(number, size int, total int64) int {
	if number <= 0 || size <= 0 {
		return 0
	}
	if int64(number) > total/int64(size) {
		return int(total)
	}
	return number * size
}

// PageOf returns a Page for content that has already been sliced.
func PageOf[T any](content []T, total int64, number, size int) Page[T] {
	if content == nil {
		content = []T{}
	}

	pages := 0
	if size > 0 {
		pages = int(total / int64(size))
		if total%int64(size) != 0 {
			pages++
		}
	}

	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= pages-1,
	}
}
