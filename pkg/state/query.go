package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"golang.org/x/exp/slices"
)

var (
	ErrPageInvalid = errors.New("the page must not be negative")
	ErrSizeInvalid = errors.New("the page size must be greater than 0")
)

// Query selects the transactions shown in the list.
//
// Type and Category filter the list when set. Filters compose with each
// other and with sorting and pagination.
type Query struct {
	Page     int
	Size     int
	SortBy   models.SortField
	SortDir  models.SortDirection
	Type     models.TransactionType
	Category string
}

// DefaultQuery returns the first page of ten transactions, newest first.
func DefaultQuery() Query {
	o := service.DefaultListOptions()
	return Query{
		Page:    o.Page,
		Size:    o.Size,
		SortBy:  o.SortBy,
		SortDir: o.SortDir,
	}
}

// Validate checks pagination, sorting and the type filter.
func (q Query) Validate() error {
	if q.Page < 0 {
		return fmt.Errorf("%w: %d", ErrPageInvalid, q.Page)
	}
	if q.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrSizeInvalid, q.Size)
	}
	if _, err := models.ParseSortField(string(q.SortBy)); err != nil {
		return err
	}
	if _, err := models.ParseSortDirection(string(q.SortDir)); err != nil {
		return err
	}
	if q.Type != "" && !q.Type.Valid() {
		return fmt.Errorf("%w: %q", models.ErrTransactionTypeInvalid, q.Type)
	}
	return nil
}

// Filtered reports if the query has a type or category filter.
func (q Query) Filtered() bool {
	return q.Type != "" || q.Category != ""
}

func (q Query) listOptions() service.ListOptions {
	return service.ListOptions{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
	}
}

// apply filters, sorts and paginates transactions on the client.
func (q Query) apply(ts []models.Transaction) models.Page[models.Transaction] {
	ts = slices.DeleteFunc(slices.Clone(ts), func(t models.Transaction) bool {
		if q.Type != "" && t.Type != q.Type {
			return true
		}
		return q.Category != "" && t.Category != q.Category
	})

	cmp := compareBy(q.SortBy)
	slices.SortStableFunc(ts, func(a, b models.Transaction) int {
		if q.SortDir == models.Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})

	return models.NewPage(ts, q.Page, q.Size)
}

func compareBy(f models.SortField) func(a, b models.Transaction) int {
	switch f {
	case models.SortByDescription:
		return func(a, b models.Transaction) int { return strings.Compare(a.Description, b.Description) }
	case models.SortByType:
		return func(a, b models.Transaction) int { return strings.Compare(string(a.Type), string(b.Type)) }
	case models.SortByAmount:
		return func(a, b models.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case models.SortByCategory:
		return func(a, b models.Transaction) int { return strings.Compare(a.Category, b.Category) }
	}

	return func(a, b models.Transaction) int {
		return a.TransactionDate.Time().Compare(b.TransactionDate.Time())
	}
}
