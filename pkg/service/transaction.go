package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
)

// DateRangeLayout is the format of the date range query parameters.
const DateRangeLayout = "2006-01-02T15:04:05"

// ListOptions selects one page of the full transaction list.
type ListOptions struct {
	Page    int
	Size    int
	SortBy  models.SortField
	SortDir models.SortDirection
}

// DefaultListOptions returns the first page of ten transactions, newest first.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Page:    0,
		Size:    10,
		SortBy:  models.SortByTransactionDate,
		SortDir: models.Descending,
	}
}

func (o ListOptions) values() url.Values {
	return url.Values{
		"page":    {strconv.Itoa(o.Page)},
		"size":    {strconv.Itoa(o.Size)},
		"sortBy":  {string(o.SortBy)},
		"sortDir": {string(o.SortDir)},
	}
}

// TransactionService reads and writes transactions of the authenticated user.
type TransactionService struct {
	client *api.Client
}

// NewTransactionService returns a TransactionService for the client.
func NewTransactionService(c *api.Client) *TransactionService {
	return &TransactionService{client: c}
}

func transactionPath(id int64) string {
	return api.Path("transactions", strconv.FormatInt(id, 10))
}

// List returns one page of transactions.
func (s *TransactionService) List(ctx context.Context, o ListOptions) (models.Page[models.Transaction], error) {
	var p models.Page[models.Transaction]
	err := s.client.Get(ctx, "/transactions", o.values(), &p)
	return p, err
}

// Get returns a single transaction.
func (s *TransactionService) Get(ctx context.Context, id int64) (models.Transaction, error) {
	var t models.Transaction
	err := s.client.Get(ctx, transactionPath(id), nil, &t)
	return t, err
}

// Create stores a new transaction and returns it with its server assigned fields.
func (s *TransactionService) Create(ctx context.Context, req models.TransactionRequest) (models.Transaction, error) {
	var t models.Transaction
	err := s.client.Post(ctx, "/transactions", nil, req, &t)
	return t, err
}

// Update replaces the transaction with the given id.
func (s *TransactionService) Update(ctx context.Context, id int64, req models.TransactionRequest) (models.Transaction, error) {
	var t models.Transaction
	err := s.client.Put(ctx, transactionPath(id), req, &t)
	return t, err
}

// Delete removes the transaction with the given id.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, transactionPath(id), nil)
}

// ByType returns all transactions of the type.
func (s *TransactionService) ByType(ctx context.Context, t models.TransactionType) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.client.Get(ctx, api.Path("transactions", "type", string(t)), nil, &ts)
	return ts, err
}

// ByCategory returns all transactions in the category.
func (s *TransactionService) ByCategory(ctx context.Context, category string) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.client.Get(ctx, api.Path("transactions", "category", category), nil, &ts)
	return ts, err
}

// Recent returns the ten most recent transactions.
func (s *TransactionService) Recent(ctx context.Context) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.client.Get(ctx, "/transactions/recent", nil, &ts)
	return ts, err
}

// Categories returns the distinct category labels used by transactions.
func (s *TransactionService) Categories(ctx context.Context) ([]string, error) {
	var cs []string
	err := s.client.Get(ctx, "/transactions/categories", nil, &cs)
	return cs, err
}

// Summary returns the totals over all transactions.
func (s *TransactionService) Summary(ctx context.Context) (models.Summary, error) {
	var sum models.Summary
	err := s.client.Get(ctx, "/transactions/summary", nil, &sum)
	return sum, err
}

func dateRange(start, end time.Time) url.Values {
	return url.Values{
		"startDate": {start.Format(DateRangeLayout)},
		"endDate":   {end.Format(DateRangeLayout)},
	}
}

// ByDateRange returns the transactions between start and end, inclusive.
func (s *TransactionService) ByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.client.Get(ctx, "/transactions/date-range", dateRange(start, end), &ts)
	return ts, err
}

// ByTypeAndDateRange returns the transactions of a type between start and end.
func (s *TransactionService) ByTypeAndDateRange(ctx context.Context, t models.TransactionType, start, end time.Time) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.client.Get(ctx, api.Path("transactions", "type", string(t), "date-range"), dateRange(start, end), &ts)
	return ts, err
}

// CategorySummary returns totals per category.
func (s *TransactionService) CategorySummary(ctx context.Context) ([]models.CategorySummary, error) {
	var cs []models.CategorySummary
	err := s.client.Get(ctx, "/transactions/analytics/category-summary", nil, &cs)
	return cs, err
}

// MonthlyTrends returns totals per month for the last months.
func (s *TransactionService) MonthlyTrends(ctx context.Context, months int) ([]models.MonthlyTrend, error) {
	if months <= 0 {
		months = 12
	}

	var ts []models.MonthlyTrend
	err := s.client.Get(ctx, "/transactions/analytics/monthly-trends", url.Values{"months": {strconv.Itoa(months)}}, &ts)
	return ts, err
}
