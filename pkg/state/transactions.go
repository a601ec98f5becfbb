package state

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ErrStale is returned when a newer read of the same resource was issued
// while a read was in flight. Its response is discarded.
var ErrStale = errors.New("the response was superseded by a newer request")

// TransactionService is the part of service.TransactionService used by Transactions.
type TransactionService interface {
	List(ctx context.Context, o service.ListOptions) (models.Page[models.Transaction], error)
	ByType(ctx context.Context, t models.TransactionType) ([]models.Transaction, error)
	ByCategory(ctx context.Context, category string) ([]models.Transaction, error)
	Recent(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, req models.TransactionRequest) (models.Transaction, error)
	Update(ctx context.Context, id int64, req models.TransactionRequest) (models.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (models.Summary, error)
	Categories(ctx context.Context) ([]string, error)
}

type resource int

const (
	resourceList resource = iota
	resourceSummary
	resourceCategories
	resourceCount
)

func (r resource) String() string {
	switch r {
	case resourceList:
		return "transactions"
	case resourceSummary:
		return "summary"
	case resourceCategories:
		return "categories"
	}
	return "unknown"
}

type mutation int

const (
	mutationCreate mutation = iota
	mutationUpdate
	mutationDelete
)

// invalidates lists the resources refetched after each mutation.
var invalidates = map[mutation][]resource{
	mutationCreate: {resourceSummary, resourceCategories},
	mutationUpdate: {resourceSummary, resourceCategories},
	mutationDelete: {resourceSummary, resourceCategories},
}

// Transactions caches one page of transactions, the summary and the
// category labels of the user.
//
// Every read that replaces a cached resource is numbered. A response is only
// applied if no newer read of the same resource was started in the
// meantime. Mutations splice the list by id and are always applied.
type Transactions struct {
	service TransactionService

	mu         sync.Mutex
	seq        [resourceCount]uint64
	inflight   int
	query      Query
	items      []models.Transaction
	page       models.Page[models.Transaction]
	summary    models.Summary
	categories []string
	err        error
}

// NewTransactions returns an empty container using the service.
func NewTransactions(s TransactionService) *Transactions {
	return &Transactions{
		service: s,
		query:   DefaultQuery(),
	}
}

// begin numbers a new read of the resource.
func (s *Transactions) begin(r resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[r]++
	s.inflight++
	return s.seq[r]
}

// finish must be called with the lock held. It reports if n is still the
// latest read of the resource.
func (s *Transactions) finish(r resource, n uint64) bool {
	s.inflight--
	if s.seq[r] != n {
		log.Debug().Str("resource", r.String()).Uint64("sequence", n).Msg("discarding stale response")
		return false
	}
	return true
}

func (s *Transactions) start() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Transactions) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Load replaces the cached list with the transactions selected by q.
//
// An invalid query is rejected without contacting the server. On failure
// the cache is kept and the error is recorded.
func (s *Transactions) Load(ctx context.Context, q Query) (models.Page[models.Transaction], error) {
	if err := q.Validate(); err != nil {
		s.setErr(err)
		return models.Page[models.Transaction]{}, err
	}

	n := s.begin(resourceList)
	page, err := s.fetch(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finish(resourceList, n) {
		return models.Page[models.Transaction]{}, ErrStale
	}

	if err != nil {
		s.err = err
		return models.Page[models.Transaction]{}, err
	}

	s.query = q
	s.items = page.Content
	s.page = page
	s.err = nil

	return s.pageLocked(), nil
}

// fetch uses the paginated endpoint for unfiltered queries. Filtered queries
// fetch the narrower server side selection and finish on the client.
func (s *Transactions) fetch(ctx context.Context, q Query) (models.Page[models.Transaction], error) {
	if !q.Filtered() {
		return s.service.List(ctx, q.listOptions())
	}

	var (
		ts  []models.Transaction
		err error
	)

	if q.Type != "" {
		ts, err = s.service.ByType(ctx, q.Type)
	} else {
		ts, err = s.service.ByCategory(ctx, q.Category)
	}
	if err != nil {
		return models.Page[models.Transaction]{}, err
	}

	return q.apply(ts), nil
}

// FilterByType shows the first page of transactions of type t, keeping the
// category filter and sorting. An empty type removes the filter.
func (s *Transactions) FilterByType(ctx context.Context, t models.TransactionType) (models.Page[models.Transaction], error) {
	q := s.Query()
	q.Type = t
	q.Page = 0
	return s.Load(ctx, q)
}

// FilterByCategory shows the first page of transactions in the category,
// keeping the type filter and sorting. An empty category removes the filter.
func (s *Transactions) FilterByCategory(ctx context.Context, category string) (models.Page[models.Transaction], error) {
	q := s.Query()
	q.Category = category
	q.Page = 0
	return s.Load(ctx, q)
}

// LoadRecent replaces the cached list with the most recent transactions.
func (s *Transactions) LoadRecent(ctx context.Context) ([]models.Transaction, error) {
	n := s.begin(resourceList)
	ts, err := s.service.Recent(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finish(resourceList, n) {
		return nil, ErrStale
	}

	if err != nil {
		s.err = err
		return nil, err
	}

	s.items = ts
	s.page = models.PageOf(ts, int64(len(ts)), 0, len(ts))
	s.err = nil

	return slices.Clone(s.items), nil
}

// LoadSummary refreshes the summary.
func (s *Transactions) LoadSummary(ctx context.Context) (models.Summary, error) {
	if err := s.refresh(ctx, resourceSummary); err != nil {
		if !errors.Is(err, ErrStale) {
			s.setErr(err)
		}
		return models.Summary{}, err
	}
	return s.Summary(), nil
}

// LoadCategories refreshes the category labels.
func (s *Transactions) LoadCategories(ctx context.Context) ([]string, error) {
	if err := s.refresh(ctx, resourceCategories); err != nil {
		if !errors.Is(err, ErrStale) {
			s.setErr(err)
		}
		return nil, err
	}
	return s.Categories(), nil
}

// refresh reloads an aggregate resource without recording errors.
func (s *Transactions) refresh(ctx context.Context, r resource) error {
	n := s.begin(r)

	var (
		summary    models.Summary
		categories []string
		err        error
	)

	switch r {
	case resourceSummary:
		summary, err = s.service.Summary(ctx)
	case resourceCategories:
		categories, err = s.service.Categories(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finish(r, n) {
		return ErrStale
	}
	if err != nil {
		return err
	}

	switch r {
	case resourceSummary:
		s.summary = summary
	case resourceCategories:
		if categories == nil {
			categories = []string{}
		}
		s.categories = categories
	}

	return nil
}

// invalidate refetches the resources depending on the mutation concurrently.
// Failures are logged.
func (s *Transactions) invalidate(ctx context.Context, m mutation) {
	var g errgroup.Group

	for _, r := range invalidates[m] {
		r := r
		g.Go(func() error {
			err := s.refresh(ctx, r)
			if err != nil && !errors.Is(err, ErrStale) {
				log.Warn().Err(err).Str("resource", r.String()).Msg("could not refresh after mutation")
			}
			return err
		})
	}

	_ = g.Wait()
}

// Create stores a new transaction and puts it at the head of the list.
func (s *Transactions) Create(ctx context.Context, req models.TransactionRequest) (models.Transaction, error) {
	s.start()
	t, err := s.service.Create(ctx, req)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return models.Transaction{}, err
	}

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(c models.Transaction) bool { return c.ID == t.ID })
	if len(s.items) == before {
		s.page.TotalElements++
	}
	s.items = slices.Insert(s.items, 0, t)
	s.err = nil
	s.mu.Unlock()

	s.invalidate(ctx, mutationCreate)
	return t, nil
}

// Update replaces the transaction with the given id.
//
// An id unknown to the server returns an error wrapping api.ErrNotFound.
func (s *Transactions) Update(ctx context.Context, id int64, req models.TransactionRequest) (models.Transaction, error) {
	s.start()
	t, err := s.service.Update(ctx, id, req)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return models.Transaction{}, err
	}

	if i := slices.IndexFunc(s.items, func(c models.Transaction) bool { return c.ID == id }); i >= 0 {
		s.items[i] = t
	}
	s.err = nil
	s.mu.Unlock()

	s.invalidate(ctx, mutationUpdate)
	return t, nil
}

// Delete removes the transaction once the server confirmed the deletion.
func (s *Transactions) Delete(ctx context.Context, id int64) error {
	s.start()
	err := s.service.Delete(ctx, id)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return err
	}

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(c models.Transaction) bool { return c.ID == id })
	if len(s.items) < before && s.page.TotalElements > 0 {
		s.page.TotalElements--
	}
	s.err = nil
	s.mu.Unlock()

	s.invalidate(ctx, mutationDelete)
	return nil
}

// Items returns a copy of the cached list.
func (s *Transactions) Items() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Transactions) pageLocked() models.Page[models.Transaction] {
	p := s.page
	p.Content = slices.Clone(s.items)
	if p.Content == nil {
		p.Content = []models.Transaction{}
	}
	return p
}

// Page returns the cached list with its pagination metadata.
func (s *Transactions) Page() models.Page[models.Transaction] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked()
}

// Summary returns the cached summary.
func (s *Transactions) Summary() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Categories returns the cached category labels.
func (s *Transactions) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Query returns the query of the last successful Load.
func (s *Transactions) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Err returns the error of the last failed operation, if any.
func (s *Transactions) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ErrMessage returns the message of Err for display, or an empty string.
func (s *Transactions) ErrMessage() string {
	err := s.Err()
	if err == nil {
		return ""
	}
	return api.Message(err)
}

// ClearError removes the recorded error.
func (s *Transactions) ClearError() {
	s.setErr(nil)
}

// Loading reports if any request is in flight.
func (s *Transactions) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Clear empties the container, e.g. on logout. Responses of requests still
// in flight are discarded.
func (s *Transactions) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for r := range s.seq {
		s.seq[r]++
	}
	s.query = DefaultQuery()
	s.items = nil
	s.page = models.Page[models.Transaction]{}
	s.summary = models.Summary{}
	s.categories = nil
	s.err = nil
}
