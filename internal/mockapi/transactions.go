package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/database"
	"github.com/trackspring/client/internal/httputil"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// recentLimit is the number of transactions returned by /transactions/recent.
const recentLimit = 10

var sortColumns = map[models.SortField]string{
	models.SortByTransactionDate: "transaction_date",
	models.SortByDescription:     "description",
	models.SortByType:            "type",
	models.SortByAmount:          "amount",
	models.SortByCategory:        "category",
}

func (s *Server) registerTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", s.ListTransactions)
	r.POST("", s.CreateTransaction)

	r.GET("/recent", s.RecentTransactions)
	r.GET("/summary", s.TransactionSummary)
	r.GET("/categories", s.TransactionCategories)
	r.GET("/date-range", s.TransactionsByDateRange)
	r.GET("/type/:type", s.TransactionsByType)
	r.GET("/type/:type/date-range", s.TransactionsByDateRange)
	r.GET("/category/:category", s.TransactionsByCategory)
	r.GET("/analytics/category-summary", s.CategorySummary)
	r.GET("/analytics/monthly-trends", s.MonthlyTrends)

	r.OPTIONS("/:id", httputil.OptionsGetPutDelete)
	r.GET("/:id", s.GetTransaction)
	r.PUT("/:id", s.UpdateTransaction)
	r.DELETE("/:id", s.DeleteTransaction)
}

func (s *Server) transactions(c *gin.Context) *gorm.DB {
	return s.db.Model(&Transaction{}).Where("user_id = ?", currentUser(c).ID)
}

// find returns the transaction with the id in the path if it belongs to the user.
func (s *Server) find(c *gin.Context) (Transaction, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Transaction{}, errInvalidID
	}

	var t Transaction
	err = s.transactions(c).Where("id = ?", id).First(&t).Error
	if errors.Is(err, database.ErrResourceNotFound) {
		return Transaction{}, errTransactionMissing
	}
	return t, err
}

// ordered returns the transactions selected by q, newest first.
func (s *Server) ordered(q *gorm.DB) ([]Transaction, error) {
	var ts []Transaction
	err := q.Order("transaction_date DESC").Order("id DESC").Find(&ts).Error
	return ts, err
}

func (s *Server) respondTransactions(c *gin.Context, q *gorm.DB) {
	ts, err := s.ordered(q)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionModels(ts))
}

// ListTransactions returns a page of the transactions of the user
//
//	@Summary		List transactions
//	@Description	Returns one page of transactions, sorted by the given field
//	@Tags			Transactions
//	@Produce		json
//	@Success		200		{object}	models.Page[models.Transaction]
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Param			page	query		int		false	"Page number, starting at 0"
//	@Param			size	query		int		false	"Page size"
//	@Param			sortBy	query		string	false	"Sort field"
//	@Param			sortDir	query		string	false	"asc or desc"
//	@Router			/transactions [get]
func (s *Server) ListTransactions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		abort(c, errPageInvalid)
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		abort(c, errSizeInvalid)
		return
	}

	field, err := models.ParseSortField(c.DefaultQuery("sortBy", string(models.SortByTransactionDate)))
	if err != nil {
		abort(c, err)
		return
	}

	direction := "ASC"
	if strings.EqualFold(c.DefaultQuery("sortDir", string(models.Descending)), string(models.Descending)) {
		direction = "DESC"
	}

	var total int64
	if err := s.transactions(c).Count(&total).Error; err != nil {
		abort(c, err)
		return
	}

	var ts []Transaction
	err = s.transactions(c).
		Order(fmt.Sprintf("%s %s", sortColumns[field], direction)).
		Order("id " + direction).
		Offset(models.PageOffset(page, size, total)).
		Limit(size).
		Find(&ts).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PageOf(transactionModels(ts), total, page, size))
}

// GetTransaction returns a single transaction.
//
//	@Summary		Get transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	models.Transaction
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID"
//	@Router			/transactions/{id} [get]
func (s *Server) GetTransaction(c *gin.Context) {
	t, err := s.find(c)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, t.model())
}

// validTransaction checks the request and applies it to t.
func (s *Server) validTransaction(req models.TransactionRequest, t *Transaction) error {
	if !req.Amount.IsPositive() {
		return errAmountNotPositive
	}

	if strings.TrimSpace(req.Description) == "" {
		return errDescriptionMissing
	}

	if req.Type == "" {
		return errTypeMissing
	}

	if !req.Type.Valid() {
		return errTypeInvalid
	}

	date := req.TransactionDate.Time()
	if date.IsZero() {
		date = s.now()
	}

	if date.After(s.now()) {
		return errDateInFuture
	}

	t.Description = req.Description
	t.Amount = req.Amount
	t.Type = req.Type
	t.TransactionDate = date.UTC()
	t.Category = ""
	if req.Category != nil {
		t.Category = *req.Category
	}
	t.Notes = ""
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	t.Currency = req.Currency

	return nil
}

// CreateTransaction stores a new transaction
//
//	@Summary		Create transaction
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	models.Transaction
//	@Failure		400			{object}	httpError
//	@Param			transaction	body		models.TransactionRequest	true	"Transaction"
//	@Router			/transactions [post]
func (s *Server) CreateTransaction(c *gin.Context) {
	var req models.TransactionRequest
	if !bind(c, &req) {
		return
	}

	t := Transaction{UserID: currentUser(c).ID}
	if err := s.validTransaction(req, &t); err != nil {
		abort(c, err)
		return
	}

	if err := s.db.Create(&t).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, t.model())
}

// UpdateTransaction replaces all fields of a transaction
//
//	@Summary		Update transaction
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	models.Transaction
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Param			id			path		int							true	"ID"
//	@Param			transaction	body		models.TransactionRequest	true	"Transaction"
//	@Router			/transactions/{id} [put]
func (s *Server) UpdateTransaction(c *gin.Context) {
	t, err := s.find(c)
	if err != nil {
		abort(c, err)
		return
	}

	var req models.TransactionRequest
	if !bind(c, &req) {
		return
	}

	if err := s.validTransaction(req, &t); err != nil {
		abort(c, err)
		return
	}

	if err := s.db.Save(&t).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, t.model())
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID"
//	@Router			/transactions/{id} [delete]
func (s *Server) DeleteTransaction(c *gin.Context) {
	t, err := s.find(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := s.db.Delete(&t).Error; err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) RecentTransactions(c *gin.Context) {
	s.respondTransactions(c, s.transactions(c).Limit(recentLimit))
}

func (s *Server) TransactionsByType(c *gin.Context) {
	t, err := models.ParseTransactionType(c.Param("type"))
	if err != nil {
		abort(c, errTypeInvalid)
		return
	}

	s.respondTransactions(c, s.transactions(c).Where("type = ?", t))
}

func (s *Server) TransactionsByCategory(c *gin.Context) {
	s.respondTransactions(c, s.transactions(c).Where("category = ?", c.Param("category")))
}

// TransactionsByDateRange returns the transactions between startDate and endDate,
// optionally restricted to the type in the path.
func (s *Server) TransactionsByDateRange(c *gin.Context) {
	q := s.transactions(c)

	if c.Param("type") != "" {
		t, err := models.ParseTransactionType(c.Param("type"))
		if err != nil {
			abort(c, errTypeInvalid)
			return
		}
		q = q.Where("type = ?", t)
	}

	start, end := c.Query("startDate"), c.Query("endDate")
	if start == "" || end == "" {
		abort(c, errDateRangeMissing)
		return
	}

	from, err := types.ParseTimestamp(start)
	if err != nil {
		abort(c, err)
		return
	}

	to, err := types.ParseTimestamp(end)
	if err != nil {
		abort(c, err)
		return
	}

	s.respondTransactions(c, q.Where("transaction_date BETWEEN ? AND ?", from.Time().UTC(), to.Time().UTC()))
}

// TransactionCategories returns the distinct categories used by the user, sorted by name.
func (s *Server) TransactionCategories(c *gin.Context) {
	var names []string
	err := s.transactions(c).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &names).Error
	if err != nil {
		abort(c, err)
		return
	}

	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

// TransactionSummary returns the totals over all transactions of the user
//
//	@Summary		Summary
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	models.Summary
//	@Router			/transactions/summary [get]
func (s *Server) TransactionSummary(c *gin.Context) {
	ts, err := s.ordered(s.transactions(c))
	if err != nil {
		abort(c, err)
		return
	}

	sum := models.Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, t := range ts {
		switch t.Type {
		case models.Income:
			sum.TotalIncome = sum.TotalIncome.Add(t.Amount)
			sum.IncomeCount++
		case models.Expense:
			sum.TotalExpenses = sum.TotalExpenses.Add(t.Amount)
			sum.ExpenseCount++
		}
	}
	sum.NetWorth = sum.TotalIncome.Sub(sum.TotalExpenses)

	c.JSON(http.StatusOK, sum)
}

// CategorySummary returns the totals per category, sorted by category name.
func (s *Server) CategorySummary(c *gin.Context) {
	ts, err := s.ordered(s.transactions(c).Where("category <> ''"))
	if err != nil {
		abort(c, err)
		return
	}

	summaries := make(map[string]*models.CategorySummary)
	for _, t := range ts {
		cs, ok := summaries[t.Category]
		if !ok {
			cs = &models.CategorySummary{
				Category:      t.Category,
				TotalAmount:   decimal.Zero,
				IncomeAmount:  decimal.Zero,
				ExpenseAmount: decimal.Zero,
			}
			summaries[t.Category] = cs
		}

		cs.TotalAmount = cs.TotalAmount.Add(t.Amount)
		cs.TransactionCount++
		if t.Type == models.Income {
			cs.IncomeAmount = cs.IncomeAmount.Add(t.Amount)
		} else {
			cs.ExpenseAmount = cs.ExpenseAmount.Add(t.Amount)
		}
	}

	names := maps.Keys(summaries)
	slices.Sort(names)

	out := make([]models.CategorySummary, 0, len(names))
	for _, name := range names {
		out = append(out, *summaries[name])
	}

	c.JSON(http.StatusOK, out)
}

// MonthlyTrends returns the totals per month for the last months, oldest first.
// Months without transactions are omitted.
func (s *Server) MonthlyTrends(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "12"))
	if err != nil || months < 1 {
		abort(c, fmt.Errorf("months must be a positive number, got %q", c.Query("months")))
		return
	}

	now := s.now().In(time.Local)
	first := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.Local)

	ts, err := s.ordered(s.transactions(c).Where("transaction_date >= ?", first.UTC()))
	if err != nil {
		abort(c, err)
		return
	}

	trends := make(map[string]*models.MonthlyTrend)
	for _, t := range ts {
		date := t.TransactionDate.In(time.Local)
		month := types.NewMonth(date.Year(), date.Month())

		trend, ok := trends[month.String()]
		if !ok {
			trend = &models.MonthlyTrend{
				Month:    month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			trends[month.String()] = trend
		}

		trend.TransactionCount++
		if t.Type == models.Income {
			trend.Income = trend.Income.Add(t.Amount)
		} else {
			trend.Expenses = trend.Expenses.Add(t.Amount)
		}
	}

	keys := maps.Keys(trends)
	slices.Sort(keys)

	out := make([]models.MonthlyTrend, 0, len(keys))
	for _, key := range keys {
		out = append(out, *trends[key])
	}

	c.JSON(http.StatusOK, out)
}
