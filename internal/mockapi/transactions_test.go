package mockapi_test

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/test"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/types"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	t := suite.createTestTransaction(models.TransactionRequest{
		Description: "Coffee",
		Amount:      decimal.RequireFromString("4.50"),
		Category:    test.Ptr("Food & Dining"),
	})

	suite.Assert().NotZero(t.ID)
	suite.Assert().Equal("Coffee", t.Description)
	suite.Assert().True(t.Amount.Equal(decimal.RequireFromString("4.5")), "amount is %s", t.Amount)
	suite.Assert().Equal(models.Expense, t.Type)
	suite.Assert().Equal("Food & Dining", t.Category)
	suite.Assert().Equal("", t.Notes)
	suite.Assert().True(t.TransactionDate.Time().Equal(suite.now.Add(-time.Hour)))
	suite.Assert().WithinDuration(time.Now(), t.CreatedAt.Time(), test.TOLERANCE)
}

func (suite *TestSuiteStandard) TestCreateTransactionDefaultsDate() {
	r := suite.request(http.MethodPost, "/transactions", models.TransactionRequest{
		Description: "Salary",
		Amount:      decimal.NewFromInt(3000),
		Type:        models.Income,
	}, http.StatusCreated)

	var t models.Transaction
	test.DecodeResponse(suite.T(), &r, &t)
	suite.Assert().True(t.TransactionDate.Time().Equal(suite.now), "date is %s", t.TransactionDate)
}

func (suite *TestSuiteStandard) TestCreateTransactionFails() {
	future := types.NewTimestamp(suite.now.Add(time.Minute))
	valid := func(mod func(*models.TransactionRequest)) models.TransactionRequest {
		req := models.TransactionRequest{
			Description: "Rent",
			Amount:      decimal.NewFromInt(800),
			Type:        models.Expense,
		}
		mod(&req)
		return req
	}

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"Zero amount", valid(func(r *models.TransactionRequest) { r.Amount = decimal.Zero }), "Transaction amount must be greater than 0"},
		{"Negative amount", valid(func(r *models.TransactionRequest) { r.Amount = decimal.NewFromInt(-5) }), "Transaction amount must be greater than 0"},
		{"Blank description", valid(func(r *models.TransactionRequest) { r.Description = "  " }), "Transaction description is required"},
		{"Missing type", valid(func(r *models.TransactionRequest) { r.Type = "" }), "Transaction type is required"},
		{"Invalid type", valid(func(r *models.TransactionRequest) { r.Type = "TRANSFER" }), "Transaction type must be INCOME or EXPENSE"},
		{"Future date", valid(func(r *models.TransactionRequest) { r.TransactionDate = future }), "Transaction date cannot be in the future"},
		{"Amount checked first", valid(func(r *models.TransactionRequest) {
			r.Amount = decimal.Zero
			r.Description = ""
			r.TransactionDate = future
		}), "Transaction amount must be greater than 0"},
		{"Empty body", "", "The request body must not be empty"},
		{"Broken body", `{"description": `, "The body of your request contains invalid or un-parseable data"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/transactions", tt.body, http.StatusBadRequest)
			suite.Assert().Equal(tt.msg, test.DecodeError(suite.T(), &r))
		})
	}

	r := suite.request(http.MethodGet, "/transactions", nil, http.StatusOK)
	var page models.Page[models.Transaction]
	test.DecodeResponse(suite.T(), &r, &page)
	suite.Assert().Zero(page.TotalElements, "no invalid transaction must be stored")
}

func (suite *TestSuiteStandard) TestCreateTransactionAtCurrentTime() {
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: types.NewTimestamp(suite.now)})
}

func (suite *TestSuiteStandard) TestListTransactions() {
	for _, req := range test.Fixture(suite.now, 15) {
		suite.createTestTransaction(req)
	}

	r := suite.request(http.MethodGet, "/transactions", nil, http.StatusOK)
	var page models.Page[models.Transaction]
	test.DecodeResponse(suite.T(), &r, &page)

	suite.Assert().Len(page.Content, 10)
	suite.Assert().Equal(int64(15), page.TotalElements)
	suite.Assert().Equal(2, page.TotalPages)
	suite.Assert().True(page.First)
	suite.Assert().False(page.Last)
	for i := 1; i < len(page.Content); i++ {
		suite.Assert().False(page.Content[i].TransactionDate.Time().After(page.Content[i-1].TransactionDate.Time()), "default order is newest first")
	}

	r = suite.request(http.MethodGet, "/transactions?page=1&size=10", nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &page)
	suite.Assert().Len(page.Content, 5)
	suite.Assert().True(page.Last)
}

func (suite *TestSuiteStandard) TestListTransactionsPageBeyondEnd() {
	for _, req := range test.Fixture(suite.now, 3) {
		suite.createTestTransaction(req)
	}

	r := suite.request(http.MethodGet, fmt.Sprintf("/transactions?page=%d&size=2", math.MaxInt/2+1), nil, http.StatusOK)
	var page models.Page[models.Transaction]
	test.DecodeResponse(suite.T(), &r, &page)

	suite.Assert().Empty(page.Content)
	suite.Assert().Equal(int64(3), page.TotalElements)
	suite.Assert().Equal(2, page.TotalPages)
}

func (suite *TestSuiteStandard) TestListTransactionsSorted() {
	for _, req := range test.Fixture(suite.now, 15) {
		suite.createTestTransaction(req)
	}

	r := suite.request(http.MethodGet, "/transactions?sortBy=amount&sortDir=asc", nil, http.StatusOK)
	var page models.Page[models.Transaction]
	test.DecodeResponse(suite.T(), &r, &page)

	suite.Require().Len(page.Content, 10)
	for i := 1; i < len(page.Content); i++ {
		suite.Assert().True(page.Content[i].Amount.GreaterThanOrEqual(page.Content[i-1].Amount), "amounts must be ascending")
	}
}

func (suite *TestSuiteStandard) TestListTransactionsInvalidQuery() {
	for query, msg := range map[string]string{
		"page=-1":     "Page index must not be less than zero",
		"size=0":      "Page size must not be less than one",
		"sortBy=nope": `the specified sort field is invalid: "nope"`,
	} {
		r := suite.request(http.MethodGet, "/transactions?"+query, nil, http.StatusBadRequest)
		suite.Assert().Equal(msg, test.DecodeError(suite.T(), &r), query)
	}
}

func (suite *TestSuiteStandard) TestTransactionsAreScopedToUser() {
	t := suite.createTestTransaction(models.TransactionRequest{})
	bob := suite.register("bob").Token

	path := fmt.Sprintf("/transactions/%d", t.ID)
	r := suite.requestAs(bob, http.MethodGet, path, nil, http.StatusNotFound)
	suite.Assert().Equal("Transaction not found or access denied", test.DecodeError(suite.T(), &r))

	suite.requestAs(bob, http.MethodDelete, path, nil, http.StatusNotFound)
	suite.request(http.MethodGet, path, nil, http.StatusOK)

	r = suite.requestAs(bob, http.MethodGet, "/transactions", nil, http.StatusOK)
	var page models.Page[models.Transaction]
	test.DecodeResponse(suite.T(), &r, &page)
	suite.Assert().Empty(page.Content)
}

func (suite *TestSuiteStandard) TestGetTransactionInvalidID() {
	r := suite.request(http.MethodGet, "/transactions/abc", nil, http.StatusBadRequest)
	suite.Assert().Equal("The specified resource ID is not a valid number", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	t := suite.createTestTransaction(models.TransactionRequest{
		Category: test.Ptr("Shopping"),
		Notes:    test.Ptr("Socks"),
	})

	r := suite.request(http.MethodPut, fmt.Sprintf("/transactions/%d", t.ID), models.TransactionRequest{
		Description: "Shoes",
		Amount:      decimal.NewFromInt(80),
		Type:        models.Expense,
	}, http.StatusOK)

	var updated models.Transaction
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(t.ID, updated.ID)
	suite.Assert().Equal("Shoes", updated.Description)
	suite.Assert().Equal("", updated.Category, "omitted fields are cleared")
	suite.Assert().Equal("", updated.Notes, "omitted fields are cleared")
	suite.Assert().True(updated.TransactionDate.Time().Equal(suite.now))
}

func (suite *TestSuiteStandard) TestUpdateTransactionFails() {
	r := suite.request(http.MethodPut, "/transactions/999", models.TransactionRequest{
		Description: "Shoes",
		Amount:      decimal.NewFromInt(80),
		Type:        models.Expense,
	}, http.StatusNotFound)
	suite.Assert().Equal("Transaction not found or access denied", test.DecodeError(suite.T(), &r))

	t := suite.createTestTransaction(models.TransactionRequest{})
	r = suite.request(http.MethodPut, fmt.Sprintf("/transactions/%d", t.ID), models.TransactionRequest{
		Description: "Shoes",
		Type:        models.Expense,
	}, http.StatusBadRequest)
	suite.Assert().Equal("Transaction amount must be greater than 0", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	t := suite.createTestTransaction(models.TransactionRequest{})
	path := fmt.Sprintf("/transactions/%d", t.ID)

	suite.request(http.MethodDelete, path, nil, http.StatusNoContent)
	suite.request(http.MethodGet, path, nil, http.StatusNotFound)
	suite.request(http.MethodDelete, path, nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestRecentTransactions() {
	for _, req := range test.Fixture(suite.now, 12) {
		suite.createTestTransaction(req)
	}

	r := suite.request(http.MethodGet, "/transactions/recent", nil, http.StatusOK)
	var ts []models.Transaction
	test.DecodeResponse(suite.T(), &r, &ts)

	suite.Require().Len(ts, 10)
	suite.Assert().Equal("Fixture 00", ts[0].Description, "the newest transaction is first")
}

func (suite *TestSuiteStandard) TestTransactionSummary() {
	suite.createTestTransaction(models.TransactionRequest{Type: models.Income, Amount: decimal.NewFromInt(3000)})
	suite.createTestTransaction(models.TransactionRequest{Amount: decimal.RequireFromString("4.50")})
	suite.createTestTransaction(models.TransactionRequest{Amount: decimal.RequireFromString("95.50")})

	r := suite.request(http.MethodGet, "/transactions/summary", nil, http.StatusOK)
	var sum models.Summary
	test.DecodeResponse(suite.T(), &r, &sum)

	suite.Assert().True(sum.TotalIncome.Equal(decimal.NewFromInt(3000)), "income is %s", sum.TotalIncome)
	suite.Assert().True(sum.TotalExpenses.Equal(decimal.NewFromInt(100)), "expenses are %s", sum.TotalExpenses)
	suite.Assert().True(sum.NetWorth.Equal(decimal.NewFromInt(2900)), "net worth is %s", sum.NetWorth)
	suite.Assert().Equal(int64(1), sum.IncomeCount)
	suite.Assert().Equal(int64(2), sum.ExpenseCount)
}

func (suite *TestSuiteStandard) TestTransactionSummaryEmpty() {
	r := suite.request(http.MethodGet, "/transactions/summary", nil, http.StatusOK)
	var sum models.Summary
	test.DecodeResponse(suite.T(), &r, &sum)

	suite.Assert().True(sum.NetWorth.IsZero())
	suite.Assert().Zero(sum.IncomeCount)
}

func (suite *TestSuiteStandard) TestTransactionCategories() {
	r := suite.request(http.MethodGet, "/transactions/categories", nil, http.StatusOK)
	suite.Assert().JSONEq("[]", r.Body.String())

	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Food & Dining")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel")})
	suite.createTestTransaction(models.TransactionRequest{})

	r = suite.request(http.MethodGet, "/transactions/categories", nil, http.StatusOK)
	var names []string
	test.DecodeResponse(suite.T(), &r, &names)
	suite.Assert().Equal([]string{"Food & Dining", "Travel"}, names)
}

func (suite *TestSuiteStandard) TestTransactionsByTypeAndCategory() {
	suite.createTestTransaction(models.TransactionRequest{Type: models.Income, Category: test.Ptr("Salary")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Food & Dining")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Food & Dining")})

	var ts []models.Transaction
	r := suite.request(http.MethodGet, "/transactions/type/income", nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &ts)
	suite.Assert().Len(ts, 1)

	r = suite.request(http.MethodGet, "/transactions/type/TRANSFER", nil, http.StatusBadRequest)
	suite.Assert().Equal("Transaction type must be INCOME or EXPENSE", test.DecodeError(suite.T(), &r))

	r = suite.request(http.MethodGet, "/transactions/category/"+url.PathEscape("Food & Dining"), nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &ts)
	suite.Assert().Len(ts, 2)
	for _, t := range ts {
		suite.Assert().Equal("Food & Dining", t.Category)
	}
}

func (suite *TestSuiteStandard) TestTransactionsByDateRange() {
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 3, 10)})
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 4, 10), Type: models.Income})
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 4, 20)})

	query := "?startDate=2024-04-01T00:00:00Z&endDate=2024-04-30T23:59:59Z"

	var ts []models.Transaction
	r := suite.request(http.MethodGet, "/transactions/date-range"+query, nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &ts)
	suite.Require().Len(ts, 2)
	suite.Assert().True(ts[0].TransactionDate.Time().Equal(suite.date(2024, 4, 20).Time()))

	r = suite.request(http.MethodGet, "/transactions/type/EXPENSE/date-range"+query, nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &ts)
	suite.Assert().Len(ts, 1)

	r = suite.request(http.MethodGet, "/transactions/date-range?startDate=2024-04-01T00:00:00Z", nil, http.StatusBadRequest)
	suite.Assert().Equal("startDate and endDate are required", test.DecodeError(suite.T(), &r))

	suite.request(http.MethodGet, "/transactions/date-range?startDate=yesterday&endDate=today", nil, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategorySummary() {
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel"), Amount: decimal.NewFromInt(200)})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel"), Amount: decimal.NewFromInt(50), Type: models.Income})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Food & Dining"), Amount: decimal.NewFromInt(30)})
	suite.createTestTransaction(models.TransactionRequest{})

	r := suite.request(http.MethodGet, "/transactions/analytics/category-summary", nil, http.StatusOK)
	var summaries []models.CategorySummary
	test.DecodeResponse(suite.T(), &r, &summaries)

	suite.Require().Len(summaries, 2)
	suite.Assert().Equal("Food & Dining", summaries[0].Category)
	suite.Assert().Equal("Travel", summaries[1].Category)
	suite.Assert().Equal(int64(2), summaries[1].TransactionCount)
	suite.Assert().True(summaries[1].TotalAmount.Equal(decimal.NewFromInt(250)))
	suite.Assert().True(summaries[1].IncomeAmount.Equal(decimal.NewFromInt(50)))
	suite.Assert().True(summaries[1].ExpenseAmount.Equal(decimal.NewFromInt(200)))
}

func (suite *TestSuiteStandard) TestMonthlyTrends() {
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 1, 10), Amount: decimal.NewFromInt(999)})
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 3, 10), Amount: decimal.NewFromInt(40)})
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 3, 12), Amount: decimal.NewFromInt(60), Type: models.Income})
	suite.createTestTransaction(models.TransactionRequest{TransactionDate: suite.date(2024, 5, 1), Amount: decimal.NewFromInt(10)})

	r := suite.request(http.MethodGet, "/transactions/analytics/monthly-trends?months=3", nil, http.StatusOK)
	var trends []models.MonthlyTrend
	test.DecodeResponse(suite.T(), &r, &trends)

	suite.Require().Len(trends, 2, "January is outside of the window, April has no transactions")
	suite.Assert().Equal("2024-03", trends[0].Month.String())
	suite.Assert().Equal(int64(2), trends[0].TransactionCount)
	suite.Assert().True(trends[0].Income.Equal(decimal.NewFromInt(60)))
	suite.Assert().True(trends[0].Expenses.Equal(decimal.NewFromInt(40)))
	suite.Assert().Equal("2024-05", trends[1].Month.String())

	r = suite.request(http.MethodGet, "/transactions/analytics/monthly-trends", nil, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &trends)
	suite.Assert().Len(trends, 3)

	suite.request(http.MethodGet, "/transactions/analytics/monthly-trends?months=0", nil, http.StatusBadRequest)
}
