package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/trackspring/client/internal/test"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/state"
	"github.com/trackspring/client/pkg/types"
)

type IntegrationSuite struct {
	suite.Suite

	env          test.Env
	transactions *state.Transactions
}

func TestIntegration(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (suite *IntegrationSuite) SetupTest() {
	suite.env = test.NewEnv(suite.T())
	suite.transactions = state.NewTransactions(suite.env.Services.Transactions)
}

func (suite *IntegrationSuite) TestSessionIsAuthenticated() {
	suite.Assert().True(suite.env.Session.IsAuthenticated())

	user, err := suite.env.Services.Auth.Me(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal("alice", user.Username)

	suite.Require().Nil(suite.env.Session.Logout())
	_, err = suite.env.Services.Auth.Me(context.Background())
	suite.Assert().ErrorIs(err, api.ErrUnauthenticated)
}

func (suite *IntegrationSuite) TestCreateUpdatesSummary() {
	ctx := context.Background()

	before, err := suite.transactions.LoadSummary(ctx)
	suite.Require().Nil(err)

	_, err = suite.transactions.Create(ctx, models.TransactionRequest{
		Description:     "Coffee",
		Amount:          decimal.RequireFromString("4.50"),
		Type:            models.Expense,
		TransactionDate: types.NewTimestamp(time.Now().Add(-time.Minute)),
		Category:        test.Ptr("Food & Dining"),
	})
	suite.Require().Nil(err)

	after := suite.transactions.Summary()
	suite.Assert().Equal(before.ExpenseCount+1, after.ExpenseCount)
	suite.Assert().True(after.TotalExpenses.Equal(before.TotalExpenses.Add(decimal.RequireFromString("4.5"))))
	suite.Assert().Equal([]string{"Food & Dining"}, suite.transactions.Categories())
	suite.Assert().Equal("Coffee", suite.transactions.Items()[0].Description)
}

func (suite *IntegrationSuite) TestSortedPage() {
	ctx := context.Background()
	test.Seed(suite.T(), suite.env.Services.Transactions, test.Fixture(time.Now(), 15)...)

	q := state.DefaultQuery()
	q.SortBy = models.SortByAmount
	q.SortDir = models.Ascending

	page, err := suite.transactions.Load(ctx, q)
	suite.Require().Nil(err)

	suite.Require().Len(page.Content, 10)
	suite.Assert().Equal(int64(15), page.TotalElements)
	for i, t := range page.Content {
		suite.Assert().True(t.Amount.Equal(decimal.NewFromInt(int64(i+1))), "amount %d is %s", i, t.Amount)
	}
}

func (suite *IntegrationSuite) TestFilterByTypeAndCategory() {
	ctx := context.Background()
	test.Seed(suite.T(), suite.env.Services.Transactions, test.Fixture(time.Now(), 6)...)
	test.Seed(suite.T(), suite.env.Services.Transactions, models.TransactionRequest{
		Description: "Salary",
		Amount:      decimal.NewFromInt(3000),
		Type:        models.Income,
		Category:    test.Ptr("Salary"),
	})

	page, err := suite.transactions.FilterByType(ctx, models.Expense)
	suite.Require().Nil(err)
	suite.Assert().Len(page.Content, 6)

	page, err = suite.transactions.FilterByCategory(ctx, "Food & Dining")
	suite.Require().Nil(err)
	suite.Assert().Len(page.Content, 3)
	for _, t := range page.Content {
		suite.Assert().Equal(models.Expense, t.Type)
		suite.Assert().Equal("Food & Dining", t.Category)
	}

	page, err = suite.transactions.FilterByType(ctx, models.Income)
	suite.Require().Nil(err)
	suite.Assert().Empty(page.Content)
}

func (suite *IntegrationSuite) TestDelete() {
	ctx := context.Background()
	seeded := test.Seed(suite.T(), suite.env.Services.Transactions, test.Fixture(time.Now(), 3)...)

	_, err := suite.transactions.Load(ctx, state.DefaultQuery())
	suite.Require().Nil(err)

	suite.Require().Nil(suite.transactions.Delete(ctx, seeded[0].ID))
	suite.Assert().Len(suite.transactions.Items(), 2)
	suite.Assert().Equal(int64(2), suite.transactions.Summary().ExpenseCount)

	err = suite.transactions.Delete(ctx, seeded[0].ID)
	suite.Assert().ErrorIs(err, api.ErrNotFound)
}

func (suite *IntegrationSuite) TestUpdateUnknown() {
	_, err := suite.transactions.Update(context.Background(), 4711, models.TransactionRequest{
		Description: "Ghost",
		Amount:      decimal.NewFromInt(1),
		Type:        models.Expense,
	})

	suite.Assert().ErrorIs(err, api.ErrNotFound)
	suite.Assert().Equal("Transaction not found or access denied", suite.transactions.ErrMessage())
}

func (suite *IntegrationSuite) TestValidationError() {
	_, err := suite.transactions.Create(context.Background(), models.TransactionRequest{
		Description: "Nothing",
		Type:        models.Expense,
	})

	suite.Assert().ErrorIs(err, api.ErrValidation)
	suite.Assert().Equal("Transaction amount must be greater than 0", suite.transactions.ErrMessage())
}
