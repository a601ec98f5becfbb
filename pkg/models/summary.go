package models

import (
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/types"
)

// Summary is the server side aggregate over all transactions of a user.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetWorth      decimal.Decimal `json:"netWorth"`
	IncomeCount   int64           `json:"incomeCount"`
	ExpenseCount  int64           `json:"expenseCount"`
}

// CategorySummary aggregates the transactions of one category.
type CategorySummary struct {
	Category         string          `json:"category"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int64           `json:"transactionCount"`
	IncomeAmount     decimal.Decimal `json:"incomeAmount"`
	ExpenseAmount    decimal.Decimal `json:"expenseAmount"`
}

// MonthlyTrend aggregates the transactions of one month.
type MonthlyTrend struct {
	Month            types.Month     `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	TransactionCount int64           `json:"transactionCount"`
}

// Net returns income minus expenses.
func (m MonthlyTrend) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}
