// Package service maps application level calls to the REST endpoints of the
// trackspring API and provides helpers to display their results.
package service

import "github.com/trackspring/client/pkg/api"

// Services bundles all domain services using the same client.
type Services struct {
	Auth         *AuthService
	Transactions *TransactionService
	Categories   *CategoryService
	Currency     *CurrencyService
}

// New returns all services for the client.
func New(c *api.Client) Services {
	return Services{
		Auth:         &AuthService{client: c},
		Transactions: &TransactionService{client: c},
		Categories:   &CategoryService{client: c},
		Currency:     &CurrencyService{client: c},
	}
}
