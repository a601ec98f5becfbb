// Package form validates user input before it is sent to the API.
package form

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/types"
)

// Draft is a transaction as entered by the user.
type Draft struct {
	Description     string
	Amount          string
	Type            string
	TransactionDate string
	Category        string
	Notes           string
	Currency        string
}

// DraftOf returns the draft for editing an existing transaction.
func DraftOf(t models.Transaction) Draft {
	return Draft{
		Description:     t.Description,
		Amount:          t.Amount.String(),
		Type:            string(t.Type),
		TransactionDate: t.TransactionDate.String(),
		Category:        t.Category,
		Notes:           t.Notes,
		Currency:        t.Currency,
	}
}

// Errors maps a field name to the message for the first rule it violates.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(msgs, "; ")
}

type draftFields struct {
	Description     string `json:"description" validate:"required,max=255"`
	Amount          string `json:"amount" validate:"required,positive_decimal"`
	Type            string `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	TransactionDate string `json:"transactionDate" validate:"required,timestamp"`
	Category        string `json:"category" validate:"max=100"`
	Notes           string `json:"notes" validate:"max=500"`
}

var messages = map[string]map[string]string{
	"description": {
		"required": "Description is required",
		"max":      "Description must not exceed 255 characters",
	},
	"amount": {
		"required":         "Amount is required",
		"positive_decimal": "Amount must be a positive number",
	},
	"type": {
		"required": "Transaction type is required",
		"oneof":    "Transaction type must be INCOME or EXPENSE",
	},
	"transactionDate": {
		"required":  "Transaction date is required",
		"timestamp": "Transaction date is invalid",
	},
	"category": {
		"max": "Category must not exceed 100 characters",
	},
	"notes": {
		"max": "Notes must not exceed 500 characters",
	},
}

// MessageFutureDate is reported for transaction dates after the validation instant.
const MessageFutureDate = "Transaction date cannot be in the future"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})

	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := types.ParseTimestamp(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidationErrorToText returns the user facing message for a failed rule.
func ValidationErrorToText(e validator.FieldError) string {
	if msg, ok := messages[e.Field()][e.Tag()]; ok {
		return msg
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

func collect(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ves {
			if _, seen := errs[fe.Field()]; !seen {
				errs[fe.Field()] = ValidationErrorToText(fe)
			}
		}
	}
	return errs
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Validate checks every field of the draft and either returns all
// violations as Errors or the normalized request.
//
// Dates equal to now are accepted.
func Validate(d Draft, now time.Time) (models.TransactionRequest, error) {
	f := draftFields{
		Description:     strings.TrimSpace(d.Description),
		Amount:          strings.TrimSpace(d.Amount),
		Type:            strings.ToUpper(strings.TrimSpace(d.Type)),
		TransactionDate: strings.TrimSpace(d.TransactionDate),
		Category:        strings.TrimSpace(d.Category),
		Notes:           strings.TrimSpace(d.Notes),
	}

	errs := collect(validate.Struct(f))

	var date types.Timestamp
	if _, failed := errs["transactionDate"]; !failed {
		date, _ = types.ParseTimestamp(f.TransactionDate)
		if date.Time().After(now) {
			errs["transactionDate"] = MessageFutureDate
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency != "" {
		if err := service.ValidateCurrencyCode(currency); err != nil {
			errs["currency"] = err.Error()
		}
	}

	if len(errs) > 0 {
		return models.TransactionRequest{}, errs
	}

	return models.TransactionRequest{
		Description:     f.Description,
		Amount:          decimal.RequireFromString(f.Amount),
		Type:            models.TransactionType(f.Type),
		TransactionDate: date,
		Category:        optional(f.Category),
		Notes:           optional(f.Notes),
		Currency:        currency,
	}, nil
}

// CategoryDraft is a category as entered by the user.
type CategoryDraft struct {
	Name        string
	Description string
	Color       string
}

// Validate checks the draft and returns the normalized request.
func (d CategoryDraft) Validate() (models.CategoryRequest, error) {
	errs := Errors{}

	if err := service.ValidateCategoryName(d.Name); err != nil {
		errs["name"] = err.Error()
	}

	color := strings.TrimSpace(d.Color)
	if err := service.ValidateCategoryColor(color); err != nil {
		errs["color"] = err.Error()
	}

	if len(errs) > 0 {
		return models.CategoryRequest{}, errs
	}

	return service.NormalizeCategory(models.CategoryRequest{
		Name:        d.Name,
		Description: optional(strings.TrimSpace(d.Description)),
		Color:       color,
	}), nil
}
