package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/trackspring/client/internal/database"
)

type httpError struct {
	Error string `json:"error" example:"Transaction amount must be greater than 0"`
}

var (
	errUnauthorized       = errors.New("Authentication is required")
	errTokenInvalid       = errors.New("Invalid or expired token")
	errCredentials        = errors.New("Invalid username or password")
	errUsernameTaken      = errors.New("Username is already taken!")
	errEmailTaken         = errors.New("Email is already in use!")
	errRequestBodyEmpty   = errors.New("The request body must not be empty")
	errInvalidBody        = errors.New("The body of your request contains invalid or un-parseable data")
	errInvalidID          = errors.New("The specified resource ID is not a valid number")
	errAmountNotPositive  = errors.New("Transaction amount must be greater than 0")
	errDescriptionMissing = errors.New("Transaction description is required")
	errTypeMissing        = errors.New("Transaction type is required")
	errTypeInvalid        = errors.New("Transaction type must be INCOME or EXPENSE")
	errTransactionMissing = errors.New("Transaction not found or access denied")
	errPageInvalid        = errors.New("Page index must not be less than zero")
	errSizeInvalid        = errors.New("Page size must not be less than one")
	errDateRangeMissing   = errors.New("startDate and endDate are required")
	errDateInFuture       = errors.New("Transaction date cannot be in the future")
	errCategoryMissing    = errors.New("Category not found or access denied")
	errCategoryExists     = errors.New("Category with this name already exists")
	errDefaultCategory    = errors.New("Default categories cannot be modified or deleted")
	errCategoryInUse      = errors.New("Category is used by transactions and cannot be deleted")
)

// status returns the appropriate status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, database.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, database.ErrResourceNotFound), errors.Is(err, errTransactionMissing), errors.Is(err, errCategoryMissing):
		return http.StatusNotFound
	case errors.Is(err, errUnauthorized), errors.Is(err, errTokenInvalid), errors.Is(err, errCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

func abort(c *gin.Context, err error) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.AbortWithStatusJSON(code, httpError{
		Error: err.Error(),
	})
}

// ValidationErrorToText returns a message for a failed binding rule.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "email":
		return "Invalid email format"
	case "len":
		return fmt.Sprintf("%s must be %s characters long", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// bind decodes the JSON body into data and aborts the request on failure.
func bind(c *gin.Context, data any) bool {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, ValidationErrorToText(e))
		}
		err = errors.New(strings.Join(msgs, ", "))
	case errors.Is(err, io.EOF):
		err = errRequestBodyEmpty
	case errors.As(err, &typeErr):
	default:
		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = errInvalidBody
	}

	abort(c, err)
	return false
}
