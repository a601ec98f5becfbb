package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/state"
)

func TestDefaultQuery(t *testing.T) {
	q := state.DefaultQuery()

	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, models.SortByTransactionDate, q.SortBy)
	assert.Equal(t, models.Descending, q.SortDir)
	assert.False(t, q.Filtered())
	assert.Nil(t, q.Validate())
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*state.Query)
		err  error
	}{
		{"Negative page", func(q *state.Query) { q.Page = -1 }, state.ErrPageInvalid},
		{"Zero size", func(q *state.Query) { q.Size = 0 }, state.ErrSizeInvalid},
		{"Sort field", func(q *state.Query) { q.SortBy = "notes" }, models.ErrSortFieldInvalid},
		{"Sort direction", func(q *state.Query) { q.SortDir = "up" }, models.ErrSortDirectionInvalid},
		{"Type", func(q *state.Query) { q.Type = "TRANSFER" }, models.ErrTransactionTypeInvalid},
		{"Valid filter", func(q *state.Query) { q.Type = models.Income; q.Category = "Salary" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := state.DefaultQuery()
			tt.mod(&q)

			err := q.Validate()
			if tt.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
