package mockapi_test

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/trackspring/client/internal/test"
	"github.com/trackspring/client/pkg/models"
)

func (suite *TestSuiteStandard) createTestCategory(req models.CategoryRequest) models.Category {
	r := suite.request(http.MethodPost, "/categories", req, http.StatusCreated)

	var c models.Category
	test.DecodeResponse(suite.T(), &r, &c)
	return c
}

func (suite *TestSuiteStandard) categories(path string) []models.Category {
	r := suite.request(http.MethodGet, path, nil, http.StatusOK)

	var cs []models.Category
	test.DecodeResponse(suite.T(), &r, &cs)
	return cs
}

func (suite *TestSuiteStandard) TestDefaultCategories() {
	cs := suite.categories("/categories/default")

	suite.Assert().Len(cs, 16)
	for _, c := range cs {
		suite.Assert().True(c.IsDefault, c.Name)
		suite.Assert().Regexp("^#[0-9A-F]{6}$", c.Color, c.Name)
	}

	suite.Assert().Empty(suite.categories("/categories/user"))
}

func (suite *TestSuiteStandard) TestCreateCategory() {
	c := suite.createTestCategory(models.CategoryRequest{
		Name:        "  Pets ",
		Description: test.Ptr(" "),
	})

	suite.Assert().NotZero(c.ID)
	suite.Assert().Equal("Pets", c.Name)
	suite.Assert().Equal("", c.Description)
	suite.Assert().Equal(models.DefaultCategoryColor, c.Color)
	suite.Assert().False(c.IsDefault)

	all := suite.categories("/categories")
	suite.Require().Len(all, 17)
	suite.Assert().True(all[0].IsDefault, "default categories are listed first")
	suite.Assert().Equal("Pets", all[16].Name)

	user := suite.categories("/categories/user")
	suite.Require().Len(user, 1)
	suite.Assert().Equal(c.ID, user[0].ID)

	r := suite.request(http.MethodGet, fmt.Sprintf("/categories/%d", c.ID), nil, http.StatusOK)
	var got models.Category
	test.DecodeResponse(suite.T(), &r, &got)
	suite.Assert().Equal("Pets", got.Name)
}

func (suite *TestSuiteStandard) TestCreateCategoryFails() {
	suite.createTestCategory(models.CategoryRequest{Name: "Pets"})

	tests := []struct {
		name string
		req  models.CategoryRequest
		msg  string
	}{
		{"Duplicate", models.CategoryRequest{Name: "pets"}, "Category with this name already exists"},
		{"Shadows default", models.CategoryRequest{Name: "SALARY"}, "Category with this name already exists"},
		{"Blank name", models.CategoryRequest{Name: "   "}, "Category name is required"},
		{"Missing name", models.CategoryRequest{}, "Name is required"},
		{"Name too long", models.CategoryRequest{Name: strings.Repeat("a", 101)}, "Name cannot be longer than 100"},
		{"Invalid color", models.CategoryRequest{Name: "Garden", Color: "green"}, "Color must be a valid hex color code (e.g., #FF5733)"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/categories", tt.req, http.StatusBadRequest)
			suite.Assert().Equal(tt.msg, test.DecodeError(suite.T(), &r))
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesAreScopedToUser() {
	c := suite.createTestCategory(models.CategoryRequest{Name: "Pets"})
	bob := suite.register("bob").Token

	suite.requestAs(bob, http.MethodGet, fmt.Sprintf("/categories/%d", c.ID), nil, http.StatusNotFound)

	// Names only need to be unique per user
	suite.requestAs(bob, http.MethodPost, "/categories", models.CategoryRequest{Name: "Pets"}, http.StatusCreated)
}

func (suite *TestSuiteStandard) TestUpdateCategoryRenamesTransactions() {
	c := suite.createTestCategory(models.CategoryRequest{Name: "Pets"})
	t := suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Pets")})

	r := suite.request(http.MethodPut, fmt.Sprintf("/categories/%d", c.ID), models.CategoryRequest{
		Name:  "Animals",
		Color: "#112233",
	}, http.StatusOK)

	var updated models.Category
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Animals", updated.Name)
	suite.Assert().Equal("#112233", updated.Color)

	r = suite.request(http.MethodGet, fmt.Sprintf("/transactions/%d", t.ID), nil, http.StatusOK)
	var tr models.Transaction
	test.DecodeResponse(suite.T(), &r, &tr)
	suite.Assert().Equal("Animals", tr.Category)

	// Keeping the name is not a duplicate of itself
	suite.request(http.MethodPut, fmt.Sprintf("/categories/%d", c.ID), models.CategoryRequest{Name: "animals"}, http.StatusOK)
}

func (suite *TestSuiteStandard) TestDefaultCategoryIsReadOnly() {
	id := suite.categories("/categories/default")[0].ID
	path := fmt.Sprintf("/categories/%d", id)

	r := suite.request(http.MethodPut, path, models.CategoryRequest{Name: "Mine"}, http.StatusBadRequest)
	suite.Assert().Equal("Default categories cannot be modified or deleted", test.DecodeError(suite.T(), &r))

	suite.request(http.MethodDelete, path, nil, http.StatusBadRequest)
	suite.request(http.MethodGet, path, nil, http.StatusOK)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	used := suite.createTestCategory(models.CategoryRequest{Name: "Pets"})
	unused := suite.createTestCategory(models.CategoryRequest{Name: "Garden"})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Pets")})

	r := suite.request(http.MethodDelete, fmt.Sprintf("/categories/%d", used.ID), nil, http.StatusBadRequest)
	suite.Assert().Equal("Category is used by transactions and cannot be deleted", test.DecodeError(suite.T(), &r))

	suite.request(http.MethodDelete, fmt.Sprintf("/categories/%d", unused.ID), nil, http.StatusNoContent)
	r = suite.request(http.MethodGet, fmt.Sprintf("/categories/%d", unused.ID), nil, http.StatusNotFound)
	suite.Assert().Equal("Category not found or access denied", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestCategoriesWithCounts() {
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Shopping")})

	counts := map[string]int64{}
	for _, c := range suite.categories("/categories/with-counts") {
		counts[c.Name] = c.TransactionCount
	}

	suite.Assert().Equal(int64(2), counts["Travel"])
	suite.Assert().Equal(int64(1), counts["Shopping"])
	suite.Assert().Equal(int64(0), counts["Salary"])

	for _, c := range suite.categories("/categories") {
		suite.Assert().Zero(c.TransactionCount, "plain listing has no counts")
	}
}

func (suite *TestSuiteStandard) TestCategoryStatistics() {
	suite.createTestCategory(models.CategoryRequest{Name: "Pets"})
	suite.createTestCategory(models.CategoryRequest{Name: "Garden"})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Pets")})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Travel")})

	r := suite.request(http.MethodGet, "/categories/statistics", nil, http.StatusOK)
	var st models.CategoryStatistics
	test.DecodeResponse(suite.T(), &r, &st)

	suite.Assert().Equal(models.CategoryStatistics{
		TotalCategories:   18,
		DefaultCategories: 16,
		UserCategories:    2,
		CategoriesInUse:   2,
		UnusedCategories:  16,
	}, st)
}

func (suite *TestSuiteStandard) TestCleanupCategories() {
	suite.createTestCategory(models.CategoryRequest{Name: "Pets"})
	suite.createTestCategory(models.CategoryRequest{Name: "Garden"})
	suite.createTestCategory(models.CategoryRequest{Name: "Hobbies"})
	suite.createTestTransaction(models.TransactionRequest{Category: test.Ptr("Pets")})

	r := suite.request(http.MethodDelete, "/categories/cleanup", nil, http.StatusOK)
	var result models.CleanupResult
	test.DecodeResponse(suite.T(), &r, &result)

	suite.Assert().Equal(int64(2), result.DeletedCount)
	suite.Assert().Equal("Deleted 2 unused categories", result.Message)

	user := suite.categories("/categories/user")
	suite.Require().Len(user, 1)
	suite.Assert().Equal("Pets", user[0].Name)
	suite.Assert().Len(suite.categories("/categories/default"), 16, "default categories are never cleaned up")
}
