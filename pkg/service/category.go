package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ryanuber/go-glob"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
)

// MaxCategoryNameLength is the maximum length of a category name in characters.
const MaxCategoryNameLength = 100

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryService manages the categories of the authenticated user.
type CategoryService struct {
	client *api.Client
}

// NewCategoryService returns a CategoryService for the client.
func NewCategoryService(c *api.Client) *CategoryService {
	return &CategoryService{client: c}
}

func categoryPath(id int64) string {
	return api.Path("categories", strconv.FormatInt(id, 10))
}

func (s *CategoryService) list(ctx context.Context, path string) ([]models.Category, error) {
	var cs []models.Category
	err := s.client.Get(ctx, path, nil, &cs)
	return cs, err
}

// All returns the categories of the user and the default categories.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, "/categories")
}

// User returns only the categories created by the user.
func (s *CategoryService) User(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, "/categories/user")
}

// Default returns the system provided categories.
func (s *CategoryService) Default(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, "/categories/default")
}

// WithCounts returns all categories with their transaction counts set.
func (s *CategoryService) WithCounts(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, "/categories/with-counts")
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := s.client.Get(ctx, categoryPath(id), nil, &c)
	return c, err
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (models.Category, error) {
	var c models.Category
	err := s.client.Post(ctx, "/categories", nil, NormalizeCategory(req), &c)
	return c, err
}

// Update updates a category.
func (s *CategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (models.Category, error) {
	var c models.Category
	err := s.client.Put(ctx, categoryPath(id), NormalizeCategory(req), &c)
	return c, err
}

// Delete deletes a category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, categoryPath(id), nil)
}

// Statistics returns counts about the categories of the user.
func (s *CategoryService) Statistics(ctx context.Context) (models.CategoryStatistics, error) {
	var st models.CategoryStatistics
	err := s.client.Get(ctx, "/categories/statistics", nil, &st)
	return st, err
}

// Cleanup deletes all user categories no transaction uses.
func (s *CategoryService) Cleanup(ctx context.Context) (models.CleanupResult, error) {
	var r models.CleanupResult
	err := s.client.Delete(ctx, "/categories/cleanup", &r)
	return r, err
}

// Match returns all categories whose name matches the glob pattern.
// Matching is case-insensitive and "*" matches any sequence of characters.
func (s *CategoryService) Match(ctx context.Context, pattern string) ([]models.Category, error) {
	cs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return MatchCategories(cs, pattern), nil
}

// MatchCategories filters categories by a glob pattern on their name.
func MatchCategories(categories []models.Category, pattern string) []models.Category {
	pattern = strings.ToLower(pattern)

	matches := make([]models.Category, 0)
	for _, c := range categories {
		if glob.Glob(pattern, strings.ToLower(c.Name)) {
			matches = append(matches, c)
		}
	}
	return matches
}

// NormalizeCategory trims the request and sets the default color.
// An empty description is sent as null.
func NormalizeCategory(req models.CategoryRequest) models.CategoryRequest {
	req.Name = strings.TrimSpace(req.Name)

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		req.Description = nil
	}

	if req.Color == "" {
		req.Color = models.DefaultCategoryColor
	}
	return req
}

// CategoryColor returns the color of the category or the default color.
func CategoryColor(c *models.Category) string {
	if c == nil || c.Color == "" {
		return models.DefaultCategoryColor
	}
	return c.Color
}

// CategoryDisplayName returns the name of the category or "Uncategorized".
func CategoryDisplayName(c *models.Category) string {
	if c == nil || c.Name == "" {
		return "Uncategorized"
	}
	return c.Name
}

// ValidateCategoryName checks that a category name is set and not too long.
func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryNameRequired
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// ValidateCategoryColor checks that a color is empty or a #RRGGBB hex code.
func ValidateCategoryColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColor.MatchString(color) {
		return ErrCategoryColorInvalid
	}
	return nil
}
