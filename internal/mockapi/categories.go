package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trackspring/client/internal/database"
	"github.com/trackspring/client/internal/httputil"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"gorm.io/gorm"
)

func (s *Server) registerCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", s.ListCategories)
	r.POST("", s.CreateCategory)

	r.GET("/user", s.UserCategories)
	r.GET("/default", s.DefaultCategories)
	r.GET("/with-counts", s.CategoriesWithCounts)
	r.GET("/statistics", s.CategoryStatistics)
	r.OPTIONS("/cleanup", httputil.OptionsDelete)
	r.DELETE("/cleanup", s.CleanupCategories)

	r.OPTIONS("/:id", httputil.OptionsGetPutDelete)
	r.GET("/:id", s.GetCategory)
	r.PUT("/:id", s.UpdateCategory)
	r.DELETE("/:id", s.DeleteCategory)
}

// visible selects the default categories and the categories of the user.
func (s *Server) visible(c *gin.Context) *gorm.DB {
	return s.db.Model(&Category{}).Where("user_id IS NULL OR user_id = ?", currentUser(c).ID)
}

func (s *Server) listCategories(c *gin.Context, q *gorm.DB, withCounts bool) {
	var cs []Category
	if err := q.Order("is_default DESC").Order("name").Find(&cs).Error; err != nil {
		abort(c, err)
		return
	}

	counts := map[string]int64{}
	if withCounts {
		var err error
		if counts, err = s.categoryCounts(c); err != nil {
			abort(c, err)
			return
		}
	}

	out := make([]models.Category, 0, len(cs))
	for _, category := range cs {
		out = append(out, category.model(counts[category.Name]))
	}

	c.JSON(http.StatusOK, out)
}

// categoryCounts returns the number of transactions of the user per category name.
func (s *Server) categoryCounts(c *gin.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}

	err := s.transactions(c).
		Select("category, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

// ListCategories returns all categories available to the user
//
//	@Summary		List categories
//	@Description	Returns the default categories followed by the categories of the user
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		models.Category
//	@Failure		401	{object}	httpError
//	@Router			/categories [get]
func (s *Server) ListCategories(c *gin.Context) {
	s.listCategories(c, s.visible(c), false)
}

func (s *Server) UserCategories(c *gin.Context) {
	s.listCategories(c, s.db.Model(&Category{}).Where("user_id = ?", currentUser(c).ID), false)
}

func (s *Server) DefaultCategories(c *gin.Context) {
	s.listCategories(c, s.db.Model(&Category{}).Where("user_id IS NULL"), false)
}

func (s *Server) CategoriesWithCounts(c *gin.Context) {
	s.listCategories(c, s.visible(c), true)
}

func (s *Server) findCategory(c *gin.Context) (Category, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Category{}, errInvalidID
	}

	var category Category
	err = s.visible(c).Where("id = ?", id).First(&category).Error
	if errors.Is(err, database.ErrResourceNotFound) {
		return Category{}, errCategoryMissing
	}
	return category, err
}

func (s *Server) GetCategory(c *gin.Context) {
	category, err := s.findCategory(c)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, category.model(0))
}

// validCategory checks the request and applies it to category.
// Names are unique per user, compared case-insensitively, and must not
// shadow a default category.
func (s *Server) validCategory(c *gin.Context, req models.CategoryRequest, category *Category) error {
	req = service.NormalizeCategory(req)

	if err := service.ValidateCategoryName(req.Name); err != nil {
		return err
	}

	if err := service.ValidateCategoryColor(req.Color); err != nil {
		return err
	}

	var count int64
	err := s.visible(c).
		Where("LOWER(name) = LOWER(?)", req.Name).
		Where("id <> ?", category.ID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return errCategoryExists
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Description = ""
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}

	return nil
}

// CreateCategory creates a category for the user
//
//	@Summary		Create category
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	models.Category
//	@Failure		400			{object}	httpError
//	@Param			category	body		models.CategoryRequest	true	"Category"
//	@Router			/categories [post]
func (s *Server) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !bind(c, &req) {
		return
	}

	uid := currentUser(c).ID
	category := Category{UserID: &uid}
	if err := s.validCategory(c, req, &category); err != nil {
		abort(c, err)
		return
	}

	if err := s.db.Create(&category).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, category.model(0))
}

// UpdateCategory updates a category of the user. Transactions using the
// old name are moved to the new one.
func (s *Server) UpdateCategory(c *gin.Context) {
	category, err := s.findCategory(c)
	if err != nil {
		abort(c, err)
		return
	}

	if category.IsDefault {
		abort(c, errDefaultCategory)
		return
	}

	var req models.CategoryRequest
	if !bind(c, &req) {
		return
	}

	oldName := category.Name
	if err := s.validCategory(c, req, &category); err != nil {
		abort(c, err)
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&category).Error; err != nil {
			return err
		}

		if oldName == category.Name {
			return nil
		}

		return tx.Model(&Transaction{}).
			Where("user_id = ? AND category = ?", currentUser(c).ID, oldName).
			Update("category", category.Name).Error
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, category.model(0))
}

func (s *Server) DeleteCategory(c *gin.Context) {
	category, err := s.findCategory(c)
	if err != nil {
		abort(c, err)
		return
	}

	if category.IsDefault {
		abort(c, errDefaultCategory)
		return
	}

	var used int64
	if err := s.transactions(c).Where("category = ?", category.Name).Count(&used).Error; err != nil {
		abort(c, err)
		return
	}

	if used > 0 {
		abort(c, errCategoryInUse)
		return
	}

	if err := s.db.Delete(&category).Error; err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CategoryStatistics counts the categories available to the user
//
//	@Summary		Category statistics
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	models.CategoryStatistics
//	@Router			/categories/statistics [get]
func (s *Server) CategoryStatistics(c *gin.Context) {
	var cs []Category
	if err := s.visible(c).Find(&cs).Error; err != nil {
		abort(c, err)
		return
	}

	counts, err := s.categoryCounts(c)
	if err != nil {
		abort(c, err)
		return
	}

	var st models.CategoryStatistics
	for _, category := range cs {
		st.TotalCategories++
		if category.IsDefault {
			st.DefaultCategories++
		} else {
			st.UserCategories++
		}

		if counts[category.Name] > 0 {
			st.CategoriesInUse++
		}
	}
	st.UnusedCategories = st.TotalCategories - st.CategoriesInUse

	c.JSON(http.StatusOK, st)
}

// CleanupCategories deletes all categories of the user that no transaction uses
//
//	@Summary		Delete unused categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	models.CleanupResult
//	@Router			/categories/cleanup [delete]
func (s *Server) CleanupCategories(c *gin.Context) {
	used := s.transactions(c).Select("category").Where("category <> ''")

	result := s.db.
		Where("user_id = ?", currentUser(c).ID).
		Where("name NOT IN (?)", used).
		Delete(&Category{})
	if result.Error != nil {
		abort(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, models.CleanupResult{
		Message:      fmt.Sprintf("Deleted %d unused categories", result.RowsAffected),
		DeletedCount: result.RowsAffected,
	})
}
