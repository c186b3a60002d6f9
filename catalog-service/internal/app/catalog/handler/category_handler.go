package handler

import (
	"errors"
	"net/http"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/service"
	"sliceline/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler обрабатывает HTTP запросы категорий
type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
	}
}

// CreateCategory создает новую категорию (JSON тело, без изображения)
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create category")
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, entity.IDResponse{ID: category.ID.Hex()})
}

// GetAllCategories возвращает все категории (через кеш)
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get categories")
		respondError(c, http.StatusInternalServerError, "Failed to get categories")
		return
	}

	if categories == nil {
		categories = []entity.Category{}
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// GetCategory возвращает категорию по ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		logger.Error().Err(err).Str("category_id", id.Hex()).Msg("Failed to get category")
		respondError(c, http.StatusInternalServerError, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, category)
}
