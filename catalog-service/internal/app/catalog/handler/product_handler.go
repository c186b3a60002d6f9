package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/service"
	"sliceline/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductHandler обрабатывает HTTP запросы товаров
// Create/Update принимают multipart форму: файл image плюс текстовые поля,
// где priceConfiguration и attributes - JSON строки
type ProductHandler struct {
	productService service.ProductServiceInterface
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
	}
}

// parseProductForm собирает поля товара из multipart формы
func parseProductForm(c *gin.Context) (*entity.CreateProductRequest, error) {
	var priceConfiguration entity.PriceConfiguration
	if err := json.Unmarshal([]byte(c.PostForm("priceConfiguration")), &priceConfiguration); err != nil {
		return nil, errors.New("invalid priceConfiguration JSON")
	}

	var attributes []entity.AttributeValue
	if raw := c.PostForm("attributes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &attributes); err != nil {
			return nil, errors.New("invalid attributes JSON")
		}
	}

	categoryID, err := primitive.ObjectIDFromHex(c.PostForm("categoryId"))
	if err != nil {
		return nil, errors.New("invalid categoryId")
	}

	return &entity.CreateProductRequest{
		Name:               c.PostForm("name"),
		Description:        c.PostForm("description"),
		PriceConfiguration: priceConfiguration,
		Attributes:         attributes,
		TenantID:           c.PostForm("tenantId"),
		CategoryID:         categoryID,
		IsPublish:          c.PostForm("isPublish") == "true",
	}, nil
}

// CreateProduct создает товар: изображение обязательно
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	req, err := parseProductForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	image, err := readImageFile(c, true)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, image)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create product")
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, entity.IDResponse{ID: product.ID.Hex()})
}

// UpdateProduct обновляет товар, изображение опционально
// Не-admin может менять только товары своего тенанта
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	form, err := parseProductForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	req := entity.UpdateProductRequest(*form)
	if err := h.validator.Struct(&req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	image, err := readImageFile(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read image file")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req, image, getAuthContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrForbidden):
			respondError(c, http.StatusForbidden, "You are not allowed to access this product")
		default:
			logger.Error().Err(err).Str("product_id", id.Hex()).Msg("Failed to update product")
			respondError(c, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, entity.IDResponse{ID: product.ID.Hex()})
}

// GetAllProducts возвращает страницу товаров с фильтрами
// Некорректный categoryId молча игнорируется - фильтр просто не применяется
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	filters := entity.ProductFilters{
		TenantID: c.Query("tenantId"),
	}

	if cid := c.Query("categoryId"); cid != "" {
		if oid, err := primitive.ObjectIDFromHex(cid); err == nil {
			filters.CategoryID = &oid
		}
	}

	if c.Query("isPublish") == "true" {
		published := true
		filters.IsPublish = &published
	}

	page, limit := parsePagination(c)

	resp, err := h.productService.ListProducts(c.Request.Context(), c.Query("q"), filters, page, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list products")
		respondError(c, http.StatusInternalServerError, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProduct возвращает товар по ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error().Err(err).Str("product_id", id.Hex()).Msg("Failed to get product")
		respondError(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}
