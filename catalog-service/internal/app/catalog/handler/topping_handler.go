package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/service"
	"sliceline/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToppingHandler обрабатывает HTTP запросы топпингов
type ToppingHandler struct {
	toppingService service.ToppingServiceInterface
	validator      *validator.Validate
}

func NewToppingHandler(toppingService service.ToppingServiceInterface) *ToppingHandler {
	return &ToppingHandler{
		toppingService: toppingService,
		validator:      validator.New(),
	}
}

// parseToppingForm собирает поля топпинга из multipart формы
func parseToppingForm(c *gin.Context) (*entity.CreateToppingRequest, error) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return nil, errors.New("invalid price")
	}

	return &entity.CreateToppingRequest{
		Name:     c.PostForm("name"),
		Price:    price,
		TenantID: c.PostForm("tenantId"),
	}, nil
}

// CreateTopping создает топпинг: изображение обязательно
func (h *ToppingHandler) CreateTopping(c *gin.Context) {
	req, err := parseToppingForm(c)
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

	topping, err := h.toppingService.CreateTopping(c.Request.Context(), req, image)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create topping")
		respondError(c, http.StatusInternalServerError, "Failed to create topping")
		return
	}

	c.JSON(http.StatusCreated, entity.IDResponse{ID: topping.ID.Hex()})
}

// UpdateTopping обновляет топпинг, изображение опционально
func (h *ToppingHandler) UpdateTopping(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid topping ID")
		return
	}

	form, err := parseToppingForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	req := entity.UpdateToppingRequest(*form)
	if err := h.validator.Struct(&req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	image, err := readImageFile(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read image file")
		return
	}

	topping, err := h.toppingService.UpdateTopping(c.Request.Context(), id, &req, image, getAuthContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrToppingNotFound):
			respondError(c, http.StatusNotFound, "Topping not found")
		case errors.Is(err, service.ErrForbidden):
			respondError(c, http.StatusForbidden, "You are not allowed to access this topping")
		default:
			logger.Error().Err(err).Str("topping_id", id.Hex()).Msg("Failed to update topping")
			respondError(c, http.StatusInternalServerError, "Failed to update topping")
		}
		return
	}

	c.JSON(http.StatusOK, entity.IDResponse{ID: topping.ID.Hex()})
}

// GetAllToppings возвращает страницу топпингов тенанта
// tenantId обязателен - без него запрос отклоняется
func (h *ToppingHandler) GetAllToppings(c *gin.Context) {
	page, limit := parsePagination(c)

	resp, err := h.toppingService.ListToppings(c.Request.Context(), c.Query("tenantId"), page, limit)
	if err != nil {
		if errors.Is(err, service.ErrTenantIDRequired) {
			respondError(c, http.StatusBadRequest, "tenantId query parameter is required")
			return
		}
		logger.Error().Err(err).Msg("Failed to list toppings")
		respondError(c, http.StatusInternalServerError, "Failed to list toppings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTopping возвращает топпинг по ID
func (h *ToppingHandler) GetTopping(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid topping ID")
		return
	}

	topping, err := h.toppingService.GetTopping(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrToppingNotFound) {
			respondError(c, http.StatusNotFound, "Topping not found")
			return
		}
		logger.Error().Err(err).Str("topping_id", id.Hex()).Msg("Failed to get topping")
		respondError(c, http.StatusInternalServerError, "Failed to get topping")
		return
	}

	c.JSON(http.StatusOK, topping)
}
