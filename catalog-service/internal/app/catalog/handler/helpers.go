package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"sliceline/catalog-service/internal/app/catalog/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{Error: message})
}

// formatValidationError возвращает сообщение по первому нарушенному правилу
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return fmt.Sprintf("Field '%s' failed validation: %s", fe.Field(), fe.Tag())
	}
	return "Invalid request data"
}

// parsePagination читает page/limit из query параметров
// Некорректные значения отдаются как 0 - дефолты подставляет service layer
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

// readImageFile читает файл image из multipart формы
// При required=false отсутствие файла не ошибка (nil, nil)
func readImageFile(c *gin.Context, required bool) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if !required && (errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)) {
			return nil, nil
		}
		return nil, fmt.Errorf("image file is required: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// getAuthContext собирает роль и тенант вызывающего из контекста gin
// Значения кладет Auth middleware
func getAuthContext(c *gin.Context) entity.AuthContext {
	return entity.AuthContext{
		Role:     c.GetString("role"),
		TenantID: c.GetString("tenant"),
	}
}
