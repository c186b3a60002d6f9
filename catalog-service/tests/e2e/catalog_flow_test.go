//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного catalog-service
	// Для E2E тестов сервис должен быть запущен через docker-compose
	BaseURL = "http://localhost:8082"
)

func adminToken(t *testing.T) string {
	t.Helper()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}

	claims := jwt.MapClaims{
		"sub":    "e2e-admin",
		"role":   entity.RoleAdmin,
		"tenant": "tenant-e2e",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func buildProductForm(t *testing.T, name, categoryID string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	pc, _ := json.Marshal(entity.PriceConfiguration{
		"Size": {PriceType: "base", AvailableOptions: []string{"Small", "Medium", "Large"}},
	})
	writer.WriteField("name", name)
	writer.WriteField("description", "E2E test product")
	writer.WriteField("priceConfiguration", string(pc))
	writer.WriteField("tenantId", "tenant-e2e")
	writer.WriteField("categoryId", categoryID)
	writer.WriteField("isPublish", "true")

	fw, err := writer.CreateFormFile("image", "product.jpg")
	require.NoError(t, err)
	fw.Write([]byte("fake-image-bytes"))
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func buildToppingForm(t *testing.T, name string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	writer.WriteField("name", name)
	writer.WriteField("price", "49")
	writer.WriteField("tenantId", "tenant-e2e")

	fw, err := writer.CreateFormFile("image", "topping.jpg")
	require.NoError(t, err)
	fw.Write([]byte("fake-image-bytes"))
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// TestFullCatalogFlow тестирует полный цикл работы с каталогом:
// 1. Создание категории
// 2. Получение всех категорий (проверка кеша)
// 3. Создание товара с изображением
// 4. Получение товара (ключ изображения заменён URL)
// 5. Поиск товара в списке
// 6. Создание и листинг топпингов тенанта
func TestFullCatalogFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	token := adminToken(t)

	// ==================== Step 1: Create Category ====================
	t.Log("Step 1: Creating category")

	categoryName := fmt.Sprintf("E2E Category %d", time.Now().UnixNano())
	categoryBody, _ := json.Marshal(entity.CreateCategoryRequest{
		Name: categoryName,
		PriceConfiguration: entity.PriceConfiguration{
			"Size": {PriceType: "base", AvailableOptions: []string{"Small", "Medium", "Large"}},
		},
	})

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/categories", bytes.NewBuffer(categoryBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode, "Category creation should succeed")

	var createdCategory entity.IDResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&createdCategory))
	require.NotEmpty(t, createdCategory.ID)

	t.Logf("Created category: %s (ID: %s)", categoryName, createdCategory.ID)

	// ==================== Step 2: Get All Categories ====================
	t.Log("Step 2: Getting all categories")

	resp, err = client.Get(BaseURL + "/categories")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var categoriesResponse entity.CategoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categoriesResponse))
	assert.GreaterOrEqual(t, categoriesResponse.Total, 1)

	t.Logf("Total categories: %d", categoriesResponse.Total)

	// ==================== Step 3: Create Product ====================
	t.Log("Step 3: Creating product with image")

	productName := fmt.Sprintf("E2E Product %d", time.Now().UnixNano())
	formBody, contentType := buildProductForm(t, productName, createdCategory.ID)

	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/products", formBody)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode, "Product creation should succeed")

	var createdProduct entity.IDResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&createdProduct))
	require.NotEmpty(t, createdProduct.ID)

	t.Logf("Created product: %s (ID: %s)", productName, createdProduct.ID)

	// ==================== Step 4: Get Product ====================
	t.Log("Step 4: Getting product")

	resp, err = client.Get(BaseURL + "/products/" + createdProduct.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product entity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, productName, product.Name)
	// В ответе полный URL изображения, не ключ
	assert.Contains(t, product.Image, "http")

	// ==================== Step 5: Search Product ====================
	t.Log("Step 5: Searching product in list")

	resp, err = client.Get(BaseURL + "/products?q=" + productName[:11] + "&tenantId=tenant-e2e")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var productList entity.ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&productList))
	assert.GreaterOrEqual(t, productList.Total, int64(1))

	// ==================== Step 6: Toppings ====================
	t.Log("Step 6: Creating and listing toppings")

	toppingBody, contentType := buildToppingForm(t, fmt.Sprintf("E2E Topping %d", time.Now().UnixNano()))

	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/toppings", toppingBody)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode, "Topping creation should succeed")

	resp, err = client.Get(BaseURL + "/toppings?tenantId=tenant-e2e")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var toppingList entity.ToppingListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toppingList))
	assert.GreaterOrEqual(t, toppingList.Total, int64(1))

	// Без tenantId листинг топпингов отклоняется
	resp, err = client.Get(BaseURL + "/toppings")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestWriteEndpointsRequireAuth проверяет, что запись без токена отклоняется
func TestWriteEndpointsRequireAuth(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	body, _ := json.Marshal(entity.CreateCategoryRequest{Name: "Unauthorized"})
	resp, err := client.Post(BaseURL+"/categories", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
