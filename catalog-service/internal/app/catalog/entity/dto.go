package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type CreateCategoryRequest struct {
	Name               string              `json:"name" validate:"required,min=2,max=100"`
	PriceConfiguration PriceConfiguration  `json:"priceConfiguration" validate:"required"`
	Attributes         []CategoryAttribute `json:"attributes"`
}

// CreateProductRequest - поля товара из multipart формы
// priceConfiguration и attributes приходят JSON-строками и парсятся в handler
type CreateProductRequest struct {
	Name               string             `json:"name" validate:"required,min=2,max=200"`
	Description        string             `json:"description" validate:"required,max=2000"`
	PriceConfiguration PriceConfiguration `json:"priceConfiguration" validate:"required"`
	Attributes         []AttributeValue   `json:"attributes"`
	TenantID           string             `json:"tenantId" validate:"required"`
	CategoryID         primitive.ObjectID `json:"categoryId" validate:"required"`
	IsPublish          bool               `json:"isPublish"`
}

// UpdateProductRequest - полный набор полей, старые значения перезаписываются
type UpdateProductRequest struct {
	Name               string             `json:"name" validate:"required,min=2,max=200"`
	Description        string             `json:"description" validate:"required,max=2000"`
	PriceConfiguration PriceConfiguration `json:"priceConfiguration" validate:"required"`
	Attributes         []AttributeValue   `json:"attributes"`
	TenantID           string             `json:"tenantId" validate:"required"`
	CategoryID         primitive.ObjectID `json:"categoryId" validate:"required"`
	IsPublish          bool               `json:"isPublish"`
}

type CreateToppingRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	TenantID string  `json:"tenantId" validate:"required"`
}

type UpdateToppingRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	TenantID string  `json:"tenantId" validate:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// IDResponse - ответ операций записи: только идентификатор
type IDResponse struct {
	ID string `json:"id"`
}

// ProductListResponse - страница товаров с присоединёнными категориями
// total - полное количество совпадений до пагинации
type ProductListResponse struct {
	Data        []ProductWithCategory `json:"data"`
	Total       int64                 `json:"total"`
	PageSize    int                   `json:"pageSize"`
	CurrentPage int                   `json:"currentPage"`
}

// ToppingListResponse - страница топпингов тенанта
type ToppingListResponse struct {
	Data        []Topping `json:"data"`
	Total       int64     `json:"total"`
	PageSize    int       `json:"pageSize"`
	CurrentPage int       `json:"currentPage"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
