package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей из JWT токена (выдаёт Auth Service)
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// PriceRule описывает одно ценовое правило
// priceType: base (базовая цена) или aditional (доплата за опцию)
type PriceRule struct {
	PriceType        string   `json:"priceType" bson:"priceType"`
	AvailableOptions []string `json:"availableOptions" bson:"availableOptions"`
}

// PriceConfiguration - отображение имени ценовой компоненты на правило
// Одинаковая форма у категории и товара
type PriceConfiguration map[string]PriceRule

// CategoryAttribute описывает атрибут, доступный товарам категории
type CategoryAttribute struct {
	Name             string   `json:"name" bson:"name"`
	WidgetType       string   `json:"widgetType" bson:"widgetType"`
	DefaultValue     string   `json:"defaultValue" bson:"defaultValue"`
	AvailableOptions []string `json:"availableOptions" bson:"availableOptions"`
}

// Category представляет категорию товаров
type Category struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name               string              `json:"name" bson:"name"`
	PriceConfiguration PriceConfiguration  `json:"priceConfiguration" bson:"priceConfiguration"`
	Attributes         []CategoryAttribute `json:"attributes" bson:"attributes"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" bson:"updated_at"`
}

// AttributeValue - выбранное значение атрибута у конкретного товара
type AttributeValue struct {
	Name  string      `json:"name" bson:"name"`
	Value interface{} `json:"value" bson:"value"`
}

// Product представляет товар в каталоге
// Image хранит только ключ объекта в хранилище, не URL
type Product struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Description        string             `json:"description" bson:"description"`
	PriceConfiguration PriceConfiguration `json:"priceConfiguration" bson:"priceConfiguration"`
	Attributes         []AttributeValue   `json:"attributes" bson:"attributes"`
	TenantID           string             `json:"tenantId" bson:"tenantId"`
	CategoryID         primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	Image              string             `json:"image" bson:"image"`
	IsPublish          bool               `json:"isPublish" bson:"isPublish"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// CategorySummary - срез категории, который подтягивается в список товаров
// Содержит только поля, проецируемые в $lookup
type CategorySummary struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id"`
	Name               string              `json:"name" bson:"name"`
	PriceConfiguration PriceConfiguration  `json:"priceConfiguration" bson:"priceConfiguration"`
	Attributes         []CategoryAttribute `json:"attributes" bson:"attributes"`
}

// ProductWithCategory содержит товар с присоединённой категорией
type ProductWithCategory struct {
	Product  `bson:",inline"`
	Category CategorySummary `json:"category" bson:"category"`
}

// Topping представляет топпинг (добавку к товару), принадлежит тенанту
type Topping struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Image     string             `json:"image" bson:"image"`
	TenantID  string             `json:"tenantId" bson:"tenantId"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductFilters - фильтры списка товаров
// Nil-поля означают отсутствие фильтра
type ProductFilters struct {
	TenantID   string
	CategoryID *primitive.ObjectID
	IsPublish  *bool
}

// AuthContext - разрешённые роль и тенант вызывающего (из JWT middleware)
type AuthContext struct {
	Role     string
	TenantID string
}

// Типы событий каталога для Kafka
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventToppingCreated = "TOPPING_CREATED"
	EventToppingUpdated = "TOPPING_UPDATED"
)

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType          string             `json:"event_type"`
	ProductID          string             `json:"product_id"`
	PriceConfiguration PriceConfiguration `json:"price_configuration"`
	TenantID           string             `json:"tenant_id"`
	Timestamp          time.Time          `json:"timestamp"`
}

// ToppingEvent представляет событие изменения топпинга для Kafka
type ToppingEvent struct {
	EventType string    `json:"event_type"`
	ToppingID string    `json:"topping_id"`
	Price     float64   `json:"price"`
	TenantID  string    `json:"tenant_id"`
	Timestamp time.Time `json:"timestamp"`
}
