package repository

import (
	"context"
	"errors"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrToppingNotFound  = errors.New("topping not found")
)

// observeQuery замеряет длительность запроса к MongoDB
// Использование: defer observeQuery("insert", "products")()
func observeQuery(operation, collection string) func() {
	start := time.Now()
	return func() {
		metrics.MongoQueryDuration.WithLabelValues("catalog-service", operation, collection).
			Observe(time.Since(start).Seconds())
	}
}

// countQueryError учитывает ошибку MongoDB (отсутствие документа - не ошибка)
func countQueryError(operation string) {
	metrics.MongoErrors.WithLabelValues("catalog-service", operation).Inc()
}

// CategoryRepository определяет методы для работы с категориями в MongoDB
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
}

// ProductRepository определяет методы для работы с товарами в MongoDB
// GetPaginated выполняет агрегацию: фильтр + join категории + пагинация
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, product *entity.Product) (*entity.Product, error)
	GetPaginated(ctx context.Context, searchText string, filters entity.ProductFilters, page, limit int) ([]entity.ProductWithCategory, int64, error)
}

// ToppingRepository определяет методы для работы с топпингами в MongoDB
type ToppingRepository interface {
	Create(ctx context.Context, topping *entity.Topping) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Topping, error)
	Update(ctx context.Context, id primitive.ObjectID, topping *entity.Topping) (*entity.Topping, error)
	GetPaginated(ctx context.Context, tenantID string, page, limit int) ([]entity.Topping, int64, error)
}
