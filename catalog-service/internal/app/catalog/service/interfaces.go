package service

import (
	"context"

	"sliceline/catalog-service/internal/app/catalog/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
}

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest, image []byte) (*entity.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	ListProducts(ctx context.Context, searchText string, filters entity.ProductFilters, page, limit int) (*entity.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, req *entity.UpdateProductRequest, image []byte, auth entity.AuthContext) (*entity.Product, error)
}

type ToppingServiceInterface interface {
	CreateTopping(ctx context.Context, req *entity.CreateToppingRequest, image []byte) (*entity.Topping, error)
	GetTopping(ctx context.Context, id primitive.ObjectID) (*entity.Topping, error)
	ListToppings(ctx context.Context, tenantID string, page, limit int) (*entity.ToppingListResponse, error)
	UpdateTopping(ctx context.Context, id primitive.ObjectID, req *entity.UpdateToppingRequest, image []byte, auth entity.AuthContext) (*entity.Topping, error)
}
