package handler

import (
	"context"

	"sliceline/catalog-service/internal/app/catalog/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Моки сервисов для handler тестов

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest, image []byte) (*entity.Product, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, searchText string, filters entity.ProductFilters, page, limit int) (*entity.ProductListResponse, error) {
	args := m.Called(ctx, searchText, filters, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductListResponse), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *entity.UpdateProductRequest, image []byte, auth entity.AuthContext) (*entity.Product, error) {
	args := m.Called(ctx, id, req, image, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

type MockToppingService struct {
	mock.Mock
}

func (m *MockToppingService) CreateTopping(ctx context.Context, req *entity.CreateToppingRequest, image []byte) (*entity.Topping, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topping), args.Error(1)
}

func (m *MockToppingService) GetTopping(ctx context.Context, id primitive.ObjectID) (*entity.Topping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topping), args.Error(1)
}

func (m *MockToppingService) ListToppings(ctx context.Context, tenantID string, page, limit int) (*entity.ToppingListResponse, error) {
	args := m.Called(ctx, tenantID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ToppingListResponse), args.Error(1)
}

func (m *MockToppingService) UpdateTopping(ctx context.Context, id primitive.ObjectID, req *entity.UpdateToppingRequest, image []byte, auth entity.AuthContext) (*entity.Topping, error) {
	args := m.Called(ctx, id, req, image, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topping), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
