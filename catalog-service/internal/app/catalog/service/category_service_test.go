package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/repository"
	"sliceline/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Хелперы для создания тестовых данных

func newTestPriceConfiguration() entity.PriceConfiguration {
	return entity.PriceConfiguration{
		"Size": {
			PriceType:        "base",
			AvailableOptions: []string{"Small", "Medium", "Large"},
		},
	}
}

func newTestCategory() *entity.Category {
	return &entity.Category{
		ID:                 primitive.NewObjectID(),
		Name:               "Pizza",
		PriceConfiguration: newTestPriceConfiguration(),
		CreatedAt:          time.Now(),
	}
}

func TestCategoryService_CreateCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	service := NewCategoryService(categoryRepo, cache)

	req := &entity.CreateCategoryRequest{
		Name:               "Pizza",
		PriceConfiguration: newTestPriceConfiguration(),
	}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, category)
	assert.Equal(t, "Pizza", category.Name)

	categoryRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_RepoError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(errors.New("db error"))

	service := NewCategoryService(categoryRepo, cache)

	req := &entity.CreateCategoryRequest{
		Name:               "Pizza",
		PriceConfiguration: newTestPriceConfiguration(),
	}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert
	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrPersistence)
	// Кеш не трогаем, если категория не создана
	cache.AssertNotCalled(t, "DeleteCategories")
}

func TestCategoryService_CreateCategory_CacheErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(errors.New("redis error"))

	service := NewCategoryService(categoryRepo, cache)

	req := &entity.CreateCategoryRequest{
		Name:               "Pizza",
		PriceConfiguration: newTestPriceConfiguration(),
	}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert - ошибка кеша не должна прерывать выполнение
	require.NoError(t, err)
	assert.NotNil(t, category)
}

func TestCategoryService_GetCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	expectedCategory := newTestCategory()
	categoryRepo.On("GetByID", ctx, expectedCategory.ID).Return(expectedCategory, nil)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	category, err := service.GetCategory(ctx, expectedCategory.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expectedCategory.ID, category.ID)
	assert.Equal(t, expectedCategory.Name, category.Name)
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	categoryID := primitive.NewObjectID()
	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	category, err := service.GetCategory(ctx, categoryID)

	// Assert
	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_GetAllCategories_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	cachedCategories := []entity.Category{*newTestCategory(), *newTestCategory()}
	cache.On("GetCategories", ctx).Return(cachedCategories, nil)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	// Репозиторий НЕ должен вызываться при cache hit
	categoryRepo.AssertNotCalled(t, "GetAll")
}

func TestCategoryService_GetAllCategories_CacheMiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	dbCategories := []entity.Category{*newTestCategory(), *newTestCategory()}
	cache.On("GetCategories", ctx).Return(nil, nil)
	categoryRepo.On("GetAll", ctx).Return(dbCategories, nil)
	cache.On("SetCategories", ctx, dbCategories, time.Hour).Return(nil)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	categoryRepo.AssertCalled(t, "GetAll", ctx)
	cache.AssertCalled(t, "SetCategories", ctx, dbCategories, time.Hour)
}

func TestCategoryService_GetAllCategories_CachedEmptyListServed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	cache.On("GetCategories", ctx).Return([]entity.Category{}, nil)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert - пустой каталог отдаётся из кеша без похода в Mongo
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Len(t, categories, 0)
	categoryRepo.AssertNotCalled(t, "GetAll")
}

func TestCategoryService_GetAllCategories_CacheErrorFallsThrough(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	dbCategories := []entity.Category{*newTestCategory()}
	cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	categoryRepo.On("GetAll", ctx).Return(dbCategories, nil)
	cache.On("SetCategories", ctx, dbCategories, time.Hour).Return(nil)

	service := NewCategoryService(categoryRepo, cache)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert - ошибка кеша не ломает чтение, данные берутся из БД
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	categoryRepo.AssertCalled(t, "GetAll", ctx)
}

func TestCategoryService_GetAllCategories_RepoError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	cache.On("GetCategories", ctx).Return(nil, nil)
	categoryRepo.On("GetAll", ctx).Return(nil, errors.New("db error"))

	service := NewCategoryService(categoryRepo, cache)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	assert.Nil(t, categories)
	assert.ErrorIs(t, err, ErrPersistence)
}
