package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/repository"
	"sliceline/catalog-service/internal/app/catalog/util"
	"sliceline/pkg/logger"
	"sliceline/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Время жизни кеша списка категорий
const categoriesCacheTTL = time.Hour

// CategoryService обрабатывает бизнес-логику категорий
// Список категорий кешируется в Redis, кеш инвалидируется при создании
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        util.CategoryCache
}

// NewCategoryService создает новый сервис категорий с внедрением зависимостей
func NewCategoryService(categoryRepo repository.CategoryRepository, cache util.CategoryCache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CategoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		Name:               req.Name,
		PriceConfiguration: req.PriceConfiguration,
		Attributes:         req.Attributes,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.CategoriesCreated.Inc()

	// Категория уже создана, проблемы с кешем не критичны
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}

	return category, nil
}

// GetCategory получает категорию по ID (без кеша - запрашивается конкретная)
func (s *CategoryService) GetCategory(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из MongoDB и кеширует
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	// nil - промах, закешированный пустой список - валидное попадание
	categories, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories cache")
	} else if categories != nil {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}
