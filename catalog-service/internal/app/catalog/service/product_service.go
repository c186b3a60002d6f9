package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/catalog-service/internal/app/catalog/repository"
	"sliceline/catalog-service/internal/app/catalog/util"
	"sliceline/pkg/logger"
	"sliceline/pkg/metrics"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService координирует запись товаров: загрузку изображения,
// сохранение записи и отправку события в Kafka
// Порядок шагов фиксированный: изображение загружается ДО записи в БД,
// старое изображение удаляется только ПОСЛЕ успешной загрузки нового
type ProductService struct {
	productRepo repository.ProductRepository
	storage     util.FileStorage
	producer    util.MessagePublisher
	emitEvents  bool
	topic       string
}

// NewProductService создает новый сервис товаров с внедрением зависимостей
// emitEvents - единый флаг отправки событий для create и update
func NewProductService(
	productRepo repository.ProductRepository,
	storage util.FileStorage,
	producer util.MessagePublisher,
	emitEvents bool,
	topic string,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		producer:    producer,
		emitEvents:  emitEvents,
		topic:       topic,
	}
}

// CreateProduct создает новый товар
// 1. Загружает изображение под свежим uuid-ключом
// 2. Сохраняет запись с ключом изображения
// 3. Отправляет событие PRODUCT_CREATED (если включено)
// При ошибке сохранения уже загруженное изображение НЕ удаляется -
// компенсация на create-пути не выдается, сирота в хранилище допустима
func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest, image []byte) (*entity.Product, error) {
	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	product := &entity.Product{
		Name:               req.Name,
		Description:        req.Description,
		PriceConfiguration: req.PriceConfiguration,
		Attributes:         req.Attributes,
		TenantID:           req.TenantID,
		CategoryID:         req.CategoryID,
		Image:              imageKey,
		IsPublish:          req.IsPublish,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.ProductsCreated.Inc()

	// Ошибка публикации не откатывает уже выполненные шаги
	if err := s.publishProductEvent(ctx, entity.EventProductCreated, product); err != nil {
		logger.Error().Err(err).Str("product_id", product.ID.Hex()).Msg("Failed to publish product event")
	}

	return product, nil
}

// GetProduct получает товар по ID
// Ключ изображения заменяется на публичный URL (read-side преобразование)
func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	product.Image = s.storage.ObjectURI(product.Image)

	return product, nil
}

// ListProducts получает страницу товаров с присоединёнными категориями
// searchText - регистронезависимый поиск по имени (пустая строка = все)
// Товары с несуществующей категорией исключаются (inner join)
func (s *ProductService) ListProducts(ctx context.Context, searchText string, filters entity.ProductFilters, page, limit int) (*entity.ProductListResponse, error) {
	page, limit = normalizePagination(page, limit, defaultProductLimit)

	products, total, err := s.productRepo.GetPaginated(ctx, searchText, filters, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for i := range products {
		products[i].Image = s.storage.ObjectURI(products[i].Image)
	}

	if products == nil {
		products = []entity.ProductWithCategory{}
	}

	return &entity.ProductListResponse{
		Data:        products,
		Total:       total,
		PageSize:    limit,
		CurrentPage: page,
	}, nil
}

// UpdateProduct обновляет товар
// Тенантская проверка: не-admin может менять только товары своего тенанта
// Если передано новое изображение - сначала загружается новое,
// потом удаляется старое (при неудачной загрузке запись не трогается)
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *entity.UpdateProductRequest, image []byte, auth entity.AuthContext) (*entity.Product, error) {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if auth.Role != entity.RoleAdmin && current.TenantID != auth.TenantID {
		return nil, ErrForbidden
	}

	imageKey := current.Image
	if image != nil {
		newKey := uuid.New().String()
		if err := s.storage.Upload(ctx, newKey, image); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}

		// Удаление старого изображения не критично: при ошибке остается сирота
		if err := s.storage.Delete(ctx, current.Image); err != nil {
			logger.Warn().Err(err).Str("image", current.Image).Msg("Failed to delete old image")
			metrics.OrphanedImages.Inc()
		}

		imageKey = newKey
	}

	updated := &entity.Product{
		Name:               req.Name,
		Description:        req.Description,
		PriceConfiguration: req.PriceConfiguration,
		Attributes:         req.Attributes,
		TenantID:           req.TenantID,
		CategoryID:         req.CategoryID,
		Image:              imageKey,
		IsPublish:          req.IsPublish,
	}

	result, err := s.productRepo.Update(ctx, id, updated)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.publishProductEvent(ctx, entity.EventProductUpdated, result); err != nil {
		logger.Error().Err(err).Str("product_id", result.ID.Hex()).Msg("Failed to publish product event")
	}

	return result, nil
}

// publishProductEvent отправляет событие о товаре в Kafka
// Key - это ID товара для сохранения порядка событий в партиции
func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) error {
	if !s.emitEvents {
		return nil
	}

	event := entity.ProductEvent{
		EventType:          eventType,
		ProductID:          product.ID.Hex(),
		PriceConfiguration: product.PriceConfiguration,
		TenantID:           product.TenantID,
		Timestamp:          time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if err := s.producer.PublishMessage(ctx, s.topic, event.ProductID, eventData); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}
