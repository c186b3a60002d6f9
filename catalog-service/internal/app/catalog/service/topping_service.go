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

// ToppingService координирует запись топпингов
// Протокол идентичен ProductService: изображение до записи,
// старое изображение удаляется после успешной загрузки нового
type ToppingService struct {
	toppingRepo repository.ToppingRepository
	storage     util.FileStorage
	producer    util.MessagePublisher
	emitEvents  bool
	topic       string
}

// NewToppingService создает новый сервис топпингов с внедрением зависимостей
func NewToppingService(
	toppingRepo repository.ToppingRepository,
	storage util.FileStorage,
	producer util.MessagePublisher,
	emitEvents bool,
	topic string,
) *ToppingService {
	return &ToppingService{
		toppingRepo: toppingRepo,
		storage:     storage,
		producer:    producer,
		emitEvents:  emitEvents,
		topic:       topic,
	}
}

// CreateTopping создает новый топпинг
// При ошибке сохранения загруженное изображение не удаляется (как у товаров)
func (s *ToppingService) CreateTopping(ctx context.Context, req *entity.CreateToppingRequest, image []byte) (*entity.Topping, error) {
	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	topping := &entity.Topping{
		Name:     req.Name,
		Price:    req.Price,
		TenantID: req.TenantID,
		Image:    imageKey,
	}

	if err := s.toppingRepo.Create(ctx, topping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.ToppingsCreated.Inc()

	if err := s.publishToppingEvent(ctx, entity.EventToppingCreated, topping); err != nil {
		logger.Error().Err(err).Str("topping_id", topping.ID.Hex()).Msg("Failed to publish topping event")
	}

	return topping, nil
}

// GetTopping получает топпинг по ID с заменой ключа изображения на URL
func (s *ToppingService) GetTopping(ctx context.Context, id primitive.ObjectID) (*entity.Topping, error) {
	topping, err := s.toppingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrToppingNotFound) {
			return nil, ErrToppingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	topping.Image = s.storage.ObjectURI(topping.Image)

	return topping, nil
}

// ListToppings получает страницу топпингов тенанта
// tenantID обязателен - проверяется ДО обращения к репозиторию
func (s *ToppingService) ListToppings(ctx context.Context, tenantID string, page, limit int) (*entity.ToppingListResponse, error) {
	if tenantID == "" {
		return nil, ErrTenantIDRequired
	}

	page, limit = normalizePagination(page, limit, defaultToppingLimit)

	toppings, total, err := s.toppingRepo.GetPaginated(ctx, tenantID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for i := range toppings {
		toppings[i].Image = s.storage.ObjectURI(toppings[i].Image)
	}

	if toppings == nil {
		toppings = []entity.Topping{}
	}

	return &entity.ToppingListResponse{
		Data:        toppings,
		Total:       total,
		PageSize:    limit,
		CurrentPage: page,
	}, nil
}

// UpdateTopping обновляет топпинг с тенантской проверкой
// Порядок работы с изображением такой же, как у товаров
func (s *ToppingService) UpdateTopping(ctx context.Context, id primitive.ObjectID, req *entity.UpdateToppingRequest, image []byte, auth entity.AuthContext) (*entity.Topping, error) {
	current, err := s.toppingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrToppingNotFound) {
			return nil, ErrToppingNotFound
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

		if err := s.storage.Delete(ctx, current.Image); err != nil {
			logger.Warn().Err(err).Str("image", current.Image).Msg("Failed to delete old image")
			metrics.OrphanedImages.Inc()
		}

		imageKey = newKey
	}

	updated := &entity.Topping{
		Name:     req.Name,
		Price:    req.Price,
		TenantID: req.TenantID,
		Image:    imageKey,
	}

	result, err := s.toppingRepo.Update(ctx, id, updated)
	if err != nil {
		if errors.Is(err, repository.ErrToppingNotFound) {
			return nil, ErrToppingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.publishToppingEvent(ctx, entity.EventToppingUpdated, result); err != nil {
		logger.Error().Err(err).Str("topping_id", result.ID.Hex()).Msg("Failed to publish topping event")
	}

	return result, nil
}

// publishToppingEvent отправляет событие о топпинге в Kafka
func (s *ToppingService) publishToppingEvent(ctx context.Context, eventType string, topping *entity.Topping) error {
	if !s.emitEvents {
		return nil
	}

	event := entity.ToppingEvent{
		EventType: eventType,
		ToppingID: topping.ID.Hex(),
		Price:     topping.Price,
		TenantID:  topping.TenantID,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if err := s.producer.PublishMessage(ctx, s.topic, event.ToppingID, eventData); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}
