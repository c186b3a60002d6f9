package util

import (
	"context"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
)

// FileStorage интерфейс объектного хранилища изображений
// ObjectURI - чистая функция: ключ -> публичный URL, без I/O
type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	ObjectURI(key string) string
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, topic string, key string, value []byte) error
	Close() error
}

// CategoryCache интерфейс для кеширования списка категорий
// GetCategories возвращает (nil, nil) при отсутствии записи;
// закешированный пустой список приходит как пустой не-nil срез
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	Close() error
}
