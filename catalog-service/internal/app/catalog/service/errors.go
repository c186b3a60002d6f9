package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
// Handlers транслируют их в HTTP статусы (404, 403, 400, 500)
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrToppingNotFound  = errors.New("topping not found")
	ErrForbidden        = errors.New("not allowed to access this resource")
	ErrTenantIDRequired = errors.New("tenant id is required")

	// Ошибки коллабораторов, оборачиваются через %w
	ErrStorage     = errors.New("object storage operation failed")
	ErrPersistence = errors.New("document store operation failed")
	ErrPublish     = errors.New("event publish failed")
)

// Дефолты пагинации
// У топпингов намеренно маленькая страница - так сложилось исторически
// и клиенты на это завязаны
const (
	defaultPage         = 1
	defaultProductLimit = 10
	defaultToppingLimit = 3
)

// normalizePagination приводит page/limit к валидным значениям
// Отсутствующие и некорректные значения заменяются дефолтами
// Верхняя граница limit сознательно не задана (поведение сохранено как есть)
func normalizePagination(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
