package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит все настройки приложения Catalog Service
// Включает конфигурацию для HTTP сервера, MongoDB, Redis, Kafka,
// объектного хранилища (S3) и JWT
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Storage StorageConfig
	JWT     JWTConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8082)
}

// MongoDBConfig - настройки подключения к MongoDB
// Используется для хранения категорий, товаров и топпингов
type MongoDBConfig struct {
	URI      string // Connection string в формате mongodb://host:port
	Database string // Имя базы данных
}

// RedisConfig - настройки подключения к Redis для кеширования
// Используется для кеширования списка категорий
type RedisConfig struct {
	Host     string // Хост Redis
	Port     string // Порт Redis
	Password string // Пароль Redis (опционально)
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий каталога
// События отправляются при создании/обновлении товаров и топпингов
type KafkaConfig struct {
	Brokers      []string // Список брокеров Kafka (формат: host:port)
	ProductTopic string   // Топик для событий PRODUCT_CREATED, PRODUCT_UPDATED
	ToppingTopic string   // Топик для событий TOPPING_CREATED, TOPPING_UPDATED
	EmitEvents   bool     // Отправлять ли события вообще (единый флаг для create и update)
}

// StorageConfig - настройки S3-совместимого объектного хранилища
// Используется для хранения изображений товаров и топпингов
type StorageConfig struct {
	Endpoint  string // Адрес хранилища (host:port)
	AccessKey string // Access key
	SecretKey string // Secret key
	Bucket    string // Имя бакета для изображений
	UseSSL    bool   // Использовать ли HTTPS
}

// JWTConfig - настройки для проверки JWT токенов
// Токены выдаёт Auth Service, секрет должен совпадать
type JWTConfig struct {
	Secret string // Секретный ключ для проверки подписи
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	emitEvents, err := strconv.ParseBool(getEnv("KAFKA_EMIT_EVENTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_EMIT_EVENTS value: %w", err)
	}

	useSSL, err := strconv.ParseBool(getEnv("S3_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_USE_SSL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "catalog"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ProductTopic: getEnv("KAFKA_PRODUCT_TOPIC", "product_events"),
			ToppingTopic: getEnv("KAFKA_TOPPING_TOPIC", "topping_events"),
			EmitEvents:   emitEvents,
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("S3_BUCKET", "catalog-images"),
			UseSSL:    useSSL,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
