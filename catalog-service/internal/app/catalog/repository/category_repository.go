package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{
		collection: db.Collection("categories"),
	}
}

// Create создает новую категорию в MongoDB
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	defer observeQuery("insert", "categories")()

	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		countQueryError("insert")
		return fmt.Errorf("failed to create category: %w", err)
	}

	// Устанавливаем ID из результата вставки
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}

	return nil
}

// GetByID получает категорию по ID
func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	defer observeQuery("find_one", "categories")()

	var category entity.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		countQueryError("find_one")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// GetAll получает все категории, отсортированные по дате создания
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	defer observeQuery("find", "categories")()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		countQueryError("find")
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		countQueryError("find")
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}
