package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает новый репозиторий товаров
// Автоматически создает индексы по tenantId и categoryId для быстрой выборки
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}},
			Options: options.Index().SetName("tenantId_idx"),
		},
		{
			Keys:    bson.D{{Key: "categoryId", Value: 1}},
			Options: options.Index().SetName("categoryId_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Не прерываем работу - индексы могут уже существовать
		logger.Warn().Err(err).Msg("Failed to create product indexes")
	}

	return &productRepository{
		collection: collection,
	}
}

// Create создает новый товар в MongoDB
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	defer observeQuery("insert", "products")()

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		countQueryError("insert")
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	defer observeQuery("find_one", "products")()

	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		countQueryError("find_one")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// Update заменяет поля товара через findOneAndUpdate ($set)
// Возвращает документ после обновления (атомарная операция MongoDB)
func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, product *entity.Product) (*entity.Product, error) {
	defer observeQuery("find_one_and_update", "products")()

	product.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":               product.Name,
			"description":        product.Description,
			"priceConfiguration": product.PriceConfiguration,
			"attributes":         product.Attributes,
			"tenantId":           product.TenantID,
			"categoryId":         product.CategoryID,
			"image":              product.Image,
			"isPublish":          product.IsPublish,
			"updated_at":         product.UpdatedAt,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		countQueryError("find_one_and_update")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &updated, nil
}

// facetResult - результат $facet: общее количество + страница данных
type productFacetResult struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Data []entity.ProductWithCategory `bson:"data"`
}

// GetPaginated выполняет агрегацию списка товаров:
// $match по фильтрам и имени (регистронезависимо), $lookup категории
// с проекцией нужных полей, $unwind (inner join - товары с несуществующей
// категорией исключаются), $facet для total + страницы
func (r *productRepository) GetPaginated(ctx context.Context, searchText string, filters entity.ProductFilters, page, limit int) ([]entity.ProductWithCategory, int64, error) {
	defer observeQuery("aggregate", "products")()

	match := bson.M{
		"name": primitive.Regex{Pattern: searchText, Options: "i"},
	}
	if filters.TenantID != "" {
		match["tenantId"] = filters.TenantID
	}
	if filters.CategoryID != nil {
		match["categoryId"] = *filters.CategoryID
	}
	if filters.IsPublish != nil {
		match["isPublish"] = *filters.IsPublish
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "categoryId",
			"foreignField": "_id",
			"as":           "category",
			"pipeline": []bson.M{
				{"$project": bson.M{
					"_id":                1,
					"name":               1,
					"priceConfiguration": 1,
					"attributes":         1,
				}},
			},
		}}},
		// $unwind отбрасывает товары без существующей категории
		bson.D{{Key: "$unwind", Value: "$category"}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"metadata": []bson.M{{"$count": "total"}},
			"data": []bson.M{
				{"$skip": int64((page - 1) * limit)},
				{"$limit": int64(limit)},
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		countQueryError("aggregate")
		return nil, 0, fmt.Errorf("failed to aggregate products: %w", err)
	}
	defer cursor.Close(ctx)

	var results []productFacetResult
	if err := cursor.All(ctx, &results); err != nil {
		countQueryError("aggregate")
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	if len(results) == 0 {
		return nil, 0, nil
	}

	var total int64
	if len(results[0].Metadata) > 0 {
		total = results[0].Metadata[0].Total
	}

	return results[0].Data, total, nil
}
