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

type toppingRepository struct {
	collection *mongo.Collection
}

// NewToppingRepository создает новый репозиторий топпингов
// Автоматически создает индекс по tenantId - списки всегда тенантские
func NewToppingRepository(db *mongo.Database) ToppingRepository {
	collection := db.Collection("toppings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}},
		Options: options.Index().SetName("tenantId_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create topping index")
	}

	return &toppingRepository{
		collection: collection,
	}
}

// Create создает новый топпинг в MongoDB
func (r *toppingRepository) Create(ctx context.Context, topping *entity.Topping) error {
	defer observeQuery("insert", "toppings")()

	topping.CreatedAt = time.Now()
	topping.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, topping)
	if err != nil {
		countQueryError("insert")
		return fmt.Errorf("failed to create topping: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		topping.ID = oid
	}

	return nil
}

// GetByID получает топпинг по ID
func (r *toppingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Topping, error) {
	defer observeQuery("find_one", "toppings")()

	var topping entity.Topping
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&topping)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrToppingNotFound
		}
		countQueryError("find_one")
		return nil, fmt.Errorf("failed to get topping: %w", err)
	}

	return &topping, nil
}

// Update заменяет поля топпинга через findOneAndUpdate ($set)
func (r *toppingRepository) Update(ctx context.Context, id primitive.ObjectID, topping *entity.Topping) (*entity.Topping, error) {
	defer observeQuery("find_one_and_update", "toppings")()

	topping.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":       topping.Name,
			"price":      topping.Price,
			"tenantId":   topping.TenantID,
			"image":      topping.Image,
			"updated_at": topping.UpdatedAt,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Topping
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrToppingNotFound
		}
		countQueryError("find_one_and_update")
		return nil, fmt.Errorf("failed to update topping: %w", err)
	}

	return &updated, nil
}

type toppingFacetResult struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Data []entity.Topping `bson:"data"`
}

// GetPaginated получает страницу топпингов тенанта
// Точное совпадение tenantId, без текстового поиска
func (r *toppingRepository) GetPaginated(ctx context.Context, tenantID string, page, limit int) ([]entity.Topping, int64, error) {
	defer observeQuery("aggregate", "toppings")()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"tenantId": tenantID}}},
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
		return nil, 0, fmt.Errorf("failed to aggregate toppings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []toppingFacetResult
	if err := cursor.All(ctx, &results); err != nil {
		countQueryError("aggregate")
		return nil, 0, fmt.Errorf("failed to decode toppings: %w", err)
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
