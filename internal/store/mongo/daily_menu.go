package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMenuNotConfigured = fmt.Errorf("daily menu not configured")

type DailyMenuRepository struct {
	collection *mongo.Collection
}

func NewDailyMenuRepository(db *mongo.Database) *DailyMenuRepository {
	return &DailyMenuRepository{
		collection: db.Collection("daily_menu_configs"),
	}
}

func (r *DailyMenuRepository) Upsert(ctx context.Context, config *domain.DailyMenuConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if config.ID.IsZero() {
		config.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}
	config.UpdatedAt = now

	filter := bson.M{"menu_date": config.MenuDate}
	update := bson.M{"$set": config}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert daily menu config: %w", err)
	}

	return nil
}

func (r *DailyMenuRepository) GetByDate(ctx context.Context, menuDate string) (*domain.DailyMenuConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var config domain.DailyMenuConfig
	err := r.collection.FindOne(ctx, bson.M{"menu_date": menuDate}).Decode(&config)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMenuNotConfigured
		}
		return nil, fmt.Errorf("failed to get daily menu config: %w", err)
	}

	return &config, nil
}
