package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TucanHome/tucan-chat-api/models"
)

// minSearchTermLength below which the search is a no-op.
const minSearchTermLength = 2

// Catalog searches the product inventory by free-text term.
// Absence of results is never an error; a disabled catalog or a term
// that is too short yields an empty list.
type Catalog struct {
	db           *mongo.Database
	enabled      bool
	defaultLimit int
}

// NewCatalog creates a catalog over the products collection.
func NewCatalog(db *mongo.Database, enabled bool, defaultLimit int) *Catalog {
	if defaultLimit <= 0 {
		defaultLimit = 6
	}
	return &Catalog{db: db, enabled: enabled, defaultLimit: defaultLimit}
}

// Search matches the term against product names and keywords,
// case-insensitively, returning at most limit products.
func (c *Catalog) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	if !c.enabled {
		return []models.Product{}, nil
	}

	term = strings.TrimSpace(term)
	if len([]rune(term)) < minSearchTermLength {
		return []models.Product{}, nil
	}

	if limit <= 0 || limit > 24 {
		limit = c.defaultLimit
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"keywords": pattern},
	}}

	cursor, err := c.db.Collection("products").Find(ctx, filter,
		options.Find().SetLimit(int64(limit)).SetSort(bson.M{"name": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	slog.Info("Catalog search completed",
		"term", term,
		"resultsFound", len(products),
	)

	return products, nil
}
