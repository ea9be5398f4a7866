package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TucanHome/tucan-chat-api/models"
)

// IncrementDailyMetric adds 1 to the counter for (day, category, item),
// creating the row when absent. Counters only ever grow; lost updates
// are ruled out by the atomic increment, double counting by the
// tag-row gate upstream.
func (s *Store) IncrementDailyMetric(ctx context.Context, day, category, item string) error {
	filter := bson.M{"date": day, "category": category, "item": item}
	update := bson.M{"$inc": bson.M{"count": 1}}

	opts := options.Update().SetUpsert(true)
	_, err := s.db.Collection("metrics_daily").UpdateOne(ctx, filter, update, opts)
	return err
}

// MetricsRange returns the daily counters between from and to
// (inclusive, YYYY-MM-DD); empty bounds are open.
func (s *Store) MetricsRange(ctx context.Context, from, to string) ([]models.DailyMetric, error) {
	filter := bson.M{}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cursor, err := s.db.Collection("metrics_daily").Find(ctx, filter,
		options.Find().SetSort(bson.D{
			{Key: "date", Value: 1},
			{Key: "category", Value: 1},
			{Key: "item", Value: 1},
		}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	metrics := []models.DailyMetric{}
	if err := cursor.All(ctx, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}
