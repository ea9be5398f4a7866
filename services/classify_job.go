package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TucanHome/tucan-chat-api/classifier"
	"github.com/TucanHome/tucan-chat-api/models"
)

// ClassifyStore is the persistence slice the classification job needs.
type ClassifyStore interface {
	UntaggedUserMessages(ctx context.Context, limit int) ([]models.Message, error)
	InsertMessageTags(ctx context.Context, t *models.MessageTags) (bool, error)
	IncrementDailyMetric(ctx context.Context, day, category, item string) error
}

// ClassifyJob tags untagged user messages and feeds the daily metrics.
// Metrics for a message are incremented only when its tag row was newly
// inserted, so reprocessing an already-tagged message never counts it
// twice.
type ClassifyJob struct {
	store     ClassifyStore
	batchSize int
}

// NewClassifyJob creates a job processing at most batchSize messages
// per run.
func NewClassifyJob(store ClassifyStore, batchSize int) *ClassifyJob {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ClassifyJob{store: store, batchSize: batchSize}
}

// Run processes one batch sequentially, oldest message first.
// It returns how many messages received a new tag row.
func (j *ClassifyJob) Run(ctx context.Context) (int, error) {
	messages, err := j.store.UntaggedUserMessages(ctx, j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list untagged messages: %w", err)
	}

	tagged := 0
	for _, m := range messages {
		tags := classifier.Classify(m.Text)

		inserted, err := j.store.InsertMessageTags(ctx, &models.MessageTags{
			MessageID: m.ID,
			Room:      tags.Room,
			Product:   tags.Product,
			Style:     tags.Style,
			Color:     tags.Color,
			Intent:    tags.Intent,
			HasDoubt:  tags.HasDoubt,
		})
		if err != nil {
			slog.Error("Failed to insert message tags",
				"error", err,
				"messageID", m.ID.Hex(),
			)
			continue
		}
		if !inserted {
			// Tag row already existed: metrics were counted before.
			continue
		}

		for _, label := range tags.Labels() {
			if err := j.store.IncrementDailyMetric(ctx, m.Day, label.Category, label.Item); err != nil {
				slog.Error("Failed to increment daily metric",
					"error", err,
					"day", m.Day,
					"category", label.Category,
					"item", label.Item,
				)
			}
		}
		tagged++
	}

	slog.Info("Classification batch completed",
		"scanned", len(messages),
		"tagged", tagged,
	)

	return tagged, nil
}

// Start runs the job on a fixed interval until ctx is cancelled.
func (j *ClassifyJob) Start(ctx context.Context, interval time.Duration) {
	slog.Info("Starting classification scheduler", "interval", interval.String())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				if _, err := j.Run(runCtx); err != nil {
					slog.Error("Scheduled classification run failed", "error", err)
				}
				cancel()

			case <-ctx.Done():
				slog.Info("Stopping classification scheduler")
				return
			}
		}
	}()
}
