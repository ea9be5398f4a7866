package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TucanHome/tucan-chat-api/models"
)

// fakeClassifyStore keeps tags and metrics in memory with the same
// conflict semantics as the real store.
type fakeClassifyStore struct {
	messages []models.Message
	tagged   map[primitive.ObjectID]bool
	metrics  map[string]int64
	listErr  error
}

func newFakeClassifyStore(messages ...models.Message) *fakeClassifyStore {
	return &fakeClassifyStore{
		messages: messages,
		tagged:   make(map[primitive.ObjectID]bool),
		metrics:  make(map[string]int64),
	}
}

func (f *fakeClassifyStore) UntaggedUserMessages(ctx context.Context, limit int) ([]models.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	untagged := []models.Message{}
	for _, m := range f.messages {
		if !f.tagged[m.ID] && len(untagged) < limit {
			untagged = append(untagged, m)
		}
	}
	return untagged, nil
}

func (f *fakeClassifyStore) InsertMessageTags(ctx context.Context, t *models.MessageTags) (bool, error) {
	if f.tagged[t.MessageID] {
		return false, nil
	}
	f.tagged[t.MessageID] = true
	return true, nil
}

func (f *fakeClassifyStore) IncrementDailyMetric(ctx context.Context, day, category, item string) error {
	f.metrics[day+"|"+category+"|"+item]++
	return nil
}

func userMessage(day, text string) models.Message {
	return models.Message{
		ID:   primitive.NewObjectID(),
		Who:  models.SenderUser,
		Text: text,
		Day:  day,
	}
}

func TestClassifyJobAggregatesSameDay(t *testing.T) {
	store := newFakeClassifyStore(
		userMessage("2025-03-10", "queria um pendente pra sala"),
		userMessage("2025-03-10", "uma luminária de gesso para a sala"),
	)
	job := NewClassifyJob(store, 500)

	tagged, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, tagged)
	assert.EqualValues(t, 2, store.metrics["2025-03-10|room|sala"])
	assert.EqualValues(t, 1, store.metrics["2025-03-10|product|pendente"])
	assert.EqualValues(t, 1, store.metrics["2025-03-10|product|luminária"])
}

func TestClassifyJobRerunDoesNotDoubleCount(t *testing.T) {
	store := newFakeClassifyStore(
		userMessage("2025-03-10", "queria um pendente pra sala"),
	)
	job := NewClassifyJob(store, 500)

	_, err := job.Run(context.Background())
	require.NoError(t, err)

	tagged, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, tagged)
	assert.EqualValues(t, 1, store.metrics["2025-03-10|room|sala"])
	assert.EqualValues(t, 1, store.metrics["2025-03-10|product|pendente"])
}

func TestClassifyJobSkipsMetricsWhenTagExists(t *testing.T) {
	m := userMessage("2025-03-11", "vaso terracota")
	store := newFakeClassifyStore(m)
	// Simulate a tag row written by an earlier run whose batch listing
	// still returned the message.
	store.tagged[m.ID] = true
	store.messages = []models.Message{m}

	job := NewClassifyJob(&alwaysListStore{store}, 500)

	tagged, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, tagged)
	assert.Empty(t, store.metrics)
}

// alwaysListStore returns every message regardless of tag state,
// exercising the insert-or-ignore gate on its own.
type alwaysListStore struct {
	*fakeClassifyStore
}

func (a *alwaysListStore) UntaggedUserMessages(ctx context.Context, limit int) ([]models.Message, error) {
	return a.messages, nil
}

func TestClassifyJobListError(t *testing.T) {
	store := newFakeClassifyStore()
	store.listErr = fmt.Errorf("connection reset")
	job := NewClassifyJob(store, 500)

	_, err := job.Run(context.Background())
	assert.Error(t, err)
}
