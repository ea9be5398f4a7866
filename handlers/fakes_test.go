package handlers

import (
	"context"
	"sync"

	"github.com/TucanHome/tucan-chat-api/models"
)

// fakeStore implements the store slices the handlers need, with the
// real per-table conflict policies mirrored in memory.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]models.SessionContext
	names    map[string]string
	messages []models.Message
	leads    map[string]models.Lead

	insertMessageErr error
	updateNameErr    error
	upsertLeadErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[string]models.SessionContext),
		names:    make(map[string]string),
		leads:    make(map[string]models.Lead),
	}
}

func (f *fakeStore) EnsureSession(ctx context.Context, sc models.SessionContext) error {
	if !sc.Valid() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.sessions[sc.SessionID]; !exists {
		f.sessions[sc.SessionID] = sc
	}
	return nil
}

func (f *fakeStore) UpdateSessionName(ctx context.Context, sessionID, name string) error {
	if f.updateNameErr != nil {
		return f.updateNameErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[sessionID] = name
	return nil
}

func (f *fakeStore) InsertMessage(ctx context.Context, m *models.Message) error {
	if f.insertMessageErr != nil {
		return f.insertMessageErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) UpsertLead(ctx context.Context, sessionID, nome, whats string, optin bool) (*models.Lead, error) {
	if f.upsertLeadErr != nil {
		return nil, f.upsertLeadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lead := models.Lead{SessionID: sessionID, Nome: nome, Whats: whats, LGPDOptin: optin}
	f.leads[sessionID] = lead
	return &lead, nil
}

type fakeCompleter struct {
	output string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system string, turns []models.ChatTurn) (string, error) {
	return f.output, f.err
}

type fakeIntentResolver struct {
	intent models.ProductIntent
}

func (f *fakeIntentResolver) Resolve(ctx context.Context, text string) models.ProductIntent {
	return f.intent
}

type fakeSearcher struct {
	products []models.Product
	err      error
	gotTerm  string
	gotLimit int
}

func (f *fakeSearcher) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	f.gotTerm = term
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeSyncer struct {
	enabled bool
	synced  chan [2]string
	err     error
}

func (f *fakeSyncer) Enabled() bool { return f.enabled }

func (f *fakeSyncer) UpsertContact(ctx context.Context, nome, whats string) error {
	if f.synced != nil {
		f.synced <- [2]string{nome, whats}
	}
	return f.err
}
