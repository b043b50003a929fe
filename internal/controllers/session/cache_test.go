package sessionController

import (
	"context"
	"fmt"
	"pillar2/config"
	"pillar2/internal/database"
	"pillar2/internal/generator"
	. "pillar2/internal/models"
	"pillar2/internal/repositories"
	"pillar2/internal/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository keeps sessions and cached summaries in maps. Writes made by Reset only
// become visible after duringReset returns, the way uncommitted rows behave.
type memoryRepository struct {
	mu          sync.Mutex
	sessions    map[string]Session
	records     map[string][]TestingRecord
	summaries   map[string]Summary
	duringReset func(sessionID string)
	nextID      int
}

var _ repositories.SessionRepository = (*memoryRepository)(nil)

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		sessions:  map[string]Session{},
		records:   map[string][]TestingRecord{},
		summaries: map[string]Summary{},
	}
}

func (r *memoryRepository) Create(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	r.sessions[session.ID] = *session
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &session, nil
}

func (r *memoryRepository) GetRecords(_ context.Context, sessionID string) ([]TestingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]TestingRecord{}, r.records[sessionID]...), nil
}

func (r *memoryRepository) GetRecordsPage(
	ctx context.Context,
	sessionID string,
	query RecordsQuery,
) ([]TestingRecord, error) {
	records, _ := r.GetRecords(ctx, sessionID)
	start := min(query.Offset, len(records))
	end := min(start+query.Limit, len(records))
	return records[start:end], nil
}

func (r *memoryRepository) CountRecords(ctx context.Context, sessionID string) (int64, error) {
	records, _ := r.GetRecords(ctx, sessionID)
	return int64(len(records)), nil
}

func (r *memoryRepository) AppendBatch(
	_ context.Context,
	sessionID string,
	runCount int,
	batch []TestingRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.RunCount = runCount
	r.sessions[sessionID] = session
	r.records[sessionID] = append(r.records[sessionID], batch...)
	delete(r.summaries, sessionID)
	return nil
}

func (r *memoryRepository) Reset(_ context.Context, sessionID string, startDate time.Time) error {
	r.mu.Lock()
	delete(r.summaries, sessionID)
	hook := r.duringReset
	r.mu.Unlock()

	if hook != nil {
		hook(sessionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.sessions[sessionID]
	session.RunCount = 0
	session.StartDate = startDate
	r.sessions[sessionID] = session
	delete(r.records, sessionID)
	return nil
}

func (r *memoryRepository) Touch(context.Context, string, time.Time) error {
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	delete(r.records, sessionID)
	delete(r.summaries, sessionID)
	return nil
}

func (r *memoryRepository) DeleteExpired(_ context.Context, before time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := []string{}
	for id, session := range r.sessions {
		if session.LastSeenAt.Before(before) {
			ids = append(ids, id)
			delete(r.sessions, id)
			delete(r.records, id)
			delete(r.summaries, id)
		}
	}
	return ids, nil
}

func (r *memoryRepository) GetSummary(_ context.Context, sessionID string) (*Summary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary, ok := r.summaries[sessionID]
	if !ok {
		return nil, false
	}
	return &summary, true
}

func (r *memoryRepository) SetSummary(_ context.Context, sessionID string, summary Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries[sessionID] = summary
	return nil
}

func (r *memoryRepository) InvalidateSummary(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.summaries, sessionID)
	return nil
}

func newCachedController(t *testing.T, repo *memoryRepository) *SessionController {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(
		repo,
		services.NewTransactionService(db),
		generator.New(generator.NewFakerSource(9)),
		&recordingWS{},
		func() time.Time { return fixedNow },
		time.Hour,
	)
}

func TestSummary_ConcurrentReadCannotRestorePreResetTotals(t *testing.T) {
	repo := newMemoryRepository()
	controller := newCachedController(t, repo)
	ctx := context.Background()

	view, err := controller.Start(ctx)
	require.NoError(t, err)
	for range 2 {
		_, err := controller.Run(ctx, view.ID)
		require.NoError(t, err)
	}

	before, err := controller.Summary(ctx, view.ID)
	require.NoError(t, err)
	require.NotZero(t, before.Total)

	concurrent := make(chan *Summary, 1)
	repo.duringReset = func(sessionID string) {
		go func() {
			summary, err := controller.Summary(ctx, sessionID)
			assert.NoError(t, err)
			concurrent <- summary
		}()
		time.Sleep(50 * time.Millisecond)
	}

	_, err = controller.Reset(ctx, view.ID)
	require.NoError(t, err)

	select {
	case summary := <-concurrent:
		assert.Zero(t, summary.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("concurrent summary did not finish")
	}

	after, err := controller.Summary(ctx, view.ID)
	require.NoError(t, err)
	assert.Zero(t, after.Total)
	assert.Zero(t, after.Positive)
	assert.Zero(t, after.Percentage)

	cached, found := repo.GetSummary(ctx, view.ID)
	require.True(t, found)
	assert.Zero(t, cached.Total)
}

func TestReset_WritesEmptySummaryToCache(t *testing.T) {
	repo := newMemoryRepository()
	controller := newCachedController(t, repo)
	ctx := context.Background()

	view, err := controller.Start(ctx)
	require.NoError(t, err)
	_, err = controller.Run(ctx, view.ID)
	require.NoError(t, err)

	_, err = controller.Reset(ctx, view.ID)
	require.NoError(t, err)

	cached, found := repo.GetSummary(ctx, view.ID)
	require.True(t, found)
	assert.Equal(t, Summary{ByDate: []DateCount{}}, *cached)
}

func TestSweepExpired_ReleasesSessionLocks(t *testing.T) {
	repo := newMemoryRepository()
	controller := newCachedController(t, repo)
	ctx := context.Background()

	view, err := controller.Start(ctx)
	require.NoError(t, err)
	_, err = controller.Run(ctx, view.ID)
	require.NoError(t, err)

	_, held := controller.locks.Load(view.ID)
	require.True(t, held)

	stored := repo.sessions[view.ID]
	stored.LastSeenAt = fixedNow.Add(-2 * time.Hour)
	repo.sessions[view.ID] = stored

	deleted, err := controller.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, held = controller.locks.Load(view.ID)
	assert.False(t, held)
}
