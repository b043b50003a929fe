package repositories

import (
	"context"
	"errors"
	"pillar2/internal/database"
	"pillar2/internal/logger"
	. "pillar2/internal/models"
	"pillar2/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	SUMMARY_CACHE_EXPIRY  = 1 * time.Hour
	SUMMARY_CACHE_PATTERN = "summary:%s"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	GetRecords(ctx context.Context, sessionID string) ([]TestingRecord, error)
	GetRecordsPage(ctx context.Context, sessionID string, query RecordsQuery) ([]TestingRecord, error)
	CountRecords(ctx context.Context, sessionID string) (int64, error)
	AppendBatch(ctx context.Context, sessionID string, runCount int, batch []TestingRecord) error
	Reset(ctx context.Context, sessionID string, startDate time.Time) error
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, before time.Time) ([]string, error)
	GetSummary(ctx context.Context, sessionID string) (*Summary, bool)
	SetSummary(ctx context.Context, sessionID string, summary Summary) error
	InvalidateSummary(ctx context.Context, sessionID string) error
}

type sessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSession(db database.DB) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: logger.New("sessionRepository"),
	}
}

func (r *sessionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *sessionRepository) Create(ctx context.Context, session *Session) error {
	log := r.log.Function("Create")

	if session.LastSeenAt.IsZero() {
		session.LastSeenAt = time.Now().UTC()
	}

	if err := r.getDB(ctx).Create(session).Error; err != nil {
		return log.Err("failed to create session", err)
	}

	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	log := r.log.Function("GetByID")

	if id == "" {
		return nil, ErrSessionNotFound
	}

	var session Session
	err := r.getDB(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, log.Err("failed to get session by id", err, "id", id)
	}

	return &session, nil
}

// GetRecords returns every record of the session in generation order.
func (r *sessionRepository) GetRecords(ctx context.Context, sessionID string) ([]TestingRecord, error) {
	log := r.log.Function("GetRecords")

	records := []TestingRecord{}
	if err := r.getDB(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get session records", err, "sessionID", sessionID)
	}

	return records, nil
}

func (r *sessionRepository) GetRecordsPage(
	ctx context.Context,
	sessionID string,
	query RecordsQuery,
) ([]TestingRecord, error) {
	log := r.log.Function("GetRecordsPage")

	records := []TestingRecord{}
	if err := r.getDB(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&records).Error; err != nil {
		return nil, log.Err(
			"failed to get session records page",
			err,
			"sessionID", sessionID,
			"limit", query.Limit,
			"offset", query.Offset,
		)
	}

	return records, nil
}

func (r *sessionRepository) CountRecords(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	if err := r.getDB(ctx).
		Model(&TestingRecord{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountRecords").
			Err("failed to count session records", err, "sessionID", sessionID)
	}

	return count, nil
}

// AppendBatch stores one run's records and the session's new run count.
func (r *sessionRepository) AppendBatch(
	ctx context.Context,
	sessionID string,
	runCount int,
	batch []TestingRecord,
) error {
	log := r.log.Function("AppendBatch")

	db := r.getDB(ctx)

	if len(batch) > 0 {
		for i := range batch {
			batch[i].SessionID = sessionID
		}
		if err := db.CreateInBatches(batch, 100).Error; err != nil {
			return log.Err("failed to insert records", err, "sessionID", sessionID, "count", len(batch))
		}
	}

	result := db.Model(&Session{}).
		Where("id = ?", sessionID).
		Update("run_count", runCount)
	if result.Error != nil {
		return log.Err("failed to update run count", result.Error, "sessionID", sessionID)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	if err := r.InvalidateSummary(ctx, sessionID); err != nil {
		log.Warn("failed to invalidate summary cache", "sessionID", sessionID, "error", err)
	}

	return nil
}

func (r *sessionRepository) Reset(ctx context.Context, sessionID string, startDate time.Time) error {
	log := r.log.Function("Reset")

	db := r.getDB(ctx)

	if err := db.Where("session_id = ?", sessionID).Delete(&TestingRecord{}).Error; err != nil {
		return log.Err("failed to delete session records", err, "sessionID", sessionID)
	}

	result := db.Model(&Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"run_count":  0,
			"start_date": startDate,
		})
	if result.Error != nil {
		return log.Err("failed to reset session", result.Error, "sessionID", sessionID)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	if err := r.InvalidateSummary(ctx, sessionID); err != nil {
		log.Warn("failed to invalidate summary cache", "sessionID", sessionID, "error", err)
	}

	return nil
}

func (r *sessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	if err := r.getDB(ctx).
		Model(&Session{}).
		Where("id = ?", sessionID).
		Update("last_seen_at", at.UTC()).Error; err != nil {
		return r.log.Function("Touch").Err("failed to touch session", err, "sessionID", sessionID)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	log := r.log.Function("Delete")

	db := r.getDB(ctx)

	if err := db.Where("session_id = ?", sessionID).Delete(&TestingRecord{}).Error; err != nil {
		return log.Err("failed to delete session records", err, "sessionID", sessionID)
	}

	if err := db.Unscoped().Delete(&Session{}, "id = ?", sessionID).Error; err != nil {
		return log.Err("failed to delete session", err, "sessionID", sessionID)
	}

	if err := r.InvalidateSummary(ctx, sessionID); err != nil {
		log.Warn("failed to invalidate summary cache", "sessionID", sessionID, "error", err)
	}

	return nil
}

// DeleteExpired removes sessions last seen before the cutoff together with their records and
// returns the ids it removed.
func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) ([]string, error) {
	log := r.log.Function("DeleteExpired")

	db := r.getDB(ctx)

	ids := []string{}
	if err := db.Unscoped().
		Model(&Session{}).
		Where("last_seen_at < ?", before.UTC()).
		Pluck("id", &ids).Error; err != nil {
		return nil, log.Err("failed to find expired sessions", err, "before", before)
	}

	if len(ids) == 0 {
		return ids, nil
	}

	if err := db.Where("session_id IN ?", ids).Delete(&TestingRecord{}).Error; err != nil {
		return nil, log.Err("failed to delete expired records", err, "sessions", len(ids))
	}

	if err := db.Unscoped().Where("id IN ?", ids).Delete(&Session{}).Error; err != nil {
		return nil, log.Err("failed to delete expired sessions", err, "sessions", len(ids))
	}

	for _, id := range ids {
		if err := r.InvalidateSummary(ctx, id); err != nil {
			log.Warn("failed to invalidate summary cache", "sessionID", id, "error", err)
		}
	}

	return ids, nil
}

func (r *sessionRepository) GetSummary(ctx context.Context, sessionID string) (*Summary, bool) {
	var summary Summary
	found, err := database.NewCacheBuilder(r.db.Cache.Summary, sessionID).
		WithHashPattern(SUMMARY_CACHE_PATTERN).
		WithContext(ctx).
		Get(&summary)
	if err != nil {
		r.log.Function("GetSummary").
			Warn("failed to get summary from cache", "sessionID", sessionID, "error", err)
		return nil, false
	}

	if !found {
		return nil, false
	}

	return &summary, true
}

func (r *sessionRepository) SetSummary(ctx context.Context, sessionID string, summary Summary) error {
	if err := database.NewCacheBuilder(r.db.Cache.Summary, sessionID).
		WithHashPattern(SUMMARY_CACHE_PATTERN).
		WithStruct(summary).
		WithTTL(SUMMARY_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("SetSummary").
			Err("failed to add summary to cache", err, "sessionID", sessionID)
	}

	return nil
}

func (r *sessionRepository) InvalidateSummary(ctx context.Context, sessionID string) error {
	if err := database.NewCacheBuilder(r.db.Cache.Summary, sessionID).
		WithHashPattern(SUMMARY_CACHE_PATTERN).
		WithContext(ctx).
		Delete(); err != nil {
		return r.log.Function("InvalidateSummary").
			Err("failed to remove summary from cache", err, "sessionID", sessionID)
	}

	return nil
}
