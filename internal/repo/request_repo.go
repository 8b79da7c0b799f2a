// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// TranslationRequest model, including the work-queue contract used by the
// poller: find pending, claim, mark translated, release.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/domain"
)

// CreateRequest inserts a pending request and assigns its id.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.TranslationRequest) (*domain.TranslationRequest, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if r.Status == "" {
		r.Status = domain.StatusPending
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRequest fetches a request by id, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id string) (*domain.TranslationRequest, error) {
	var r domain.TranslationRequest
	err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindPending returns every record matching the pending predicate: source
// text present, translated text absent, not currently claimed. Ordering is
// insertion order; the poller does not promise FIFO fairness.
func FindPending(ctx context.Context, db *gorm.DB) ([]domain.TranslationRequest, error) {
	var out []domain.TranslationRequest
	err := db.WithContext(ctx).
		Where("status = ? AND input_text <> '' AND translated_text IS NULL", domain.StatusPending).
		Find(&out).Error
	return out, err
}

// ClaimPending atomically transitions one record from pending to processing,
// stamping it with the claiming instance's token. Returns false when the row
// was already claimed, completed, or does not exist: the single-row
// conditional UPDATE is what makes concurrent pollers safe.
func ClaimPending(ctx context.Context, db *gorm.DB, id, token string, now time.Time) (bool, error) {
	now = now.UTC()
	res := db.WithContext(ctx).
		Model(&domain.TranslationRequest{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]any{
			"status":     domain.StatusProcessing,
			"claimed_by": token,
			"claimed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseClaim returns a processing record to pending, but only for the
// instance that claimed it. Used after a provider failure so the record
// becomes eligible again on the next cycle.
func ReleaseClaim(ctx context.Context, db *gorm.DB, id, token string) error {
	res := db.WithContext(ctx).
		Model(&domain.TranslationRequest{}).
		Where("id = ? AND status = ? AND claimed_by = ?", id, domain.StatusProcessing, token).
		Updates(map[string]any{
			"status":     domain.StatusPending,
			"claimed_by": nil,
			"claimed_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReclaimExpired re-opens processing records whose claim is older than the
// lease. Covers pollers that crashed mid-record. Returns the number of rows
// re-opened.
func ReclaimExpired(ctx context.Context, db *gorm.DB, lease time.Duration, now time.Time) (int64, error) {
	cutoff := now.UTC().Add(-lease)
	res := db.WithContext(ctx).
		Model(&domain.TranslationRequest{}).
		Where("status = ? AND claimed_at < ?", domain.StatusProcessing, cutoff).
		Updates(map[string]any{
			"status":     domain.StatusPending,
			"claimed_by": nil,
			"claimed_at": nil,
		})
	return res.RowsAffected, res.Error
}

// MarkTranslated writes the translation result and completion timestamp,
// scoped to the single record claimed by token. Every other field is left
// untouched. Returns ErrNotFound when the row is missing or claimed by a
// different instance.
func MarkTranslated(ctx context.Context, db *gorm.DB, id, token, translated, translatorName string, at time.Time) error {
	at = at.UTC()
	res := db.WithContext(ctx).
		Model(&domain.TranslationRequest{}).
		Where("id = ? AND status = ? AND claimed_by = ?", id, domain.StatusProcessing, token).
		Updates(map[string]any{
			"status":               domain.StatusDone,
			"translated_text":      translated,
			"translated_timestamp": at,
			"translator_name":      translatorName,
			"claimed_by":           nil,
			"claimed_at":           nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every request ordered by submission time descending.
// Feeds the /api/sensor_data listing.
func ListAll(ctx context.Context, db *gorm.DB) ([]domain.TranslationRequest, error) {
	var out []domain.TranslationRequest
	err := db.WithContext(ctx).Order("timestamp DESC, id DESC").Find(&out).Error
	return out, err
}

// CountCompleted returns the number of completed requests for pagination.
// ownerID nil counts anonymous and owned records alike.
func CountCompleted(ctx context.Context, db *gorm.DB, ownerID *string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.TranslationRequest{}).Where("status = ?", domain.StatusDone)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	err := q.Count(&total).Error
	return total, err
}

// ListCompletedPage returns a page of completed requests ordered by
// submission time descending (history display).
func ListCompletedPage(ctx context.Context, db *gorm.DB, ownerID *string, offset, limit int) ([]domain.TranslationRequest, error) {
	var out []domain.TranslationRequest
	q := db.WithContext(ctx).
		Where("status = ?", domain.StatusDone).
		Order("timestamp DESC, id DESC").
		Offset(offset).
		Limit(limit)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	err := q.Find(&out).Error
	return out, err
}
