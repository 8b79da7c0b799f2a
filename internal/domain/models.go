// Package domain defines the persistence models for users and translation
// requests. These types are mapped with GORM and form the core data layer
// shared by the web submission side and the background poller.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Request lifecycle states. A request is created pending, may be claimed by a
// poller instance (processing) and ends up done once a translation has been
// written. Done requests are never reprocessed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDone       = "done"
)

// ErrEmptyInput is returned by NewTranslationRequest when the source text is
// missing. A request without input text can never satisfy the pending
// predicate and must not be persisted.
var ErrEmptyInput = errors.New("input text is required")

// User is an account record. Users are created by registration, read by
// login, and never touched by the poller.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identity.
//   - PasswordHash: bcrypt hash, never the plain password.
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(64);not null"`
	LastName     string    `json:"last_name"  gorm:"type:varchar(64);not null"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// TranslationRequest is the central entity: one unit of translation work.
//
// Lifecycle: inserted pending by the web layer, claimed and completed exactly
// once by the poller, never deleted. The optional fields (OwnerID,
// TranslatorName, TranslatedText, TranslatedTimestamp) stay NULL until the
// corresponding lifecycle step has happened.
//
// Claim bookkeeping (ClaimedBy/ClaimedAt) exists so that two concurrent
// poller instances cannot process the same record: a claim is an atomic
// pending→processing transition keyed by the record id.
type TranslationRequest struct {
	ID                  string     `json:"id"              gorm:"type:char(36);primaryKey"`
	InputText           string     `json:"input_text"      gorm:"type:text;not null"`
	TargetLanguage      string     `json:"target_language" gorm:"type:varchar(16);not null"`
	SourceLanguage      string     `json:"source_language,omitempty"      gorm:"type:varchar(16)"`
	OwnerID             *string    `json:"owner_id,omitempty"             gorm:"type:char(36);index:idx_requests_owner"`
	TranslatorName      *string    `json:"translator_name,omitempty"      gorm:"type:varchar(64)"`
	Status              string     `json:"status"          gorm:"type:varchar(16);not null;default:'pending';index:idx_requests_status;check:status IN ('pending','processing','done')"`
	Timestamp           time.Time  `json:"timestamp"       gorm:"not null;index:idx_requests_ts"`
	TranslatedText      *string    `json:"translated_text,omitempty"`
	TranslatedTimestamp *time.Time `json:"translated_timestamp,omitempty"`

	ClaimedBy *string    `json:"-" gorm:"type:char(36)"`
	ClaimedAt *time.Time `json:"-"`
}

// TableName returns the database table name for TranslationRequest.
func (TranslationRequest) TableName() string { return "translation_requests" }

// NewTranslationRequest builds a pending request, enforcing the invariant
// that pending records always carry source text. The id is assigned by the
// repository on insert.
func NewTranslationRequest(inputText, targetLanguage string, ownerID *string, now time.Time) (*TranslationRequest, error) {
	inputText = strings.TrimSpace(inputText)
	if inputText == "" {
		return nil, ErrEmptyInput
	}
	return &TranslationRequest{
		InputText:      inputText,
		TargetLanguage: targetLanguage,
		OwnerID:        ownerID,
		Status:         StatusPending,
		Timestamp:      now.UTC(),
	}, nil
}

// Pending reports whether the record still matches the work predicate:
// source text present, translated text absent.
func (r *TranslationRequest) Pending() bool {
	return r.InputText != "" && r.TranslatedText == nil && r.Status != StatusDone
}

// Done reports whether the record has been translated.
func (r *TranslationRequest) Done() bool {
	return r.TranslatedText != nil && r.Status == StatusDone
}
