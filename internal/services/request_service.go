// Package services – RequestService
//
// This file implements RequestService, the application-level component that
// creates translation requests and reads them back for display. It validates
// the submitted text, normalizes the target language code, and records a
// best-effort source-language guess. The background poller consumes what
// this service produces; nothing here ever writes translated text.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/domain"
	"github.com/voxlate/go-translate-backend/internal/repo"
)

// RequestService creates and lists translation requests.
type RequestService struct {
	DB *gorm.DB

	// DefaultTargetLang is used when a submission omits target_language.
	DefaultTargetLang string
}

// NewRequestService constructs a RequestService with the configured fallback
// target language.
func NewRequestService(db *gorm.DB, defaultTargetLang string) *RequestService {
	return &RequestService{DB: db, DefaultTargetLang: defaultTargetLang}
}

// Create inserts a pending request. ownerID may be nil for anonymous
// submissions. Returns ErrValidation when the input text is empty.
func (s *RequestService) Create(ctx context.Context, inputText, targetLanguage string, ownerID *string) (*domain.TranslationRequest, error) {
	req, err := domain.NewTranslationRequest(inputText, s.normalizeTarget(targetLanguage), ownerID, time.Now())
	if errors.Is(err, domain.ErrEmptyInput) {
		return nil, ErrValidation
	}
	if err != nil {
		return nil, err
	}
	req.SourceLanguage = detectLanguage(req.InputText)
	return repo.CreateRequest(ctx, s.DB, req)
}

// SimulateInput inserts a canned pending record (test/demo aid).
func (s *RequestService) SimulateInput(ctx context.Context) (*domain.TranslationRequest, error) {
	return s.Create(ctx, "This is a simulated microphone input.", s.DefaultTargetLang, nil)
}

// ListAll returns every request, newest first.
func (s *RequestService) ListAll(ctx context.Context) ([]domain.TranslationRequest, error) {
	return repo.ListAll(ctx, s.DB)
}

// ListCompletedPage returns a page of completed requests for history
// display, newest first, plus the total count. ownerID nil lists all.
func (s *RequestService) ListCompletedPage(ctx context.Context, ownerID *string, page, pageSize int) ([]domain.TranslationRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountCompleted(ctx, s.DB, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.TranslationRequest{}, 0, nil
	}

	items, err := repo.ListCompletedPage(ctx, s.DB, ownerID, offset, pageSize)
	return items, total, err
}

// normalizeTarget canonicalizes a submitted language code ("FR" → "fr",
// "pt-br" → "pt-BR"), falling back to the configured default when the code
// is missing or unparseable.
func (s *RequestService) normalizeTarget(code string) string {
	if code == "" {
		return s.DefaultTargetLang
	}
	tag, err := language.Parse(code)
	if err != nil {
		return s.DefaultTargetLang
	}
	return tag.String()
}

// detectLanguage returns a best-effort ISO-639-1 code for text, or "" when
// detection is unreliable. Stored for display only; the provider does its
// own detection.
func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
