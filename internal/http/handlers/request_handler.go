// Translation request HTTP handlers.
//
// This file exposes the submission and read endpoints:
//   - POST /submit_text      (insert a pending translation request)
//   - GET  /simulate_input   (insert a canned pending record)
//   - GET  /api/sensor_data  (dump all requests, newest first)
//   - GET  /api/history      (paginated completed requests for the session user)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/domain"
	"github.com/voxlate/go-translate-backend/internal/http/middleware"
	"github.com/voxlate/go-translate-backend/internal/repo"
	"github.com/voxlate/go-translate-backend/internal/services"
	"github.com/voxlate/go-translate-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RequestService defines the translation-request operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RequestService interface {
	// Create inserts a pending request; ownerID may be nil (anonymous).
	Create(ctx context.Context, inputText, targetLanguage string, ownerID *string) (*domain.TranslationRequest, error)
	// SimulateInput inserts a canned pending record (demo aid).
	SimulateInput(ctx context.Context) (*domain.TranslationRequest, error)
	// ListAll returns every request, newest first.
	ListAll(ctx context.Context) ([]domain.TranslationRequest, error)
	// ListCompletedPage returns a page of completed requests and the total.
	ListCompletedPage(ctx context.Context, ownerID *string, page, pageSize int) ([]domain.TranslationRequest, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for accounts and translation requests.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic; DB is used only for idempotency bookkeeping.
type Handlers struct {
	authSvc AuthService
	reqSvc  RequestService

	db      *gorm.DB
	idemTTL time.Duration

	templates bool // true when HTML templates were loaded on the engine
}

// New constructs a Handlers instance bound to the given services. db and
// idemTTL back the Idempotency-Key replay support on POST /submit_text.
// templatesLoaded tells the page handlers whether the engine carries HTML
// templates; tests run without them.
func New(authSvc AuthService, reqSvc RequestService, db *gorm.DB, idemTTL time.Duration, templatesLoaded bool) *Handlers {
	return &Handlers{authSvc: authSvc, reqSvc: reqSvc, db: db, idemTTL: idemTTL, templates: templatesLoaded}
}

// ownerID returns the session user id as a nullable owner reference.
func ownerID(c *gin.Context) *string {
	if uid, ok := middleware.SessionUserID(c); ok {
		return &uid
	}
	return nil
}

// idemUserID is the identity idempotency records are keyed under; anonymous
// requests share one bucket, matching the middleware lookup.
func idemUserID(c *gin.Context) string {
	if uid, ok := middleware.SessionUserID(c); ok {
		return uid
	}
	return "anonymous"
}

//
// DTOs
//

// SubmitTextRequest is the JSON payload for submitting text to translate.
type SubmitTextRequest struct {
	InputText      string `json:"input_text"`
	TargetLanguage string `json:"target_language"`
}

// SubmitTextResponse acknowledges a stored submission.
type SubmitTextResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SensorDataRecord is the wire shape of one translation request in the
// /api/sensor_data dump. Identifiers and timestamps are plain strings.
type SensorDataRecord struct {
	ID                  string  `json:"_id"`
	InputText           string  `json:"input_text"`
	TargetLanguage      string  `json:"target_language"`
	SourceLanguage      string  `json:"source_language,omitempty"`
	Status              string  `json:"status"`
	Timestamp           string  `json:"timestamp"`
	TranslatedText      *string `json:"translated_text,omitempty"`
	TranslatedTimestamp string  `json:"translated_timestamp,omitempty"`
	TranslatorName      *string `json:"translator_name,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// HistoryResponse wraps a page of completed requests.
type HistoryResponse struct {
	Requests   []SensorDataRecord `json:"requests"`
	Pagination Pagination         `json:"pagination"`
}

// toSensorRecord flattens a request for JSON transport.
func toSensorRecord(r domain.TranslationRequest) SensorDataRecord {
	rec := SensorDataRecord{
		ID:             r.ID,
		InputText:      r.InputText,
		TargetLanguage: r.TargetLanguage,
		SourceLanguage: r.SourceLanguage,
		Status:         r.Status,
		Timestamp:      r.Timestamp.UTC().Format(time.RFC3339),
		TranslatedText: r.TranslatedText,
		TranslatorName: r.TranslatorName,
	}
	if r.TranslatedTimestamp != nil {
		rec.TranslatedTimestamp = r.TranslatedTimestamp.UTC().Format(time.RFC3339)
	}
	return rec
}

//
// Handlers
//

// SubmitText handles POST /submit_text. An empty or missing input_text is a
// 400; success stores a pending request and returns its id. When the client
// sends an Idempotency-Key that matches a previous completed submission, the
// original record is returned instead of inserting a duplicate.
func (h *Handlers) SubmitText(c *gin.Context) {
	var req SubmitTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "Input text is required")
		return
	}

	ctx := c.Request.Context()
	key, hasKey := middleware.GetIdempotencyKey(c)

	if hasKey && middleware.IsReplay(c) {
		if rec, err := repo.GetIdempotency(ctx, h.db, idemUserID(c), key, time.Now().UTC()); err == nil {
			ok(c, rec.Status, SubmitTextResponse{Message: "Text submitted successfully", ID: rec.RequestID})
			return
		}
		// Lookup raced the TTL; fall through and process normally.
	}

	created, err := h.reqSvc.Create(ctx, req.InputText, req.TargetLanguage, ownerID(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			fail(c, http.StatusBadRequest, ErrCodeValidation, "Input text is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		return
	}

	if hasKey {
		// Best effort: a lost race here only costs one duplicate insert.
		if _, err := repo.CreateIdempotency(ctx, h.db, idemUserID(c), key, created.ID, http.StatusOK, h.idemTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	ok(c, http.StatusOK, SubmitTextResponse{Message: "Text submitted successfully", ID: created.ID})
}

// SimulateInput handles GET /simulate_input: inserts a canned pending record
// so the pipeline can be exercised without a client.
func (h *Handlers) SimulateInput(c *gin.Context) {
	created, err := h.reqSvc.SimulateInput(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Test document inserted", "id": created.ID})
}

// SensorData handles GET /api/sensor_data: returns every stored request as a
// JSON array, newest first, with string ids and timestamps.
func (h *Handlers) SensorData(c *gin.Context) {
	items, err := h.reqSvc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	out := make([]SensorDataRecord, 0, len(items))
	for _, r := range items {
		out = append(out, toSensorRecord(r))
	}
	ok(c, http.StatusOK, out)
}

// History handles GET /api/history: a paginated view of the session user's
// completed translations, newest first.
func (h *Handlers) History(c *gin.Context) {
	page := utils.AtoiDefault(c.Query("page"), 1)
	pageSize := utils.AtoiDefault(c.Query("page_size"), 20)
	page, pageSize = utils.ClampPage(page, pageSize, 100)

	items, total, err := h.reqSvc.ListCompletedPage(c.Request.Context(), ownerID(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	out := make([]SensorDataRecord, 0, len(items))
	for _, r := range items {
		out = append(out, toSensorRecord(r))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, HistoryResponse{
		Requests: out,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
