// Package poller implements the background work loop that converts pending
// translation requests into completed ones.
//
// The loop is timer-driven and stateless: every cycle re-derives its work set
// by querying the store, so a poller can be restarted at any time. Safety
// under concurrent instances comes from the claim step — an atomic
// pending→processing transition on a single row — rather than from any
// process-level lock. A record whose provider call fails is released back to
// pending and becomes eligible again on the next cycle; a record completed in
// cycle N no longer matches the pending predicate in cycle N+1.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/repo"
	"github.com/voxlate/go-translate-backend/internal/translate"
)

var (
	cyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poller_cycles_total",
		Help: "Total number of completed poll cycles.",
	})
	recordsTranslated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poller_records_translated_total",
		Help: "Total number of records successfully translated.",
	})
	recordFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poller_record_failures_total",
		Help: "Total number of per-record translation failures.",
	})
)

func init() {
	prometheus.MustRegister(cyclesTotal, recordsTranslated, recordFailures)
}

// Poller scans the store for pending translation requests and processes them
// through the configured translator.
type Poller struct {
	DB         *gorm.DB
	Translator translate.Translator
	Log        zerolog.Logger

	// Interval between cycles.
	Interval time.Duration
	// ClaimLease bounds how long a processing claim may stand before it is
	// re-opened (crash recovery).
	ClaimLease time.Duration
	// CallTimeout caps each provider call.
	CallTimeout time.Duration
	// TranslatorName is recorded on completed requests.
	TranslatorName string

	// token identifies this instance's claims.
	token string
}

// New constructs a poller with a fresh instance token.
func New(db *gorm.DB, tr translate.Translator, log zerolog.Logger, interval, lease, callTimeout time.Duration, translatorName string) *Poller {
	return &Poller{
		DB:             db,
		Translator:     tr,
		Log:            log,
		Interval:       interval,
		ClaimLease:     lease,
		CallTimeout:    callTimeout,
		TranslatorName: translatorName,
		token:          uuid.NewString(),
	}
}

// Token returns the claim token identifying this instance.
func (p *Poller) Token() string { return p.token }

// Run executes cycles on a fixed interval until ctx is cancelled. An
// in-flight cycle finishes its current record; only further scheduling stops.
// Store-level cycle failures are logged and do not terminate the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.Log.Info().
		Dur("interval", p.Interval).
		Str("token", p.token).
		Msg("poller started")

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.Log.Error().Err(err).Msg("poll cycle failed")
		}
		select {
		case <-ctx.Done():
			p.Log.Info().Msg("poller stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle performs one scan-and-process pass and returns how many records
// were successfully translated. Per-record failures are isolated: the record
// is logged, released back to pending, and the cycle moves on. Only a failure
// of the pending query itself aborts the cycle.
func (p *Poller) RunCycle(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	if reopened, err := repo.ReclaimExpired(ctx, p.DB, p.ClaimLease, now); err != nil {
		p.Log.Warn().Err(err).Msg("reclaim expired claims")
	} else if reopened > 0 {
		p.Log.Warn().Int64("count", reopened).Msg("re-opened stale claims")
	}

	pending, err := repo.FindPending(ctx, p.DB)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		p.Log.Info().Msg("no pending translation requests")
		cyclesTotal.Inc()
		return 0, nil
	}

	processed := 0
	for i := range pending {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		rec := &pending[i]

		claimed, err := repo.ClaimPending(ctx, p.DB, rec.ID, p.token, now)
		if err != nil {
			recordFailures.Inc()
			p.Log.Error().Err(err).Str("id", rec.ID).Msg("claim failed")
			continue
		}
		if !claimed {
			// Another instance won the race; not our record anymore.
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, p.CallTimeout)
		res, err := p.Translator.Translate(callCtx, rec.InputText, rec.TargetLanguage)
		cancel()
		if err != nil {
			recordFailures.Inc()
			p.Log.Error().Err(err).Str("id", rec.ID).Msg("translation failed, leaving record pending")
			if rerr := repo.ReleaseClaim(ctx, p.DB, rec.ID, p.token); rerr != nil {
				p.Log.Error().Err(rerr).Str("id", rec.ID).Msg("release claim failed")
			}
			continue
		}

		if err := repo.MarkTranslated(ctx, p.DB, rec.ID, p.token, res.Text, p.TranslatorName, time.Now()); err != nil {
			recordFailures.Inc()
			p.Log.Error().Err(err).Str("id", rec.ID).Msg("write-back failed")
			continue
		}

		processed++
		recordsTranslated.Inc()
		p.Log.Info().
			Str("id", rec.ID).
			Str("target", rec.TargetLanguage).
			Int("len", len(res.Text)).
			Msg("record translated")
	}

	cyclesTotal.Inc()
	p.Log.Info().Int("processed", processed).Int("scanned", len(pending)).Msg("poll cycle complete")
	return processed, nil
}
