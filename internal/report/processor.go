package report

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/civicair/enviro-api/internal/observability"
)

// Rand is the subset of *math/rand/v2.Rand the processor draws from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Processor runs submissions through the validation decision engine and
// resolves report state on status queries. It is the sole mutator of stored
// reports; resolution of a validating report is serialized per identifier.
type Processor struct {
	store    Store
	clock    clockwork.Clock
	hotspots HotspotIndex
	metrics  *observability.Metrics

	mu  sync.Mutex
	rng Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

type Option func(*Processor)

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// WithRand replaces the probability source.
func WithRand(r Rand) Option {
	return func(p *Processor) { p.rng = r }
}

// WithHotspots replaces the simulated hotspot lookup with a real index.
func WithHotspots(h HotspotIndex) Option {
	return func(p *Processor) { p.hotspots = h }
}

// WithMetrics wires submission and resolution counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

func NewProcessor(store Store, opts ...Option) *Processor {
	p := &Processor{
		store: store,
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.hotspots == nil {
		p.hotspots = randomHotspots{rng: p.roll}
	}
	return p
}

// Submit runs the validation decision, stores the report record, and returns
// tracking information.
func (p *Processor) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	confidence := 0.0
	if in.Detection != nil {
		confidence = in.Detection.Confidence
	}

	decision := p.decide(confidence, in.Latitude, in.Longitude)
	now := p.clock.Now()

	rec := Report{
		ID:           p.newReportID(now),
		Category:     in.Category,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		LocationName: in.LocationName,
		Detection:    in.Detection,
		SubmittedAt:  now,
		Status:       decision.Status,
		Reason:       decision.Reason,
		Confidence:   decision.Confidence,
	}

	if err := p.store.Insert(ctx, rec); err != nil {
		return SubmitResult{}, fmt.Errorf("storing report: %w", err)
	}

	if p.metrics != nil {
		p.metrics.ReportsSubmitted.WithLabelValues(string(decision.Status)).Inc()
	}

	return SubmitResult{
		ReportID:         rec.ID,
		Status:           "submitted",
		ValidationStatus: decision.Status,
		EstimatedSeconds: p.estimateSeconds(decision.Status),
		Message:          statusMessage(decision.Status),
	}, nil
}

// Status returns the current state of a report. A validating report is
// resolved here, once: the outcome is re-rolled from the stored confidence
// and persisted, and the first transition to verified grants the reward and
// stamps the verification time. Re-querying a resolved report is idempotent.
func (p *Processor) Status(ctx context.Context, reportID string) (StatusResult, error) {
	lock := p.lockFor(reportID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := p.store.Get(ctx, reportID)
	if err != nil {
		return StatusResult{}, err
	}

	changed := false

	if rec.Status == StatusValidating {
		rec.Status = p.resolve(rec.Confidence)
		changed = true
		if p.metrics != nil {
			p.metrics.ReportsResolved.WithLabelValues(string(rec.Status)).Inc()
		}
	}

	if rec.Status == StatusVerified && rec.VerifiedAt == nil {
		now := p.clock.Now()
		rec.VerifiedAt = &now
		rec.Reward = p.reward(rec)
		changed = true
		if p.metrics != nil {
			p.metrics.RewardCoins.Add(float64(rec.Reward))
		}
	}

	if changed {
		if err := p.store.Update(ctx, rec); err != nil {
			return StatusResult{}, fmt.Errorf("persisting report state: %w", err)
		}
	}

	return StatusResult{
		ReportID:    rec.ID,
		Status:      rec.Status,
		Category:    rec.Category,
		Location:    rec.LocationName,
		SubmittedAt: rec.SubmittedAt,
		VerifiedAt:  rec.VerifiedAt,
		Confidence:  rec.Confidence,
		Reason:      rec.Reason,
		Reward:      rec.Reward,
		Message:     statusMessage(rec.Status),
	}, nil
}

// Stats returns aggregate statistics over all stored reports.
func (p *Processor) Stats(ctx context.Context) (Stats, error) {
	return p.store.Stats(ctx)
}

// resolve picks the terminal outcome for a validating report from its stored
// confidence.
func (p *Processor) resolve(confidence float64) Status {
	switch {
	case confidence >= thresholdHigh:
		return StatusVerified
	case confidence >= thresholdMedium:
		if p.roll() < 0.5 {
			return StatusVerified
		}
		return StatusNeedsReview
	default:
		if p.roll() < 0.5 {
			return StatusNeedsReview
		}
		return StatusRejected
	}
}

// reward computes the coin grant for a verified report: 10 base, +5 for high
// confidence, +5 for a high-priority category, +5 for an underreported area
// (simulated at 30%).
func (p *Processor) reward(rec Report) int {
	total := 10
	if rec.Confidence >= 0.8 {
		total += 5
	}
	if isPriorityCategory(rec.Category) {
		total += 5
	}
	if p.roll() < 0.3 {
		total += 5
	}
	return total
}

func isPriorityCategory(category string) bool {
	switch strings.ToLower(category) {
	case "water", "construction":
		return true
	}
	return false
}

// estimateSeconds is presentational only; nothing schedules work against it.
func (p *Processor) estimateSeconds(s Status) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch s {
	case StatusValidating:
		return 3 + p.rng.IntN(6) // verified path: 3-8s
	case StatusNeedsReview:
		return 10 + p.rng.IntN(21) // 10-30s
	default:
		return 5 + p.rng.IntN(11) // 5-15s
	}
}

func (p *Processor) newReportID(now time.Time) string {
	return fmt.Sprintf("RPT-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}

func (p *Processor) roll() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

// lockFor returns the per-report mutex, creating it on first use. Locks are
// never released: report records are never deleted, and the table only grows
// with distinct identifiers queried.
func (p *Processor) lockFor(reportID string) *sync.Mutex {
	p.locksMu.Lock()
	defer p.locksMu.Unlock()
	lock, ok := p.locks[reportID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[reportID] = lock
	}
	return lock
}
