package report

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Store holds report records. The processor is the only writer; a durable
// backend can be swapped in without changing the decision logic.
type Store interface {
	Insert(ctx context.Context, r Report) error
	Get(ctx context.Context, id string) (Report, error)
	Update(ctx context.Context, r Report) error
	Stats(ctx context.Context) (Stats, error)
}

// MemoryStore keeps reports in a process-local map. It also keeps the
// review queue: an auditable list of identifiers that entered needs-review
// at submission time. Nothing consumes the queue.
type MemoryStore struct {
	mu          sync.RWMutex
	reports     map[string]Report
	reviewQueue []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]Report)}
}

func (s *MemoryStore) Insert(_ context.Context, r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[r.ID]; exists {
		return fmt.Errorf("report %s already exists", r.ID)
	}
	s.reports[r.ID] = r
	if r.Status == StatusNeedsReview {
		s.reviewQueue = append(s.reviewQueue, r.ID)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return r, nil
}

func (s *MemoryStore) Update(_ context.Context, r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrReportNotFound, r.ID)
	}
	s.reports[r.ID] = r
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.reports)}
	if stats.Total == 0 {
		return stats, nil
	}

	stats.Categories = make(map[string]int)
	for _, r := range s.reports {
		switch r.Status {
		case StatusVerified:
			stats.Verified++
		case StatusNeedsReview:
			stats.Pending++
		case StatusRejected:
			stats.Rejected++
		}
		stats.Categories[r.Category]++
	}
	stats.VerificationRate = math.Round(float64(stats.Verified)/float64(stats.Total)*1000) / 10
	return stats, nil
}

// PendingReview returns a copy of the review queue.
func (s *MemoryStore) PendingReview() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	queue := make([]string, len(s.reviewQueue))
	copy(queue, s.reviewQueue)
	return queue
}
