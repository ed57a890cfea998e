// Package store keeps recent analyses in memory.
package store

import (
	"context"
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/internal"
	"github.com/nerview/nerview/pkg/models"
)

var log = internal.GetLogger()

var _ models.AnalysisStore = &MemoryStore{}

// MemoryStore is a size and age bounded store of analyses. When full, the
// oldest analysis is evicted. Stored values are copied in and out so callers
// can't mutate each other's results.
type MemoryStore struct {
	mu          sync.Mutex
	maxAnalyses int
	ttl         time.Duration
	order       *list.List
	items       map[uuid.UUID]*list.Element
	now         func() time.Time
}

func NewMemoryStore(cfg *config.StoreConfig) *MemoryStore {
	maxAnalyses := cfg.MaxAnalyses
	if maxAnalyses <= 0 {
		maxAnalyses = config.DefaultMaxAnalyses
	}
	return &MemoryStore{
		maxAnalyses: maxAnalyses,
		ttl:         cfg.TTL,
		order:       list.New(),
		items:       make(map[uuid.UUID]*list.Element),
		now:         time.Now,
	}
}

// Put stores analysis, assigning a UUID and creation time when unset.
// Replacing a stored analysis refreshes its creation time.
func (s *MemoryStore) Put(_ context.Context, analysis *models.Analysis) error {
	if analysis == nil {
		return models.NewBadRequestError("analysis is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if analysis.UUID == uuid.Nil {
		analysis.UUID = uuid.New()
	}

	el, replacing := s.items[analysis.UUID]
	// a replaced analysis moves to the back, so it must be the newest
	if analysis.CreatedAt.IsZero() || replacing {
		analysis.CreatedAt = s.now().UTC()
	}

	stored, err := clone(analysis)
	if err != nil {
		return err
	}

	if replacing {
		el.Value = stored
		s.order.MoveToBack(el)
		return nil
	}

	s.items[analysis.UUID] = s.order.PushBack(stored)
	s.evict()

	return nil
}

// Get returns a copy of the analysis, or a NotFoundError if it is unknown
// or has expired.
func (s *MemoryStore) Get(_ context.Context, analysisUUID uuid.UUID) (*models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict()

	el, ok := s.items[analysisUUID]
	if !ok {
		return nil, models.NewNotFoundError("analysis " + analysisUUID.String())
	}
	analysis := el.Value.(*models.Analysis)
	if s.expired(analysis) {
		s.order.Remove(el)
		delete(s.items, analysisUUID)
		return nil, models.NewNotFoundError("analysis " + analysisUUID.String())
	}

	return clone(analysis)
}

func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict()
	return s.order.Len()
}

func clone(analysis *models.Analysis) (*models.Analysis, error) {
	c := &models.Analysis{
		UUID:      analysis.UUID,
		Text:      analysis.Text,
		CreatedAt: analysis.CreatedAt,
	}
	if analysis.Entities != nil {
		if err := copier.CopyWithOption(&c.Entities, &analysis.Entities, copier.Option{DeepCopy: true}); err != nil {
			return nil, NewStorageError("failed to copy analysis entities", err)
		}
	}
	if analysis.Counts != nil {
		c.Counts = make(models.Counts, len(analysis.Counts))
		for label, count := range analysis.Counts {
			c.Counts[label] = count
		}
	}
	return c, nil
}

// evict drops expired analyses and trims to capacity. Callers hold mu.
func (s *MemoryStore) evict() {
	for s.order.Len() > 0 {
		front := s.order.Front()
		analysis := front.Value.(*models.Analysis)
		if !s.expired(analysis) && s.order.Len() <= s.maxAnalyses {
			return
		}
		s.order.Remove(front)
		delete(s.items, analysis.UUID)
		log.Debugf("evicted analysis %s", analysis.UUID)
	}
}

func (s *MemoryStore) expired(analysis *models.Analysis) bool {
	return s.ttl > 0 && s.now().Sub(analysis.CreatedAt) > s.ttl
}
