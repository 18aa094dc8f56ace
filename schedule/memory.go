package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryScheduler defers invocations with in-process timers. Entries do not
// survive a restart; Cancel stops a pending timer if it has not fired yet.
type MemoryScheduler struct {
	dispatcher Dispatcher
	logger     *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewMemoryScheduler creates a timer-based scheduler delivering through the
// given dispatcher.
func NewMemoryScheduler(dispatcher Dispatcher, logger *zap.Logger) *MemoryScheduler {
	return &MemoryScheduler{
		dispatcher: dispatcher,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule registers one deferred invocation and returns its entry id.
// Timestamps in the past fire immediately.
func (s *MemoryScheduler) Schedule(ctx context.Context, inv Invocation) (string, error) {
	entryID := uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", context.Canceled
	}
	s.timers[entryID] = time.AfterFunc(time.Until(inv.At), func() {
		s.mu.Lock()
		delete(s.timers, entryID)
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		s.deliver(entryID, inv)
	})
	s.mu.Unlock()

	s.logger.Debug("invocation scheduled",
		zap.String("entry_id", entryID),
		zap.String("agent_id", inv.AgentID),
		zap.String("method", inv.Method),
		zap.Time("at", inv.At),
	)
	return entryID, nil
}

// Backend names this scheduler for logs and metrics labels.
func (s *MemoryScheduler) Backend() string { return "memory" }

// Cancel stops a pending entry. Cancelling an already-fired or unknown entry
// is a no-op.
func (s *MemoryScheduler) Cancel(ctx context.Context, entryID string) error {
	s.mu.Lock()
	timer, ok := s.timers[entryID]
	if ok {
		delete(s.timers, entryID)
	}
	s.mu.Unlock()
	if ok {
		timer.Stop()
	}
	return nil
}

// Close stops accepting entries and cancels everything still pending.
func (s *MemoryScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	timers := make([]*time.Timer, 0, len(s.timers))
	for id, t := range s.timers {
		timers = append(timers, t)
		delete(s.timers, id)
	}
	s.mu.Unlock()
	for _, t := range timers {
		t.Stop()
	}
}

func (s *MemoryScheduler) deliver(entryID string, inv Invocation) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, agentErr := s.dispatcher.Invoke(ctx, inv.AgentID, inv.Method, inv.Args); agentErr != nil {
		s.logger.Warn("scheduled invocation failed",
			zap.String("entry_id", entryID),
			zap.String("agent_id", inv.AgentID),
			zap.String("method", inv.Method),
			zap.String("code", string(agentErr.Code)),
		)
	}
}
