// Package service contains application services that sit between the HTTP
// adapter and the outbound stores.
package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fn-gate/fngate/internal/domain/audit"
)

// AuditService provides async audit logging with a buffered channel and a
// background worker, so recording never blocks the request hot path. When
// the channel is full the record is dropped (after an optional bounded
// wait) and counted.
type AuditService struct {
	store         audit.Store
	records       chan audit.Record
	done          chan struct{}
	wg            sync.WaitGroup
	logger        *slog.Logger
	batchSize     int
	flushInterval time.Duration

	channelSize int
	sendTimeout time.Duration // 0 = drop immediately when full
	dropCount   atomic.Int64

	warningThreshold int          // channel depth percentage that triggers a warning
	lastWarning      atomic.Int64 // rate-limits warning logs (unix nanos)
}

// AuditOption configures AuditService.
type AuditOption func(*AuditService)

// WithChannelSize sets the audit channel buffer size.
func WithChannelSize(size int) AuditOption {
	return func(s *AuditService) {
		s.records = make(chan audit.Record, size)
		s.channelSize = size
	}
}

// WithBatchSize sets the number of records batched before a write.
func WithBatchSize(size int) AuditOption {
	return func(s *AuditService) {
		s.batchSize = size
	}
}

// WithFlushInterval sets how often pending records are flushed.
func WithFlushInterval(interval time.Duration) AuditOption {
	return func(s *AuditService) {
		s.flushInterval = interval
	}
}

// WithSendTimeout sets how long Record blocks when the channel is full
// before dropping. Zero drops immediately.
func WithSendTimeout(timeout time.Duration) AuditOption {
	return func(s *AuditService) {
		s.sendTimeout = timeout
	}
}

// WithWarningThreshold sets the channel depth percentage (0-100) at which a
// backpressure warning is logged.
func WithWarningThreshold(percent int) AuditOption {
	return func(s *AuditService) {
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		s.warningThreshold = percent
	}
}

// NewAuditService creates an AuditService writing to store.
func NewAuditService(store audit.Store, logger *slog.Logger, opts ...AuditOption) *AuditService {
	const defaultChannelSize = 1000
	s := &AuditService{
		store:            store,
		records:          make(chan audit.Record, defaultChannelSize),
		done:             make(chan struct{}),
		logger:           logger,
		batchSize:        100,
		flushInterval:    time.Second,
		channelSize:      defaultChannelSize,
		sendTimeout:      100 * time.Millisecond,
		warningThreshold: 80,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background worker. The worker drains and flushes the
// channel when ctx is cancelled or Stop is called.
func (s *AuditService) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.worker(ctx)
}

// Stop signals the worker to drain and waits for it to finish.
func (s *AuditService) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.wg.Wait()
}

// Record enqueues a record without blocking beyond the configured send
// timeout. Full-channel drops are counted, never surfaced to the caller.
func (s *AuditService) Record(rec audit.Record) {
	s.warnIfDeep()

	select {
	case s.records <- rec:
		return
	default:
	}

	if s.sendTimeout <= 0 {
		s.dropCount.Add(1)
		return
	}

	timer := time.NewTimer(s.sendTimeout)
	defer timer.Stop()
	select {
	case s.records <- rec:
	case <-timer.C:
		s.dropCount.Add(1)
	}
}

// DroppedRecords returns the number of records dropped due to backpressure.
func (s *AuditService) DroppedRecords() int64 {
	return s.dropCount.Load()
}

// ChannelDepth returns the current number of buffered records.
func (s *AuditService) ChannelDepth() int {
	return len(s.records)
}

// ChannelCapacity returns the channel buffer size.
func (s *AuditService) ChannelCapacity() int {
	return s.channelSize
}

// warnIfDeep logs a rate-limited warning when the channel depth crosses the
// configured threshold.
func (s *AuditService) warnIfDeep() {
	if s.warningThreshold <= 0 || s.channelSize == 0 {
		return
	}
	depth := len(s.records)
	if depth*100/s.channelSize < s.warningThreshold {
		return
	}
	now := time.Now().UnixNano()
	last := s.lastWarning.Load()
	if now-last < int64(10*time.Second) {
		return
	}
	if s.lastWarning.CompareAndSwap(last, now) {
		s.logger.Warn("audit channel under backpressure",
			"depth", depth,
			"capacity", s.channelSize,
			"dropped", s.dropCount.Load(),
		)
	}
}

func (s *AuditService) worker(ctx context.Context) {
	defer s.wg.Done()

	batch := make([]audit.Record, 0, s.batchSize)
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.store.Append(context.Background(), batch...); err != nil {
			s.logger.Error("failed to write audit batch", "count", len(batch), "error", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-s.records:
			batch = append(batch, rec)
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			s.drain(&batch)
			flush()
			return
		case <-s.done:
			s.drain(&batch)
			flush()
			return
		}
	}
}

// drain moves any remaining buffered records into the batch before shutdown.
func (s *AuditService) drain(batch *[]audit.Record) {
	for {
		select {
		case rec := <-s.records:
			*batch = append(*batch, rec)
		default:
			return
		}
	}
}
