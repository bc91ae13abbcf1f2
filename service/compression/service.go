// Package compression compresses serialized history graphs, preferably on a
// background worker so the caller never pays for large payloads on its own
// goroutine.
package compression

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/flowhistory/internal/idgen"
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/runtime/correlation"
	"github.com/viant/flowhistory/service/compression/codec"
	"github.com/viant/flowhistory/service/messaging"
	"github.com/viant/flowhistory/tracing"
	"go.uber.org/zap"
)

// Result is the outcome of an asynchronous compression.
type Result = correlation.Result[string]

// Service compresses text through a lazily started worker and falls back to
// the calling goroutine when no worker is available.
type Service struct {
	config    Config
	codec     codec.Codec
	codecs    *codec.Cache
	logger    *zap.Logger
	metrics   *metrics.Collector
	pending   *correlation.Table[string]
	newWorker func(s *Service) (*worker, error)

	mu     sync.Mutex
	worker *worker
}

// New creates a compression service
func New(options ...Option) (*Service, error) {
	ret := &Service{
		config:    DefaultConfig(),
		logger:    zap.NewNop(),
		pending:   correlation.NewTable[string](),
		codecs:    codec.NewCache(),
		newWorker: startWorker,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.config.init()
	if ret.codec == nil {
		c, err := ret.codecs.Get(ret.config.Codec)
		if err != nil {
			return nil, err
		}
		ret.codec = c
	}
	return ret, nil
}

// Codec returns the codec in use
func (s *Service) Codec() codec.Codec {
	return s.codec
}

// Compress encodes data, waiting for the worker reply when a worker is in use
func (s *Service) Compress(ctx context.Context, data string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "compression.compress")
	span.WithInt("compression.input_size", len(data))
	started := time.Now()
	ret, path, err := s.compress(ctx, data)
	s.metrics.Compression(path, time.Since(started))
	if err != nil {
		s.metrics.Failure(failureKind(err))
	}
	span.WithAttributes(map[string]string{"compression.path": path})
	tracing.EndSpan(span, err)
	return ret, err
}

// CompressAsync starts Compress and returns a channel receiving its single result
func (s *Service) CompressAsync(ctx context.Context, data string) <-chan Result {
	ret := make(chan Result, 1)
	go func() {
		value, err := s.Compress(ctx, data)
		ret <- Result{Value: value, Err: err}
	}()
	return ret
}

// Decompress restores data produced by Compress
func (s *Service) Decompress(data string) (string, error) {
	ret, err := s.codec.Decompress(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return ret, nil
}

// Terminate stops the worker and rejects every pending request with
// ErrTerminated. A later Compress starts a new worker.
func (s *Service) Terminate() {
	s.mu.Lock()
	w := s.worker
	s.worker = nil
	s.mu.Unlock()
	if w != nil {
		w.stop()
		s.logger.Debug("compression worker terminated", zap.String("worker", w.id))
	}
	if count := s.pending.RejectAll(ErrTerminated); count > 0 {
		s.logger.Info("rejected pending compression requests", zap.Int("count", count))
	}
}

// Close terminates the service and releases the codec it created. A codec
// supplied through WithCodec stays open. The service must not be used after
// Close.
func (s *Service) Close() error {
	s.Terminate()
	return s.codecs.Close()
}

// Pending returns the number of requests waiting for the worker
func (s *Service) Pending() int {
	return s.pending.Len()
}

func (s *Service) compress(ctx context.Context, data string) (string, string, error) {
	w := s.acquire()
	if w == nil {
		ret, err := s.encode(data)
		return ret, metrics.PathFallback, err
	}
	ret, err := s.submit(ctx, w, data)
	return ret, metrics.PathWorker, err
}

func (s *Service) submit(ctx context.Context, w *worker, data string) (string, error) {
	id := idgen.New()
	entry, _ := s.pending.Register(id)
	w.track(id)
	defer w.untrack(id)

	timer := time.NewTimer(s.config.Timeout)
	defer timer.Stop()

	publishCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	err := w.queue.Publish(publishCtx, &request{ID: id, Data: data})
	cancel()
	if err != nil {
		if !s.pending.Remove(id) {
			res := <-entry.Done()
			return res.Value, res.Err
		}
		switch {
		case errors.Is(err, messaging.ErrClosed):
			if w.failed.Load() {
				return "", ErrWorkerFailure
			}
			return "", ErrTerminated
		case ctx.Err() != nil:
			return "", ctx.Err()
		default:
			return "", ErrTimeout
		}
	}

	select {
	case res := <-entry.Done():
		return res.Value, res.Err
	case <-timer.C:
		if s.pending.Remove(id) {
			s.logger.Warn("compression request timed out", zap.String("request", id), zap.Duration("timeout", s.config.Timeout))
			return "", ErrTimeout
		}
	case <-ctx.Done():
		if s.pending.Remove(id) {
			return "", ctx.Err()
		}
	}
	res := <-entry.Done()
	return res.Value, res.Err
}

// acquire returns the live worker, starting one when needed. It returns nil
// when the worker capability is disabled or the worker cannot be started.
func (s *Service) acquire() *worker {
	if !s.config.Worker {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.worker != nil {
		return s.worker
	}
	w, err := s.newWorker(s)
	if err != nil {
		s.logger.Warn("failed to start compression worker, using fallback", zap.Error(err))
		s.metrics.Failure("worker_start")
		return nil
	}
	s.worker = w
	return w
}

// dispatch routes a worker reply to its waiter; replies for ids that are no
// longer pending are dropped.
func (s *Service) dispatch(w *worker, resp *response) {
	w.untrack(resp.ID)
	var delivered bool
	if resp.Err != nil {
		delivered = s.pending.Reject(resp.ID, resp.Err)
	} else {
		delivered = s.pending.Resolve(resp.ID, resp.Data)
	}
	if !delivered {
		s.logger.Debug("dropped stale compression reply", zap.String("request", resp.ID))
	}
}

// discard removes a crashed worker and rejects every request it owned.
func (s *Service) discard(w *worker, err error) {
	s.mu.Lock()
	if s.worker == w {
		s.worker = nil
	}
	s.mu.Unlock()
	w.stop()
	count := s.pending.RejectWhere(w.owns, err)
	s.logger.Warn("discarded compression worker", zap.String("worker", w.id), zap.Int("rejected", count))
}

func (s *Service) encode(data string) (ret string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCompression, r)
		}
	}()
	if ret, err = s.codec.Compress(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return ret, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrWorkerFailure):
		return "worker"
	case errors.Is(err, ErrTerminated):
		return "terminated"
	case errors.Is(err, ErrCompression):
		return "codec"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
