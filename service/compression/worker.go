package compression

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/viant/flowhistory/internal/idgen"
	"github.com/viant/flowhistory/service/messaging/memory"
	"go.uber.org/zap"
)

type (
	request struct {
		ID   string
		Data string
	}

	response struct {
		ID   string
		Data string
		Err  error
	}

	// worker is the single background goroutine encoding requests taken
	// from its inbox. A panic inside the codec kills the worker; the service
	// then rejects whatever the worker still owned.
	worker struct {
		id     string
		queue  *memory.Queue[request]
		cancel context.CancelFunc
		done   chan struct{}
		owned  sync.Map
		failed atomic.Bool
	}
)

func startWorker(s *Service) (*worker, error) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &worker{
		id:     idgen.New(),
		queue:  memory.NewQueue[request](memory.Config{QueueBuffer: s.config.QueueBuffer}),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run(ctx, s)
	s.logger.Debug("compression worker started", zap.String("worker", w.id))
	return w, nil
}

func (w *worker) run(ctx context.Context, s *Service) {
	defer close(w.done)
	defer func() {
		if r := recover(); r != nil {
			w.failed.Store(true)
			s.logger.Error("compression worker crashed", zap.String("worker", w.id), zap.Any("panic", r))
			s.discard(w, ErrWorkerFailure)
		}
	}()
	for {
		msg, err := w.queue.Consume(ctx)
		if err != nil {
			return
		}
		req := msg.T()
		out, err := s.codec.Compress(req.Data)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrCompression, err)
			_ = msg.Nack(err)
		} else {
			_ = msg.Ack()
		}
		s.dispatch(w, &response{ID: req.ID, Data: out, Err: err})
	}
}

func (w *worker) track(id string) {
	w.owned.Store(id, struct{}{})
}

func (w *worker) untrack(id string) {
	w.owned.Delete(id)
}

func (w *worker) owns(id string) bool {
	_, ok := w.owned.Load(id)
	return ok
}

// stop cancels the worker loop and releases its inbox. It does not wait for
// an encode in progress; its reply will find no pending entry.
func (w *worker) stop() {
	w.cancel()
	_ = w.queue.Close()
	w.queue.Drain()
}
