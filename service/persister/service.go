// Package persister saves and restores history graphs through a dao store,
// compressing payloads that exceed the optimizer size limit.
package persister

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/flowhistory/internal/clock"
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/compression/codec"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/optimizer"
	"github.com/viant/flowhistory/tracing"
	"go.uber.org/zap"
)

// ErrCorrupted is returned when a stored record cannot be turned back into a
// valid history graph.
var ErrCorrupted = errors.New("persister: corrupted record")

// Service persists history graphs
type Service struct {
	store      dao.Service[string, dao.Record]
	optimizer  *optimizer.Service
	compressor *compression.Service
	codecs     *codec.Cache
	redo       history.RedoStrategy
	limit      int
	logger     *zap.Logger
	metrics    *metrics.Collector
}

// Save optimizes g, compresses it when it exceeds the size limit and stores
// the result under flowID. A compression failure stores the uncompressed
// payload instead of failing the save.
func (s *Service) Save(ctx context.Context, flowID string, g *history.Graph) (record *dao.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "persister.save")
	span.WithAttributes(map[string]string{"flow.id": flowID})
	defer func() { tracing.EndSpan(span, err) }()

	if err = dao.ValidateID(flowID); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, dao.ErrNilEntity
	}
	optimized := s.optimizer.Optimize(ctx, g)
	exceeds, err := s.optimizer.ExceedsLimit(optimized, s.limit)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(optimized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history graph %s: %w", flowID, err)
	}

	record = &dao.Record{
		FlowID:   flowID,
		Encoding: dao.EncodingJSON,
		Payload:  string(data),
		Size:     len(data),
		Cursor:   optimized.Cursor,
		SavedAt:  clock.Now(),
	}
	if exceeds && s.compressor != nil {
		compressed, cErr := s.compressor.Compress(ctx, record.Payload)
		if cErr != nil {
			s.logger.Warn("compression failed, storing uncompressed history", zap.String("flow", flowID), zap.Int("size", record.Size), zap.Error(cErr))
		} else {
			record.Encoding = dao.EncodingCompressed
			record.Codec = s.compressor.Codec().Name()
			record.Payload = compressed
		}
	}
	span.WithInt("history.size", record.Size).WithAttributes(map[string]string{"history.encoding": record.Encoding})

	if err = s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save history %s: %w", flowID, err)
	}
	s.metrics.Saved(record.Encoding, len(record.Payload))
	s.logger.Debug("saved history", zap.String("flow", flowID), zap.String("encoding", record.Encoding), zap.Int("size", record.Size), zap.Int("stored", len(record.Payload)), zap.Int("nodes", optimized.Len()))
	return record, nil
}

// Load restores the graph stored under flowID. The cursor is placed on the
// stored cursor node, or on the root when that node no longer exists.
func (s *Service) Load(ctx context.Context, flowID string) (g *history.Graph, err error) {
	ctx, span := tracing.StartSpan(ctx, "persister.load")
	span.WithAttributes(map[string]string{"flow.id": flowID})
	defer func() { tracing.EndSpan(span, err) }()

	record, err := s.store.Load(ctx, flowID)
	if err != nil {
		return nil, err
	}
	payload, err := s.decode(record)
	if err != nil {
		return nil, err
	}
	g = &history.Graph{}
	if err = json.Unmarshal([]byte(payload), g); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, flowID, err)
	}
	if err = g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupted, flowID, err)
	}
	if !history.SetCursorTo(g, record.Cursor) {
		s.logger.Warn("stored cursor not found, restoring at root", zap.String("flow", flowID), zap.String("cursor", record.Cursor))
		history.SetCursorTo(g, g.Root)
	}
	g.SetRedoStrategy(s.redo)
	span.WithInt("history.nodes", g.Len())
	return g, nil
}

// Delete removes the stored history of flowID.
func (s *Service) Delete(ctx context.Context, flowID string) error {
	return s.store.Delete(ctx, flowID)
}

// List returns stored records, optionally filtered by dao parameters.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*dao.Record, error) {
	return s.store.List(ctx, parameters...)
}

func (s *Service) decode(record *dao.Record) (string, error) {
	switch record.Encoding {
	case dao.EncodingJSON, "":
		return record.Payload, nil
	case dao.EncodingCompressed:
		if s.compressor != nil && (record.Codec == "" || record.Codec == s.compressor.Codec().Name()) {
			return s.compressor.Decompress(record.Payload)
		}
		c, err := s.codecs.Get(record.Codec)
		if errors.Is(err, codec.ErrUnknownCodec) {
			return "", fmt.Errorf("%w: %s: %w", ErrCorrupted, record.FlowID, err)
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", record.FlowID, err)
		}
		ret, err := c.Decompress(record.Payload)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", compression.ErrCompression, record.FlowID, err)
		}
		return ret, nil
	}
	return "", fmt.Errorf("%w: %s: unknown encoding %q", ErrCorrupted, record.FlowID, record.Encoding)
}

// Close releases the codecs created to read records written with another
// codec.
func (s *Service) Close() error {
	return s.codecs.Close()
}

// New creates a persister over store
func New(store dao.Service[string, dao.Record], options ...Option) *Service {
	ret := &Service{store: store, codecs: codec.NewCache(), limit: optimizer.UseDefaultLimit, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.optimizer == nil {
		ret.optimizer = optimizer.New(optimizer.WithLogger(ret.logger))
	}
	return ret
}
