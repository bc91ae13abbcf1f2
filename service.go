package flowhistory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/viant/flowhistory/internal/idgen"
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/policy"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/dao"
	fsgraph "github.com/viant/flowhistory/service/dao/graph/fs"
	memgraph "github.com/viant/flowhistory/service/dao/graph/memory"
	redisgraph "github.com/viant/flowhistory/service/dao/graph/redis"
	"github.com/viant/flowhistory/service/optimizer"
	"github.com/viant/flowhistory/service/persister"
	"go.uber.org/zap"
)

// Service creates editing sessions sharing one store, optimizer and
// compression worker.
type Service struct {
	config     *Config
	logger     *zap.Logger
	metrics    *metrics.Collector
	store      dao.Service[string, dao.Record]
	policy     *policy.Policy
	redo       history.RedoStrategy
	optimizer  *optimizer.Service
	compressor *compression.Service
	persister  *persister.Service
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.redo == nil {
		s.redo = history.StrategyByName(s.config.History.RedoStrategy)
	}
	if s.policy == nil {
		s.policy = s.config.Policy()
	}
	if s.store == nil {
		s.store = memgraph.New()
	}
	if s.compressor == nil {
		compressor, err := compression.New(
			compression.WithConfig(s.config.Compression),
			compression.WithLogger(s.logger),
			compression.WithMetrics(s.metrics))
		if err != nil {
			s.logger.Warn("invalid compression config, using defaults", zap.Error(err))
			compressor, _ = compression.New(compression.WithLogger(s.logger), compression.WithMetrics(s.metrics))
		}
		s.compressor = compressor
	}
	s.optimizer = optimizer.New(
		optimizer.WithPolicy(s.policy),
		optimizer.WithLimit(s.config.Optimizer.LimitBytes),
		optimizer.WithLogger(s.logger))
	s.persister = persister.New(s.store,
		persister.WithOptimizer(s.optimizer),
		persister.WithCompressor(s.compressor),
		persister.WithRedoStrategy(s.redo),
		persister.WithLogger(s.logger),
		persister.WithMetrics(s.metrics))
}

// New creates a service
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

// NewFromConfig validates cfg, builds the logger and store it describes and
// creates a service. Options are applied after the config derived ones.
func NewFromConfig(ctx context.Context, cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	var store dao.Service[string, dao.Record]
	switch cfg.Store.Vendor {
	case VendorFS:
		if store, err = fsgraph.New(cfg.Store.BaseURL, logger); err != nil {
			return nil, err
		}
	case VendorRedis:
		if store, err = redisgraph.New(ctx, cfg.Store.RedisURL,
			redisgraph.WithPrefix(cfg.Store.Prefix),
			redisgraph.WithTTL(cfg.Store.TTL),
			redisgraph.WithLogger(logger)); err != nil {
			return nil, err
		}
	default:
		store = memgraph.New()
	}
	base := []Option{WithConfig(cfg), WithLogger(logger), WithStore(store)}
	return New(append(base, options...)...), nil
}

// NewSession starts a history for flowID whose root captures initial. An
// empty flowID gets a generated one.
func (s *Service) NewSession(flowID string, initial *flow.State) *Session {
	if flowID == "" {
		flowID = idgen.New()
	}
	g := history.New(initial, history.WithRedoStrategy(s.redo))
	s.logger.Debug("started history session", zap.String("flow", flowID), zap.String("root", g.Root))
	return newSession(s, flowID, g)
}

// RestoreSession loads the stored history of flowID into a new session.
func (s *Service) RestoreSession(ctx context.Context, flowID string) (*Session, error) {
	g, err := s.persister.Load(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", flowID, err)
	}
	s.logger.Debug("restored history session", zap.String("flow", flowID), zap.Int("nodes", g.Len()), zap.String("cursor", g.Cursor))
	return newSession(s, flowID, g), nil
}

// Persister returns the persister used by sessions.
func (s *Service) Persister() *persister.Service {
	return s.persister
}

// Metrics returns the metrics collector, nil when metrics are disabled.
func (s *Service) Metrics() *metrics.Collector {
	return s.metrics
}

// Shutdown terminates the compression worker and releases the codecs and
// the store. The service must not be used afterwards.
func (s *Service) Shutdown(ctx context.Context) error {
	errs := []error{s.compressor.Close(), s.persister.Close()}
	if closer, ok := s.store.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	_ = s.logger.Sync()
	return errors.Join(errs...)
}
