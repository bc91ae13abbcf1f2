package persister

import (
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/optimizer"
	"go.uber.org/zap"
)

// Option configures the persister
type Option func(s *Service)

// WithOptimizer sets the optimizer; New creates a pass-through one otherwise
func WithOptimizer(o *optimizer.Service) Option {
	return func(s *Service) {
		s.optimizer = o
	}
}

// WithCompressor sets the compression service; without one payloads are
// always stored uncompressed
func WithCompressor(c *compression.Service) Option {
	return func(s *Service) {
		s.compressor = c
	}
}

// WithLimit overrides the optimizer size limit used to decide on compression;
// optimizer.UseDefaultLimit restores the optimizer's own limit
func WithLimit(limitBytes int) Option {
	return func(s *Service) {
		s.limit = limitBytes
	}
}

// WithRedoStrategy sets the redo strategy of restored graphs
func WithRedoStrategy(strategy history.RedoStrategy) Option {
	return func(s *Service) {
		s.redo = strategy
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}
