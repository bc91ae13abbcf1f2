package compression

import (
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/service/compression/codec"
	"go.uber.org/zap"
)

// Option configures the compression service
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithCodec overrides the codec selected by Config.Codec
func WithCodec(c codec.Codec) Option {
	return func(s *Service) {
		s.codec = c
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
