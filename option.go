package flowhistory

import (
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/policy"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the service
type Option func(s *Service)

// WithConfig sets the configuration applied by New
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger shared by all services
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

// WithStore sets the record store; New uses an in-memory store otherwise
func WithStore(store dao.Service[string, dao.Record]) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithCompressor sets the compression service
func WithCompressor(compressor *compression.Service) Option {
	return func(s *Service) {
		s.compressor = compressor
	}
}

// WithPolicy sets the storage policy, overriding the optimizer config
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithRedoStrategy sets the redo strategy of every session graph
func WithRedoStrategy(strategy history.RedoStrategy) Option {
	return func(s *Service) {
		s.redo = strategy
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
