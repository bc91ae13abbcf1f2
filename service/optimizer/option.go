package optimizer

import (
	"github.com/viant/flowhistory/policy"
	"go.uber.org/zap"
)

// Option configures the optimizer
type Option func(s *Service)

// WithPolicy sets the stripping policy; nil keeps every field
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithLimit sets the default size limit in bytes; negative keeps DefaultLimitBytes
func WithLimit(limitBytes int) Option {
	return func(s *Service) {
		s.limit = limitBytes
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
