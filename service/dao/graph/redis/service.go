package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/dao/criteria"
	"go.uber.org/zap"
)

// DefaultPrefix is prepended to every flow id.
const DefaultPrefix = "flowhistory:"

// Service implements a Redis-backed record store; each record is a JSON
// string under prefix+flowID, optionally expiring after ttl.
type Service struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

var _ dao.Service[string, dao.Record] = (*Service)(nil)

// Option configures the redis store
type Option func(s *Service)

// WithPrefix sets the key prefix
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets the record expiry; zero keeps records forever
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
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

// New creates a store connected to redisURL
func New(ctx context.Context, redisURL string, options ...Option) (*Service, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewWithClient(client, options...), nil
}

// NewWithClient creates a store from an existing client
func NewWithClient(client *redis.Client, options ...Option) *Service {
	ret := &Service{client: client, prefix: DefaultPrefix, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (s *Service) key(id string) string {
	return s.prefix + id
}

// Save stores a record
func (s *Service) Save(ctx context.Context, record *dao.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(record.FlowID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save record %s: %w", record.FlowID, err)
	}
	return nil
}

// Load retrieves a record
func (s *Service) Load(ctx context.Context, id string) (*dao.Record, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	var record dao.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return &record, nil
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}
	return nil
}

// List returns every record under the prefix
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*dao.Record, error) {
	var records []*dao.Record
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load record %s: %w", key, err)
		}
		var record dao.Record
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn("failed to unmarshal record", zap.String("key", key), zap.Error(err))
			continue
		}
		if criteria.Matches(&record, parameters) {
			records = append(records, &record)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
