package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/dao/criteria"
	"go.uber.org/zap"
)

// Service implements a filesystem-based record store, one JSON file per flow
type Service struct {
	basePath string
	fs       afs.Service
	logger   *zap.Logger
	mu       sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, dao.Record] = (*Service)(nil)

// Save persists a record to the filesystem
func (s *Service) Save(ctx context.Context, record *dao.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	filePath := s.recordPath(record.FlowID)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save record to file %s: %w", filePath, err)
	}
	return nil
}

// Load retrieves a record from the filesystem
func (s *Service) Load(ctx context.Context, id string) (*dao.Record, error) {
	if err := dao.ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.recordPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if record exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var record dao.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record data: %w", err)
	}
	return &record, nil
}

// Delete removes a record from the filesystem
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := dao.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.recordPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if record exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}
	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// List returns all records from the filesystem
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*dao.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list record files: %w", err)
	}

	var records []*dao.Record
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			s.logger.Warn("failed to read record file", zap.String("url", object.URL()), zap.Error(err))
			continue
		}
		var record dao.Record
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn("failed to unmarshal record", zap.String("url", object.URL()), zap.Error(err))
			continue
		}
		if !criteria.Matches(&record, parameters) {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// recordPath returns the file path for a flow record
func (s *Service) recordPath(id string) string {
	return url.Join(s.basePath, id+".json")
}

// New creates a filesystem record store rooted at basePath
func New(basePath string, logger *zap.Logger) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := afs.New()

	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	basePath = url.Normalize(basePath, file.Scheme)
	return &Service{basePath: basePath, fs: fs, logger: logger}, nil
}
