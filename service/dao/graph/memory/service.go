package memory

import (
	"context"

	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/dao/criteria"
	"github.com/viant/flowhistory/service/dao/store"
)

// Service implements an in-memory, thread-safe record store. All API
// methods work with copies to eliminate data races between goroutines.
type Service struct {
	*store.MemoryStore[string, dao.Record]
}

var _ dao.Service[string, dao.Record] = (*Service)(nil)

// Save validates the record before storing a copy of it
func (s *Service) Save(ctx context.Context, record *dao.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, record)
}

// New creates an in-memory record store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, dao.Record](dao.RecordKey, (*dao.Record).Clone, criteria.Matches),
	}
}
