// Package meta loads YAML documents such as engine configuration from any
// viant/afs supported location, expanding ${env.KEY} expressions first.
package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service resolves and loads documents relative to a base URL
type Service struct {
	fs      afs.Service
	baseURL string
}

// New creates a meta service; relative locations resolve against baseURL
func New(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL}
}

// URL returns the absolute location of a document.
func (s *Service) URL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download returns the document content with environment expressions expanded.
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return []byte(expandEnvExpr(string(data))), nil
}

// Load decodes the YAML document at location into target.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.URL(location), err)
	}
	return nil
}
