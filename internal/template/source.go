// Package template locates the affidavit .docx template: a file on one of
// several search paths, an S3 object, or the copy built into the binary.
package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/port"
)

// FileSource reads the template from the first search path that has it.
type FileSource struct {
	fileName    string
	searchPaths []string
}

// NewFileSource creates a FileSource probing searchPaths in order.
func NewFileSource(fileName string, searchPaths []string) *FileSource {
	return &FileSource{fileName: fileName, searchPaths: searchPaths}
}

func (s *FileSource) Load(_ context.Context) ([]byte, error) {
	candidates := s.candidates()
	tried := make([]string, 0, len(candidates))
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		tried = append(tried, path)
	}
	return nil, &domain.TemplateNotFoundError{Tried: tried}
}

func (s *FileSource) candidates() []string {
	if filepath.IsAbs(s.fileName) {
		return []string{s.fileName}
	}
	paths := make([]string, 0, len(s.searchPaths))
	for _, dir := range s.searchPaths {
		paths = append(paths, filepath.Join(dir, s.fileName))
	}
	return paths
}

func (s *FileSource) Describe() string {
	return fmt.Sprintf("file:%s %v", s.fileName, s.searchPaths)
}

// ObjectSource downloads the template from object storage.
type ObjectSource struct {
	storage port.ObjectStorage
	ref     port.ObjectRef
}

// NewObjectSource creates an ObjectSource for bucket/key.
func NewObjectSource(storage port.ObjectStorage, bucket, key string) *ObjectSource {
	return &ObjectSource{storage: storage, ref: port.ObjectRef{Bucket: bucket, Key: key}}
}

func (s *ObjectSource) Load(ctx context.Context) ([]byte, error) {
	data, err := s.storage.Get(ctx, s.ref)
	if err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			return nil, &domain.TemplateNotFoundError{Tried: []string{s.Describe()}}
		}
		return nil, fmt.Errorf("downloading template %s: %w", s.Describe(), err)
	}
	return data, nil
}

func (s *ObjectSource) Describe() string {
	return s.ref.String()
}

// CachedSource keeps the first successful load of an underlying source.
type CachedSource struct {
	inner port.TemplateSource

	mu   sync.Mutex
	data []byte
}

// NewCachedSource wraps inner so it is only hit until it succeeds once.
func NewCachedSource(inner port.TemplateSource) *CachedSource {
	return &CachedSource{inner: inner}
}

func (s *CachedSource) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		data, err := s.inner.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.data = data
		log.Printf("template.CachedSource: cached %s (%d bytes)", s.inner.Describe(), len(data))
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *CachedSource) Describe() string {
	return s.inner.Describe() + " (cached)"
}

// NewSource builds the template source selected by cfg.Source.
func NewSource(cfg *config.TemplateConfig, storage port.ObjectStorage) (port.TemplateSource, error) {
	switch cfg.Source {
	case "", "builtin":
		src, err := NewBuiltinSource(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "file":
		return NewFileSource(cfg.FileName, cfg.SearchPaths), nil
	case "s3":
		if storage == nil {
			return nil, fmt.Errorf("template source s3 requires object storage")
		}
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, fmt.Errorf("template source s3 requires bucket and key")
		}
		return NewCachedSource(NewObjectSource(storage, cfg.S3Bucket, cfg.S3Key)), nil
	default:
		return nil, fmt.Errorf("unknown template source: %s", cfg.Source)
	}
}
