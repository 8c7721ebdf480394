package adapter

import (
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileParamStore implements domain.ParamStore on a single state file holding
// a URL-encoded query string (the browser address bar analog). Merges
// preserve keys the application does not own.
type FileParamStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileParamStore creates a store backed by the given file. The file is
// created on first merge.
func NewFileParamStore(path string, logger *slog.Logger) *FileParamStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileParamStore{path: path, logger: logger}
}

// Read parses the stored query string. A missing or unparsable file reads
// as empty.
func (s *FileParamStore) Read() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileParamStore) read() map[string]string {
	params := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reading state file failed", "path", s.path, "error", err)
		}
		return params
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(data)))
	if err != nil {
		s.logger.Warn("state file is not a valid query string", "path", s.path, "error", err)
		return params
	}

	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}

// Merge overlays partial onto the stored parameters and writes the result
// back. Keys whose merged value is empty are dropped; unrelated keys stay.
func (s *FileParamStore) Merge(partial map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.read()
	for key, value := range partial {
		if value == "" {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}

	values := url.Values{}
	for key, value := range merged {
		values.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(values.Encode()), 0644)
}
