package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists the catalogue as a single JSON file. A mutex
// serialises all access; writes replace the file atomically via a temp
// file and rename so a crash never leaves a half-written catalogue.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore creates a file-backed catalogue store at path. The parent
// directory is created if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:mnd // standard directory permissions
		return nil, fmt.Errorf("creating catalogue directory: %w", err)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// ReadAll returns the full catalogue. A missing or malformed file reads
// as an empty default catalogue; the store never errors on read.
func (s *FileStore) ReadAll() Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// WriteAll normalises raw into a catalogue, stamps the last-sync
// timestamp and persists it, replacing the previous document set
// wholesale. The stored catalogue is returned.
func (s *FileStore) WriteAll(raw any) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := NormalizeCatalog(raw)
	cat.LastSync = s.now().UTC().Format(time.RFC3339)
	if err := s.persist(cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// GetStore returns the document for name. Unknown names return an empty
// default document without registering the store.
func (s *FileStore) GetStore(name string) StoreDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.load()
	if doc, ok := cat.ByStore[name]; ok {
		return doc
	}
	return DefaultStore(name)
}

// PutStore normalises raw into a document for name and replaces that
// store's document wholesale. A first write registers the name in the
// store list; subsequent writes never duplicate it. The stored document
// is returned.
func (s *FileStore) PutStore(name string, raw any) (StoreDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.load()
	doc := NormalizeStore(raw, name)
	doc.StoreName = name

	if _, known := cat.ByStore[name]; !known {
		cat.Stores = append(cat.Stores, name)
	}
	cat.ByStore[name] = doc
	cat.LastSync = s.now().UTC().Format(time.RFC3339)

	if err := s.persist(cat); err != nil {
		return StoreDocument{}, err
	}
	return doc, nil
}

// Path returns the catalogue file path.
func (s *FileStore) Path() string {
	return s.path
}

// load reads and normalises the on-disk catalogue. Callers must hold mu.
func (s *FileStore) load() Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultCatalog()
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultCatalog()
	}
	return NormalizeCatalog(raw)
}

// persist writes cat atomically. Callers must hold mu.
func (s *FileStore) persist(cat Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalogue: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil { //nolint:mnd // catalogue may hold business data
		return fmt.Errorf("writing catalogue: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing catalogue: %w", err)
	}
	return nil
}
