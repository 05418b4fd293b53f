package knowledge

import "os"

// Store loads a knowledge base snapshot. Implementations must not panic
// past this boundary; callers degrade to the error marker instead of
// refusing to start.
type Store interface {
	Load() (Base, error)
}

// FileStore reads the knowledge base from a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a Store for the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and parses the document. Called once at process start.
func (s *FileStore) Load() (Base, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Base{}, err
	}
	return Parse(raw)
}

// LoadOrMarker loads from store, substituting the error marker on any
// failure so startup can proceed in a degraded state.
func LoadOrMarker(store Store) (Base, error) {
	base, err := store.Load()
	if err != nil {
		return ErrorMarker(), err
	}
	return base, nil
}
