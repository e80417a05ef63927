package filekv

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/storage/kv"
)

// document is the on-disk format: {key: raw JSON value}.
type document map[string]json.RawMessage

type store struct {
	mutex sync.Mutex
	path  string
}

var _ kv.Store = (*store)(nil)

// Open returns a store backed by a single JSON file, created on first Put.
func Open(path string) (kv.Store, error) {
	if path == "" {
		return nil, errors.New("file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	return &store{path: path}, nil
}

func (s *store) read() (document, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document{}, nil
		}
		return nil, errors.Wrap(err, "reading store file")
	}
	doc := make(document)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding store file")
	}
	return doc, nil
}

func (s *store) Get(_ context.Context, key string) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	val, ok := doc[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return []byte(val), nil
}

// Put rewrites the whole file. A corrupt file is replaced.
func (s *store) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return errors.Errorf("value of %q is not valid JSON", key)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.read()
	if err != nil {
		doc = make(document)
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding store file")
	}
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing store file")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replacing store file")
}

func (s *store) Close() error { return nil }
