package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/storage/kv"
	"github.com/trezcool/edutrack/storage/kv/filekv"
	"github.com/trezcool/edutrack/storage/kv/inmemkv"
	"github.com/trezcool/edutrack/storage/kv/pgkv"
)

// Open returns the key-value store selected by conf.Storage.Engine.
func Open(conf *core.Config) (kv.Store, error) {
	switch conf.Storage.Engine {
	case core.StorageMemory:
		return inmemkv.Open(), nil
	case core.StorageFile, "":
		store, err := filekv.Open(conf.Storage.FilePath)
		return store, errors.Wrap(err, "opening file store")
	case core.StoragePostgres:
		store, err := pgkv.Open(conf.Storage.DSN)
		return store, errors.Wrap(err, "opening postgres store")
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Storage.Engine)
	}
}
