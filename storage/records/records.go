// Package records persists the roster and the attendance record as JSON blobs in a kv.Store.
// Reads never fail: a missing or corrupt blob yields the default value. Writes are best effort
// and only logged when they fail.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/storage/kv"
)

// Fixed storage keys
const (
	StudentsKey   = "school-students-data"
	AttendanceKey = "school-attendance-data"
)

type Shim struct {
	store  kv.Store
	logger core.Logger
}

func NewShim(store kv.Store, logger core.Logger) *Shim {
	return &Shim{store: store, logger: logger}
}

// Load decodes the blob under `key` into `v` and reports whether it did.
// When it returns false the blob is missing, unreadable or corrupt, and `v` must be discarded.
func (s *Shim) Load(ctx context.Context, key string, v interface{}) bool {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) != kv.ErrNotFound {
			s.logger.Error(fmt.Sprintf("records: reading %q", key), err)
		}
		return false
	}
	if err = json.Unmarshal(data, v); err != nil {
		s.logger.Warn(fmt.Sprintf("records: discarding corrupt %q", key), err)
		return false
	}
	return true
}

// Save replaces the blob under `key` with `v` encoded as JSON.
func (s *Shim) Save(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error(fmt.Sprintf("records: encoding %q", key), errors.Wrap(err, "encoding"))
		return
	}
	if err = s.store.Put(ctx, key, data); err != nil {
		s.logger.Error(fmt.Sprintf("records: saving %q", key), err)
	}
}
