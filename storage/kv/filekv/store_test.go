package filekv_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edutrack/storage/kv"
	"github.com/trezcool/edutrack/storage/kv/filekv"
	testutil "github.com/trezcool/edutrack/tests"
)

func openStore(t *testing.T) (kv.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "edutrack.json")
	store, err := filekv.Open(path)
	testutil.Fatal(t, err, "Open()")
	return store, path
}

func TestOpen(t *testing.T) {
	_, err := filekv.Open("")
	assert.Error(t, err)

	_, path := openStore(t)
	assert.DirExists(t, filepath.Dir(path))
	assert.NoFileExists(t, path, "the file is only created on first Put")
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store, path := openStore(t)
	defer store.Close()

	_, err := store.Get(ctx, "students")
	assert.Equal(t, kv.ErrNotFound, err)

	testutil.Fatal(t, store.Put(ctx, "students", []byte(`[{"id": "1"}]`)), "Put()")
	testutil.Fatal(t, store.Put(ctx, "attendance", []byte(`{}`)), "Put()")
	testutil.Fatal(t, store.Put(ctx, "students", []byte(`[]`)), "Put()")

	got, err := store.Get(ctx, "students")
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	raw, err := ioutil.ReadFile(path)
	testutil.Fatal(t, err, "ReadFile()")
	assert.JSONEq(t, `{"students": [], "attendance": {}}`, string(raw))
	assert.NoFileExists(t, path+".tmp")

	// a second store on the same file sees the same data
	other, err := filekv.Open(path)
	testutil.Fatal(t, err, "Open()")
	got, err = other.Get(ctx, "attendance")
	assert.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestStore_invalidValue(t *testing.T) {
	ctx := context.Background()
	store, path := openStore(t)

	assert.Error(t, store.Put(ctx, "students", []byte(`{oops`)))
	assert.NoFileExists(t, path)
}

func TestStore_corruptFile(t *testing.T) {
	ctx := context.Background()
	store, path := openStore(t)
	testutil.Fatal(t, ioutil.WriteFile(path, []byte("not json"), 0o644), "WriteFile()")

	_, err := store.Get(ctx, "students")
	assert.Error(t, err)
	assert.NotEqual(t, kv.ErrNotFound, err)

	// writing replaces the corrupt file
	testutil.Fatal(t, store.Put(ctx, "students", []byte(`[]`)), "Put()")
	got, err := store.Get(ctx, "students")
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestStore_emptyFile(t *testing.T) {
	store, path := openStore(t)
	f, err := os.Create(path)
	testutil.Fatal(t, err, "Create()")
	_ = f.Close()

	_, err = store.Get(context.Background(), "students")
	assert.Equal(t, kv.ErrNotFound, err)
}
