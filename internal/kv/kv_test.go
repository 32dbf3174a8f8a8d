package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "k", []byte(`[1]`)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Put(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Put() overwrite error: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("Get() = %q, want %q", got, `[1,2]`)
	}
}

func TestMemory_Contract(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestSQLite_Contract(t *testing.T) {
	testStoreContract(t, newTestSQLite(t))
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	m.Put(ctx, "k", buf)
	buf[0] = 'z'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestS3_ObjectKey(t *testing.T) {
	s := &S3{prefix: "players/alice"}
	if got := s.objectKey("brain_training_history"); got != "players/alice/brain_training_history.json" {
		t.Errorf("objectKey = %q", got)
	}
	s = &S3{}
	if got := s.objectKey("k"); got != "k.json" {
		t.Errorf("objectKey without prefix = %q, want %q", got, "k.json")
	}
}
