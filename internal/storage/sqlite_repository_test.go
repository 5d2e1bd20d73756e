package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupKV(t *testing.T) *SQLiteKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskboard-test.db")
	kv, err := OpenSQLite(t.Context(), dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVPutGetOverwrite(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()

	if _, err := kv.Get(ctx, KeyTodos); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := kv.Put(ctx, KeyTodos, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, KeyTodos, []byte(`[{"id":"1","text":"a"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get(ctx, KeyTodos)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"1","text":"a"}]` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestKVKeysAreIndependent(t *testing.T) {
	kv := setupKV(t)
	ctx := t.Context()
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return at }

	for _, key := range []string{KeyUsers, KeyProfile, KeyTodos} {
		if err := kv.Put(ctx, key, []byte(`"`+key+`"`)); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	for _, key := range []string{KeyUsers, KeyProfile, KeyTodos} {
		got, err := kv.Get(ctx, key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if string(got) != `"`+key+`"` {
			t.Fatalf("unexpected value for %s: %s", key, got)
		}
	}

	var updated string
	if err := kv.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, KeyUsers).Scan(&updated); err != nil {
		t.Fatalf("read updated_at: %v", err)
	}
	if updated != at.Format(sqliteTimeLayout) {
		t.Fatalf("unexpected updated_at: %s", updated)
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	kv, err := OpenSQLite(t.Context(), dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := PutJSON(t.Context(), kv, KeyProfile, map[string]string{"name": "Ada"}); err != nil {
		t.Fatalf("put json: %v", err)
	}
	_ = kv.Close()

	kv, err = OpenSQLite(t.Context(), dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	var got map[string]string
	if err := GetJSON(t.Context(), kv, KeyProfile, &got); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if got["name"] != "Ada" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestNewSQLiteKVRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteKV((*sql.DB)(nil)); err == nil {
		t.Fatal("expected error for nil db")
	}
}
