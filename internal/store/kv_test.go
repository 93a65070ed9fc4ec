package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "caltrack.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestDBGetSetRemove(t *testing.T) {
	db, _ := openTestDB(t)

	if _, ok, err := db.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := db.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set("a", "2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Get("a")
	if err != nil || !ok || v != "2" {
		t.Fatalf("Get(a) = %q, %v, %v; want 2", v, ok, err)
	}

	if err := db.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.Get("a"); ok {
		t.Error("key still present after Remove")
	}
	if err := db.Remove("a"); err != nil {
		t.Errorf("removing an absent key: %v", err)
	}
}

func TestDBSurvivesReopen(t *testing.T) {
	db, path := openTestDB(t)
	if err := db.SetAll(map[string]string{"x": "hello", "y": "world"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db2.Close() }()

	v, ok, err := db2.Get("y")
	if err != nil || !ok || v != "world" {
		t.Fatalf("Get(y) after reopen = %q, %v, %v", v, ok, err)
	}

	keys, err := db2.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0].Key != "x" || keys[0].Size != 5 {
		t.Errorf("Keys = %+v", keys)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if err := m.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	_ = m.Remove("k")
	if _, ok, _ := m.Get("k"); ok {
		t.Error("key still present after Remove")
	}
}
