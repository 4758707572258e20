package sqlitestore

import (
	"path/filepath"
	"testing"
)

func TestSlotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, ok, err := s.Get("todos"); err != nil || ok {
		t.Fatalf("Get before Set: ok=%v err=%v", ok, err)
	}
	if err := s.Set("todos", "[1]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("todos", "[2]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen to prove the value is durable.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get("todos")
	if err != nil || !ok || v != "[2]" {
		t.Fatalf("Get after reopen: %q %v %v", v, ok, err)
	}
}

func TestMemoryDatabase(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get("a"); !ok || v != "1" {
		t.Errorf("Get: %q %v", v, ok)
	}
	if _, ok, _ := s.Get("b"); ok {
		t.Errorf("unexpected value for unset key")
	}
}
