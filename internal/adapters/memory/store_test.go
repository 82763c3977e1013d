package memory

import "testing"

func TestStore(t *testing.T) {
	s := NewStore()

	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("expected empty store")
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Errorf("expected v2, got %q ok=%v err=%v", v, ok, err)
	}
}
