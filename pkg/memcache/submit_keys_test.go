package mem

import (
	"testing"
	"time"
)

func TestSubmitKeysRememberAndExpire(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSubmitKeys()
	s.now = func() time.Time { return now }

	s.Remember("k1", "tour-1", time.Minute)
	if id, ok := s.Lookup("k1"); !ok || id != "tour-1" {
		t.Fatalf("lookup = %q %v", id, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Lookup("k1"); ok {
		t.Fatalf("key should have expired")
	}

	s.Remember("k2", "tour-2", time.Minute)
	if len(s.data) != 1 {
		t.Fatalf("expired keys should be swept, have %d", len(s.data))
	}
}

func TestSubmitKeysIgnoreEmptyKey(t *testing.T) {
	s := NewSubmitKeys()
	s.Remember("", "tour-1", time.Minute)
	if _, ok := s.Lookup(""); ok {
		t.Fatalf("empty key must not be stored")
	}
}
