package utils

import (
	"testing"
	"time"
)

func TestParseISODateLayouts(t *testing.T) {
	want := time.Date(2025, 9, 24, 8, 12, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-09-24T08:12:00Z",
		"2025-09-24T08:12:00.000Z",
		"2025-09-24T15:12:00+07:00",
		"2025-09-24T08:12:00",
	} {
		got, err := ParseISODate(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s: got %v", in, got)
		}
	}
	if _, err := ParseISODate("2025-09-24"); err != nil {
		t.Errorf("date only: %v", err)
	}
	for _, in := range []string{"", "24/09/2025", "tomorrow"} {
		if _, err := ParseISODate(in); err == nil {
			t.Errorf("%q should not parse", in)
		}
	}
}

func TestFormatISODateIsCanonicalUTC(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	got := FormatISODate(time.Date(2025, 9, 24, 15, 12, 0, 123456789, loc))
	if got != "2025-09-24T08:12:00.123Z" {
		t.Fatalf("got %s", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := CreateToken(secret, "agency-1", "operator", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	claims, err := ValidateToken(secret, tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "agency-1" || claims.Role != "operator" {
		t.Fatalf("claims = %#v", claims)
	}
	if _, err := ValidateToken([]byte("other"), tok); err == nil {
		t.Fatalf("token signed with another secret must fail")
	}
}
