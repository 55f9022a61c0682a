package requestutil

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("abc-123_x"); got != "abc-123_x" {
		t.Fatalf("expected valid id to pass through, got %s", got)
	}
	for _, bad := range []string{"", "has space", "semi;colon"} {
		got := SanitizeRequestID(bad)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected generated uuid for %q, got %s", bad, got)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if ClientIP(req) != "10.0.0.1:1234" {
		t.Fatalf("expected remote addr, got %s", ClientIP(req))
	}
	req.Header.Set("X-Forwarded-For", " 1.2.3.4 , 5.6.7.8")
	if ClientIP(req) != "1.2.3.4" {
		t.Fatalf("expected first forwarded ip, got %s", ClientIP(req))
	}
	if ClientIP(nil) != "" {
		t.Fatal("nil request has no ip")
	}
}

func TestIntQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=3&bad=x&neg=-1", nil)
	cases := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"page", 3, false},
		{"missing", 0, false},
		{"bad", 0, true},
		{"neg", 0, true},
	}
	for _, tc := range cases {
		got, err := IntQuery(req, tc.name)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("%s: got %d, %v", tc.name, got, err)
		}
	}
	if v, err := Int64Query(req, "page"); err != nil || v != 3 {
		t.Fatalf("unexpected int64 %d %v", v, err)
	}
}

func TestPositiveID(t *testing.T) {
	if id, err := PositiveID("42"); err != nil || id != 42 {
		t.Fatalf("unexpected %d %v", id, err)
	}
	for _, bad := range []string{"0", "-3", "abc", ""} {
		if _, err := PositiveID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
