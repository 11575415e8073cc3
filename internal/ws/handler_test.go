package ws

import (
	"net/http/httptest"
	"testing"
)

func TestOriginChecker(t *testing.T) {
	cases := []struct {
		name   string
		allow  []string
		origin string
		want   bool
	}{
		{"wildcard", []string{"*"}, "https://evil.example", true},
		{"listed", []string{"https://app.example/"}, "https://APP.example", true},
		{"unlisted", []string{"https://app.example"}, "https://evil.example", false},
		{"no origin header", []string{"https://app.example"}, "", true},
		{"empty list", nil, "https://app.example", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws/posts", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if got := originChecker(tc.allow)(req); got != tc.want {
				t.Fatalf("origin %q with %v: got %v want %v", tc.origin, tc.allow, got, tc.want)
			}
		})
	}
}
