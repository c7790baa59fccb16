package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPICSPConfig(t *testing.T) {
	got := APICSPConfig().BuildCSPHeader()
	want := "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"
	if got != want {
		t.Errorf("BuildCSPHeader() = %q, want %q", got, want)
	}
}

func TestBuildCSPHeader(t *testing.T) {
	tests := []struct {
		name string
		cfg  CSPConfig
		want string
	}{
		{"empty", CSPConfig{}, ""},
		{"single", CSPConfig{DefaultSrc: []string{"'self'"}}, "default-src 'self'"},
		{
			"connect",
			CSPConfig{DefaultSrc: []string{"'self'"}, ConnectSrc: []string{"'self'", "ws:"}},
			"default-src 'self'; connect-src 'self' ws:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BuildCSPHeader(); got != tt.want {
				t.Errorf("BuildCSPHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(APICSPConfig(), okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": APICSPConfig().BuildCSPHeader(),
	}
	for name, want := range headers {
		if got := w.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestSecurityHeadersWithoutCSP(t *testing.T) {
	handler := SecurityHeaders(CSPConfig{}, okHandler())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, ok := w.Header()["Content-Security-Policy"]; ok {
		t.Error("empty CSP config should not set the header")
	}
}

func TestSanitizeUserInput(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  Alma 3:16  ", "Alma 3:16"},
		{"Alma\x00 3:16", "Alma 3:16"},
		{"Alma\x1b[31m 5", "Alma[31m 5"},
		{"a\tb\nc", "a\tb\nc"},
		{"del\x7f", "del"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeUserInput(tt.input); got != tt.want {
			t.Errorf("SanitizeUserInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLimitStringLength(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncate me", 8, "truncate"},
		{"Alma 3–4", 7, "Alma 3"},
		{"Alma 3–4", 8, "Alma 3"},
		{"Alma 3–4", 9, "Alma 3–"},
	}
	for _, tt := range tests {
		if got := LimitStringLength(tt.input, tt.max); got != tt.want {
			t.Errorf("LimitStringLength(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}
