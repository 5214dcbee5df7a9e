package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"regrep/pkg/grep"
)

func newTestServer() *Server {
	cfg := grep.DefaultConfig()
	cfg.Workers = 2
	return New(cfg)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCompileEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/compile", `{"pattern":"(a|b)*c"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Pattern  string `json:"pattern"`
		States   int    `json:"states"`
		Alphabet string `json:"alphabet"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.States < 1 {
		t.Errorf("states = %d, want >= 1", resp.States)
	}
	if resp.Alphabet != "abc" {
		t.Errorf("alphabet = %q, want \"abc\"", resp.Alphabet)
	}
}

func TestCompileEndpointRejectsBadPattern(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/compile", `{"pattern":"(a"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "parentheses") {
		t.Errorf("error body %q does not explain the failure", rec.Body.String())
	}
}

func TestMatchEndpoint(t *testing.T) {
	body := `{"pattern":"(you)|(us)","lines":["Are you nobody, too?","How dreary to be somebody!"]}`
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/match", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []bool   `json:"results"`
		Matched []string `json:"matched"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[0] || resp.Results[1] {
		t.Errorf("results = %v, want [true false]", resp.Results)
	}
	if len(resp.Matched) != 1 || resp.Matched[0] != "Are you nobody, too?" {
		t.Errorf("matched = %v", resp.Matched)
	}
}

func TestMatchEndpointIgnoreCase(t *testing.T) {
	body := `{"pattern":"rUsT","ignore_case":true,"lines":["Trust me.","nope"]}`
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/match", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []bool `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[0] || resp.Results[1] {
		t.Errorf("results = %v, want [true false]", resp.Results)
	}
}
