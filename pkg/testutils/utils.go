// Package testutils has helpers shared by tests across packages.
package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/pkg/models"
)

// NewTestConfig returns the default config pointed at serverURL.
func NewTestConfig(serverURL string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.NLP.ServerURL = serverURL
	return cfg
}

// FakeNLPServer stands in for the entity analysis service. It labels every
// occurrence of a gazetteer entry, longest match first.
type FakeNLPServer struct {
	*httptest.Server
	gazetteer map[string]string
	keys      [][]rune
	requests  atomic.Int64
}

func NewFakeNLPServer(t testing.TB, gazetteer map[string]string) *FakeNLPServer {
	t.Helper()
	f := &FakeNLPServer{gazetteer: gazetteer}
	for k := range gazetteer {
		f.keys = append(f.keys, []rune(k))
	}
	sort.Slice(f.keys, func(i, j int) bool { return len(f.keys[i]) > len(f.keys[j]) })

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", f.handleAnalyze)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "model": "gazetteer"})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// Requests is the number of /analyze calls served.
func (f *FakeNLPServer) Requests() int64 {
	return f.requests.Load()
}

func (f *FakeNLPServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, f.Annotate(req.Text))
}

// Annotate returns what the fake service replies for text. Offsets are in
// code points.
func (f *FakeNLPServer) Annotate(text string) models.AnalyzeResponse {
	runes := []rune(text)
	response := models.AnalyzeResponse{Entities: []models.Entity{}, Counts: models.Counts{}}

	for i := 0; i < len(runes); {
		key := f.match(runes[i:])
		if key == nil {
			i++
			continue
		}
		e := models.Entity{
			Text:  string(key),
			Label: f.gazetteer[string(key)],
			Start: i,
			End:   i + len(key),
		}
		response.Entities = append(response.Entities, e)
		response.Counts[e.Label]++
		i = e.End
	}

	return response
}

func (f *FakeNLPServer) match(runes []rune) []rune {
	for _, key := range f.keys {
		if len(key) > len(runes) {
			continue
		}
		if string(runes[:len(key)]) == string(key) {
			return key
		}
	}
	return nil
}

// NewStaticNLPServer answers /analyze with status and body verbatim.
func NewStaticNLPServer(t testing.TB, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
