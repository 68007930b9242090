package linstor

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// fakeController is a scripted controller REST endpoint.
type fakeController struct {
	t       *testing.T
	router  *mux.Router
	server  *httptest.Server
	version string

	mu       sync.Mutex
	hits     map[string]int
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

func newFakeController(t *testing.T, version string) *fakeController {
	t.Helper()
	fc := newFakeRouter(t, version)
	fc.server = httptest.NewServer(fc.router)
	t.Cleanup(fc.server.Close)
	return fc
}

func newFakeTLSController(t *testing.T, version string) *fakeController {
	t.Helper()
	fc := newFakeRouter(t, version)
	fc.server = httptest.NewTLSServer(fc.router)
	t.Cleanup(fc.server.Close)
	return fc
}

func newFakeRouter(t *testing.T, version string) *fakeController {
	fc := &fakeController{
		t:       t,
		router:  mux.NewRouter(),
		version: version,
		hits:    map[string]int{},
	}
	fc.router.Use(fc.record)
	fc.router.HandleFunc("/v1/controller/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version":          "1.4.2",
			"git_hash":         "abc123",
			"build_time":       "2020-01-01T00:00:00",
			"rest_api_version": fc.version,
		})
	}).Methods(http.MethodGet)
	return fc
}

func (fc *fakeController) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		fc.mu.Lock()
		fc.hits[r.URL.Path]++
		fc.requests = append(fc.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		fc.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (fc *fakeController) handle(path string, h http.HandlerFunc, methods ...string) {
	route := fc.router.HandleFunc(path, h)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

// reply answers path with a fixed JSON payload.
func (fc *fakeController) reply(path string, status int, payload any) {
	fc.handle(path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, payload)
	})
}

func (fc *fakeController) uri() string {
	return "linstor://" + fc.server.Listener.Addr().String()
}

func (fc *fakeController) port() string {
	_, port, _ := net.SplitHostPort(fc.server.Listener.Addr().String())
	return port
}

func (fc *fakeController) hitCount(path string) int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.hits[path]
}

// lastRequest returns the most recent request to path.
func (fc *fakeController) lastRequest(path string) recordedRequest {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for i := len(fc.requests) - 1; i >= 0; i-- {
		if fc.requests[i].Path == path {
			return fc.requests[i]
		}
	}
	fc.t.Fatalf("no request to %s recorded", path)
	return recordedRequest{}
}

func (fc *fakeController) allRequests() []recordedRequest {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]recordedRequest(nil), fc.requests...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeGzipJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_ = json.NewEncoder(zw).Encode(payload)
	_ = zw.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// hangUp drops the connection without writing a response.
func hangUp(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	_ = conn.Close()
}

// closedAddress returns a local address nothing listens on.
func closedAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func decodeJSONBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("request body %q is not a json object: %v", strings.TrimSpace(string(body)), err)
	}
	return m
}

func statusReply(retCode int64, msg string) map[string]any {
	return map[string]any{"ret_code": retCode, "message": msg}
}
