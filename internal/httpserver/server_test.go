package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	cases := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "test_total 1"},
		{"/missing", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		res, err := http.Get(srv.URL + tc.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()

		if res.StatusCode != tc.wantCode {
			t.Fatalf("GET %s status = %d; want %d", tc.path, res.StatusCode, tc.wantCode)
		}
		if !strings.Contains(string(body), tc.contains) {
			t.Fatalf("GET %s body = %q; want it to contain %q", tc.path, body, tc.contains)
		}
	}
}
