package links

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProber_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		if r.URL.Path == "/docs/gone.md" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	prober := NewHTTPProber(2 * time.Second)

	status, err := prober.Probe(context.Background(), srv.URL+"/docs/deploy.md")
	if err != nil {
		t.Fatalf("Probe() unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Probe() status = %d, want 200", status)
	}

	status, err = prober.Probe(context.Background(), srv.URL+"/docs/gone.md")
	if err != nil {
		t.Fatalf("Probe() unexpected error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("Probe() status = %d, want 404", status)
	}
}

func TestHTTPProber_TransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	prober := NewHTTPProber(500 * time.Millisecond)
	if _, err := prober.Probe(context.Background(), srv.URL+"/docs/x.md"); err == nil {
		t.Fatal("expected error probing a closed server")
	}
}
