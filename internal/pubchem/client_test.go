package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
)

// aspirinWeight is a real PUG REST response for a single property lookup.
const aspirinWeight = `{
  "PropertyTable": {
    "Properties": [
      {
        "CID": 2244,
        "MolecularWeight": "180.16"
      }
    ]
  }
}`

const notFoundFault = `{
  "Fault": {
    "Code": "PUGREST.NotFound",
    "Message": "No CID found",
    "Details": ["No CID found that matches the given name"]
  }
}`

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(config.PubChemConfig{
		BaseURL:   srv.URL + "/rest/pug/",
		Timeout:   5 * time.Second,
		UserAgent: "drug-analyzer-test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestClient_Property(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(aspirinWeight))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	v, err := c.Property(context.Background(), "aspirin", "MolecularWeight")
	if err != nil {
		t.Fatalf("Property() error = %v", err)
	}
	if v != "180.16" {
		t.Errorf("Property() = %#v, want %q", v, "180.16")
	}
	if gotPath != "/rest/pug/compound/name/aspirin/property/MolecularWeight/JSON" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotUA != "drug-analyzer-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestClient_Property_NumberKeepsLiteral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"CID":2244,"XLogP":1.2}]}}`))
	}))
	defer srv.Close()

	v, err := newTestClient(t, srv).Property(context.Background(), "aspirin", "XLogP")
	if err != nil {
		t.Fatalf("Property() error = %v", err)
	}
	n, ok := v.(json.Number)
	if !ok || n.String() != "1.2" {
		t.Errorf("Property() = %#v, want json.Number(1.2)", v)
	}
}

func TestClient_Property_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundFault))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Property(context.Background(), "notadrug", "Title")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", se.Code)
	}
	if se.Fault != "No CID found" {
		t.Errorf("Fault = %q", se.Fault)
	}
}

func TestClient_Property_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"PropertyTable":`},
		{"empty properties", `{"PropertyTable":{"Properties":[]}}`},
		{"missing key", `{"PropertyTable":{"Properties":[{"CID":2244}]}}`},
		{"nested value", `{"PropertyTable":{"Properties":[{"TPSA":{"x":1}}]}}`},
		{"unrelated body", `{"Waiting":{"ListKey":"123"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).Property(context.Background(), "aspirin", "TPSA")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestClient_Property_ConnectFailure(t *testing.T) {
	c, err := New(config.PubChemConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = c.Property(context.Background(), "aspirin", "Title")
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
	var se *StatusError
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) {
		t.Errorf("transport failure misclassified: %v", err)
	}
}

func TestPropertyURL_EscapesCompound(t *testing.T) {
	c, _ := New(config.PubChemConfig{BaseURL: config.DefaultBaseURL, Timeout: time.Second})
	got := c.PropertyURL("acetylsalicylic acid", "Title")
	want := config.DefaultBaseURL + "/compound/name/acetylsalicylic%20acid/property/Title/JSON"
	if got != want {
		t.Errorf("PropertyURL() = %q, want %q", got, want)
	}
}

func TestClient_Wait_PacesRequests(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &Client{interval: 20 * time.Millisecond, now: func() time.Time { return clock }}

	// First call never waits.
	if err := c.wait(context.Background()); err != nil {
		t.Fatalf("wait() error = %v", err)
	}

	// Clock frozen: the next call must wait out the full interval, so a
	// cancelled context surfaces instead.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("wait() with cancelled ctx = %v, want context.Canceled", err)
	}

	// Once the interval has passed there is nothing to wait for.
	clock = clock.Add(time.Second)
	if err := c.wait(ctx); err != nil {
		t.Errorf("wait() after interval = %v, want nil", err)
	}
}
