package availclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hotelavail/internal/adapters/availclient"
)

const testDoc = `<AvailRQ><SearchType>Single</SearchType></AvailRQ>`

func TestClient_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/availability" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != testDoc {
			t.Errorf("document not forwarded intact: %s", body)
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_, _ = w.Write([]byte(`[{"id":"A#1"}]`))
		}
	}))
	defer ts.Close()

	cl, err := availclient.New(ts.URL, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.Availability(ctx, []byte(testDoc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != `[{"id":"A#1"}]` {
		t.Fatalf("unexpected payload: %s", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_ViolationBodyPassesThrough(t *testing.T) {
	// validation failures are 200s with an error object; the client must not
	// treat them as transport errors
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"error":"OptionsQuota must be no greater than 50."}`))
	}))
	defer ts.Close()

	cl, err := availclient.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := cl.Availability(context.Background(), []byte(testDoc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(string(got), "OptionsQuota") {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestClient_MalformedDocumentRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"title":"Bad Request","status":400}`))
	}))
	defer ts.Close()

	cl, err := availclient.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.Availability(context.Background(), []byte("not xml"))
	if !errors.Is(err, availclient.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestClient_RequiresBaseURL(t *testing.T) {
	if _, err := availclient.New("", 5); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
