package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/ucapi/history"
	"github.com/nerrad567/ucapi/internal/infrastructure/config"
	"github.com/nerrad567/ucapi/internal/infrastructure/influxdb"
	"github.com/nerrad567/ucapi/intg"
)

// fakeInflux answers /ping and records the bodies posted to /api/v2/write.
type fakeInflux struct {
	*httptest.Server

	mu     sync.Mutex
	writes []string
	query  string
	status int
}

func newFakeInflux(t *testing.T, writeStatus int) *fakeInflux {
	t.Helper()
	f := &fakeInflux{status: writeStatus}
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/v2/write", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body) //nolint:errcheck // Test server
		f.mu.Lock()
		f.writes = append(f.writes, string(body))
		f.query = r.URL.RawQuery
		f.mu.Unlock()
		if f.status != http.StatusNoContent {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			io.WriteString(w, `{"code":"invalid","message":"bad point"}`) //nolint:errcheck // Test server
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeInflux) body() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.writes, "")
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "test-token",
		Org:           "ucapi",
		Bucket:        "entity_changes",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestConnect(t *testing.T) {
	srv := newFakeInflux(t, http.StatusNoContent)

	client, err := influxdb.Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:8086")
	cfg.Enabled = false

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := influxdb.Connect(context.Background(), testConfig(url))
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_DefaultBatchSettings(t *testing.T) {
	srv := newFakeInflux(t, http.StatusNoContent)
	cfg := testConfig(srv.URL)
	cfg.BatchSize = -5
	cfg.FlushInterval = 0

	client, err := influxdb.Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()
}

func TestWritePoint(t *testing.T) {
	srv := newFakeInflux(t, http.StatusNoContent)

	client, err := influxdb.Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	rec := history.NewRecorder(client)
	err = rec.RecordAt(intg.EntityChange{
		EntityType: "switch",
		EntityID:   "plug-1",
		Attributes: map[string]any{"state": "ON"},
	}, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("RecordAt() error = %v", err)
	}
	client.Flush()

	waitFor(t, func() bool { return srv.body() != "" })
	body := srv.body()
	if !strings.HasPrefix(body, "entity_change,") || !strings.Contains(body, `state="ON"`) {
		t.Errorf("written body = %q", body)
	}
	srv.mu.Lock()
	query := srv.query
	srv.mu.Unlock()
	if !strings.Contains(query, "bucket=entity_changes") || !strings.Contains(query, "org=ucapi") {
		t.Errorf("write query = %q", query)
	}
}

func TestWritePoint_ErrorCallback(t *testing.T) {
	srv := newFakeInflux(t, http.StatusBadRequest)

	client, err := influxdb.Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	var mu sync.Mutex
	var writeErr error
	client.SetOnError(func(err error) {
		mu.Lock()
		writeErr = err
		mu.Unlock()
	})

	rec := history.NewRecorder(client)
	if err := rec.Record(intg.EntityChange{
		EntityType: "sensor",
		EntityID:   "temp",
		Attributes: map[string]any{"value": 21.5},
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	client.Flush()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return writeErr != nil
	})
	mu.Lock()
	defer mu.Unlock()
	if !errors.Is(writeErr, influxdb.ErrWriteFailed) {
		t.Errorf("callback error = %v, want ErrWriteFailed", writeErr)
	}
}

func TestClose(t *testing.T) {
	srv := newFakeInflux(t, http.StatusNoContent)

	client, err := influxdb.Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}

	// Writes and flushes after Close are dropped.
	client.Flush()
}
