package contents

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	pkgerrors "github.com/hmajid/pkgtop/pkg/errors"
)

const fixture = `usr/bin/foo pkg-foo
usr/share/doc/bar pkg-bar,pkg-baz,pkg-foo
/var/lib/thing pkg-baz
`

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func testFetcher() *Fetcher {
	f := NewFetcher(log.New(io.Discard))
	f.delay = time.Millisecond
	return f
}

func readAllLines(t *testing.T, s *Stream) []string {
	t.Helper()
	var lines []string
	for s.Next() {
		lines = append(lines, s.Line())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	return lines
}

func TestOpenGzip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dists/stable/main/Contents-amd64.gz", func(w http.ResponseWriter, r *http.Request) {
		w.Write(gzipBytes(t, fixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	stream, err := testFetcher().Open(context.Background(), Options{Arch: "amd64", Mirror: server.URL})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer stream.Close()

	if !strings.HasSuffix(stream.URL(), "Contents-amd64.gz") {
		t.Errorf("URL() = %q, want gz candidate", stream.URL())
	}

	lines := readAllLines(t, stream)
	if len(lines) != 3 {
		t.Fatalf("read %d lines, want 3", len(lines))
	}
	if lines[0] != "usr/bin/foo pkg-foo" {
		t.Errorf("lines[0] = %q", lines[0])
	}
}

func TestOpenFallsBackToXz(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dists/stable/main/Contents-arm64.gz", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/dists/stable/main/Contents-arm64.xz", func(w http.ResponseWriter, r *http.Request) {
		w.Write(xzBytes(t, fixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	stream, err := testFetcher().Open(context.Background(), Options{Arch: "arm64", Mirror: server.URL})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer stream.Close()

	if !strings.HasSuffix(stream.URL(), "Contents-arm64.xz") {
		t.Errorf("URL() = %q, want xz candidate", stream.URL())
	}
	if lines := readAllLines(t, stream); len(lines) != 3 {
		t.Errorf("read %d lines, want 3", len(lines))
	}
}

func TestOpenBothUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testFetcher().Open(context.Background(), Options{Arch: "mipsel", Mirror: server.URL})
	if err == nil {
		t.Fatal("Open() should fail when both candidates are missing")
	}
	if !pkgerrors.Is(err, pkgerrors.ErrCodeUnavailable) {
		t.Errorf("error code = %q, want UNAVAILABLE", pkgerrors.GetCode(err))
	}
	// The error must name both attempted locations.
	for _, want := range []string{"Contents-mipsel.gz", "Contents-mipsel.xz"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestOpenRetriesTransientFailures(t *testing.T) {
	attempts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/dists/stable/main/Contents-amd64.gz", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(gzipBytes(t, fixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	stream, err := testFetcher().Open(context.Background(), Options{Arch: "amd64", Mirror: server.URL})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer stream.Close()

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestOpenCorruptGzipFallsThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dists/stable/main/Contents-amd64.gz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not gzip"))
	})
	mux.HandleFunc("/dists/stable/main/Contents-amd64.xz", func(w http.ResponseWriter, r *http.Request) {
		w.Write(xzBytes(t, fixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	stream, err := testFetcher().Open(context.Background(), Options{Arch: "amd64", Mirror: server.URL})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer stream.Close()

	if !strings.HasSuffix(stream.URL(), ".xz") {
		t.Errorf("URL() = %q, want xz fallback after corrupt gzip", stream.URL())
	}
}

func TestOpenSetsUserAgent(t *testing.T) {
	var agent string
	mux := http.NewServeMux()
	mux.HandleFunc("/dists/stable/main/Contents-amd64.gz", func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write(gzipBytes(t, fixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	stream, err := testFetcher().Open(context.Background(), Options{Arch: "amd64", Mirror: server.URL})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	stream.Close()

	if !strings.HasPrefix(agent, "pkgtop/") {
		t.Errorf("User-Agent = %q, want pkgtop/<version>", agent)
	}
}

func TestOpenHonoursCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testFetcher().Open(ctx, Options{Arch: "amd64", Mirror: server.URL}); err == nil {
		t.Fatal("Open() should fail with cancelled context")
	}
}

func TestOpenAppliesDefaultOptions(t *testing.T) {
	opts := Options{Arch: "amd64"}
	opts.setDefaults()

	if opts.Mirror != DefaultMirror {
		t.Errorf("Mirror = %q, want %q", opts.Mirror, DefaultMirror)
	}
	if opts.Suite != DefaultSuite {
		t.Errorf("Suite = %q, want %q", opts.Suite, DefaultSuite)
	}
	if opts.Component != DefaultComponent {
		t.Errorf("Component = %q, want %q", opts.Component, DefaultComponent)
	}
}
