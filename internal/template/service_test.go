package template

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/spf13/afero"
)

// queue collects posted callbacks so the test decides when they run, the
// way the terminal host does.
type queue struct {
	mu  sync.Mutex
	fns []func()
}

func (q *queue) post(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

func (q *queue) drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func TestTemplate_FromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/tpl/price.html", []byte("<b>price</b>"), 0644); err != nil {
		t.Fatal(err)
	}

	q := &queue{}
	svc := New(WithFs(fs), WithBaseDir("/tpl"), WithPost(q.post))

	ready := 0
	if _, ok := svc.Template("price.html", func() { ready++ }); ok {
		t.Fatal("first request should not be ready")
	}
	svc.Wait()

	if ready != 0 {
		t.Fatal("callbacks must only run when posted work is drained")
	}
	if n := q.drain(); n != 1 || ready != 1 {
		t.Errorf("posted %d callbacks, ready=%d", n, ready)
	}

	got, ok := svc.Template("price.html", nil)
	if !ok || got != "<b>price</b>" {
		t.Errorf("Template() = (%q, %v)", got, ok)
	}
}

func TestTemplate_FromHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<i>remote</i>"))
	}))
	defer srv.Close()

	svc := New(WithHTTPClient(srv.Client()))

	called := false
	svc.Template(srv.URL+"/cell", func() { called = true })
	svc.Wait()

	if !called {
		t.Error("default post should run the callback")
	}
	if got, ok := svc.Template(srv.URL+"/cell", nil); !ok || got != "<i>remote</i>" {
		t.Errorf("Template() = (%q, %v)", got, ok)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestTemplate_ConcurrentRequestsShareOneFetch(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte("shared"))
	}))
	defer srv.Close()

	q := &queue{}
	svc := New(WithHTTPClient(srv.Client()), WithPost(q.post))

	url := srv.URL + "/shared"
	for range 3 {
		if _, ok := svc.Template(url, func() {}); ok {
			t.Fatal("template should still be loading")
		}
	}
	close(release)
	svc.Wait()

	if n := q.drain(); n != 3 {
		t.Errorf("posted %d callbacks, want 3", n)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestTemplate_FailureIsNotRetried(t *testing.T) {
	var logs bytes.Buffer
	q := &queue{}
	svc := New(
		WithFs(afero.NewMemMapFs()),
		WithPost(q.post),
		WithLogger(logging.New(&logs, logging.LevelWarn)),
	)

	svc.Template("missing.html", func() { t.Error("failed templates must not call back") })
	svc.Wait()
	q.drain()

	if _, ok := svc.Template("missing.html", nil); ok {
		t.Error("a failed template should stay unavailable")
	}
	svc.Wait()

	if !strings.Contains(logs.String(), "template unavailable") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
	if got := strings.Count(logs.String(), "\n"); got != 1 {
		t.Errorf("logged %d lines, want exactly one fetch attempt", got)
	}
}

func TestTemplate_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := New(WithHTTPClient(srv.Client()))
	svc.Template(srv.URL+"/x", nil)
	svc.Wait()

	if _, ok := svc.Template(srv.URL+"/x", nil); ok {
		t.Error("a 404 should not produce a template")
	}
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := New(WithFs(afero.NewMemMapFs()), WithHTTPClient(srv.Client()))
	for _, url := range []string{"missing.html", srv.URL + "/missing.html"} {
		t.Run(url, func(t *testing.T) {
			_, err := svc.fetch(url)
			if !errors.Is(err, &errors.NotFoundError{}) {
				t.Errorf("fetch() error = %v, want a NotFoundError", err)
			}
			if !errors.Is(err, errors.ErrTemplateUnavailable) {
				t.Errorf("fetch() error = %v, want ErrTemplateUnavailable", err)
			}
			if errors.GetSeverity(err) != errors.SeverityWarning {
				t.Errorf("severity = %v, want warning", errors.GetSeverity(err))
			}
		})
	}
}

func TestClose_CancelsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	q := &queue{}
	svc := New(WithHTTPClient(srv.Client()), WithTimeout(time.Minute), WithPost(q.post))
	svc.Template(srv.URL+"/slow", func() { t.Error("a cancelled fetch must not call back") })

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close() did not cancel the fetch")
	}

	if _, ok := svc.Template(srv.URL+"/other", nil); ok {
		t.Error("a closed service should not produce templates")
	}
	svc.Wait()
	if n := q.drain(); n != 0 {
		t.Errorf("posted %d callbacks after close", n)
	}
}
