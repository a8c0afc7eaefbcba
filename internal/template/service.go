// Package template loads cell templates referenced by URL.
//
// A template is fetched once, in the background, the first time a cell asks
// for it. Until it arrives the cell renders nothing; when it does, every
// cell that asked is called back through the service's post function,
// which must run the callback on the UI goroutine.
package template

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"
)

// DefaultTimeout bounds an HTTP template fetch.
const DefaultTimeout = 10 * time.Second

// maxTemplateSize caps how much of a response body is read.
const maxTemplateSize = 1 << 20

type entryState uint8

const (
	stateLoading entryState = iota
	stateReady
	stateFailed
)

type entry struct {
	state   entryState
	content string
	waiters []func()
}

// Service fetches and caches templates from a filesystem or over HTTP.
type Service struct {
	fs      afero.Fs
	baseDir string
	client  *http.Client
	timeout time.Duration
	post    func(func())
	logger  *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
	wg      conc.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithFs sets the filesystem relative URLs are read from.
func WithFs(fs afero.Fs) Option {
	return func(s *Service) { s.fs = fs }
}

// WithBaseDir sets the directory relative URLs are resolved against.
func WithBaseDir(dir string) Option {
	return func(s *Service) { s.baseDir = dir }
}

// WithHTTPClient sets the client used for http and https URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithTimeout sets the HTTP fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithPost sets the function used to run ready callbacks. The default runs
// them directly on the fetching goroutine.
func WithPost(post func(func())) Option {
	return func(s *Service) { s.post = post }
}

// WithLogger sets the logger for failed fetches.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a template service reading from the OS filesystem.
func New(opts ...Option) *Service {
	s := &Service{
		fs:      afero.NewOsFs(),
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		post:    func(fn func()) { fn() },
		logger:  logging.NopLogger(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Template returns the template for url if it has been loaded. Otherwise it
// starts loading it, if that is not already under way, and arranges for
// onReady to be posted once it is available. Templates that failed to load
// are not retried. After Close, templates not yet loaded stay unavailable.
func (s *Service) Template(url string, onReady func()) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[url]
	if !ok {
		if s.closed {
			return "", false
		}
		e = &entry{state: stateLoading}
		s.entries[url] = e
		s.wg.Go(func() { s.load(url) })
	}

	switch e.state {
	case stateReady:
		return e.content, true
	case stateLoading:
		if onReady != nil {
			e.waiters = append(e.waiters, onReady)
		}
	}
	return "", false
}

func (s *Service) load(url string) {
	content, err := s.fetch(url)

	s.mu.Lock()
	e := s.entries[url]
	waiters := e.waiters
	e.waiters = nil
	if err != nil {
		e.state = stateFailed
	} else {
		e.state = stateReady
		e.content = content
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.LogError("template unavailable", err, "url", url)
		return
	}
	for _, fn := range waiters {
		s.post(fn)
	}
}

func (s *Service) fetch(url string) (string, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return s.fetchHTTP(url)
	}
	path := url
	if s.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errors.NewNotFoundError("template", url).WithCause(errors.ErrTemplateUnavailable)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTemplateUnavailable, err)
	}
	return string(data), nil
}

func (s *Service) fetchHTTP(url string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTemplateUnavailable, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTemplateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errors.NewNotFoundError("template", url).WithCause(errors.ErrTemplateUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", errors.ErrTemplateUnavailable, url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTemplateUnavailable, err)
	}
	return string(body), nil
}

// Wait blocks until every fetch started so far has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close cancels fetches still in flight, waits for them to return and stops
// new ones from starting. Cancelled fetches count as failed.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
