package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fcblocks/pkg/buildinfo"
	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/httputil"
	"github.com/matzehuels/fcblocks/pkg/observability"
)

// DefaultURL is the public level service endpoint.
const DefaultURL = "http://fantasticcontraption.com/retrieveLevel.php"

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second

	// maxBody caps the response size; real documents are a few kilobytes.
	maxBody = 8 << 20
)

// Mode selects whether an id names a level or a player design.
type Mode string

// Retrieval modes.
const (
	ModeLevel  Mode = "level"
	ModeDesign Mode = "design"
)

// ParseMode converts "level" or "design" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLevel, ModeDesign:
		return Mode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown mode %q (want level or design)", s)
}

// loadDesign is the value of the service's loadDesign form field.
func (m Mode) loadDesign() string {
	if m == ModeDesign {
		return "1"
	}
	return "0"
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	URL      string          // service endpoint, DefaultURL if empty
	Cache    *httputil.Cache // nil disables caching
	Timeout  time.Duration   // per-request timeout
	Attempts int             // total attempts for transient failures, including the first
	Delay    time.Duration   // initial backoff delay
	Logger   *log.Logger
}

// Client fetches documents from the level service.
type Client struct {
	http     *http.Client
	url      string
	cache    *httputil.Cache
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		url:      opts.URL,
		attempts: opts.Attempts,
		delay:    opts.Delay,
		logger:   opts.Logger,
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.http = &http.Client{Timeout: timeout}
	if c.attempts <= 0 {
		c.attempts = defaultAttempts
	}
	if c.delay <= 0 {
		c.delay = defaultDelay
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if opts.Cache != nil {
		// Entries are scoped by endpoint so a mirror never serves another
		// service's documents.
		c.cache = opts.Cache.Namespace("retrieve:" + c.url + ":")
	}
	return c
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Fetch returns the raw XML document for id. With refresh set the cache is
// bypassed but still updated. cached reports whether the document came
// from the cache.
func (c *Client) Fetch(ctx context.Context, id int, mode Mode, refresh bool) (data []byte, cached bool, err error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, false, err
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, string(mode), id)
	start := time.Now()
	defer func() {
		hooks.OnFetchComplete(ctx, string(mode), id, len(data), cached, time.Since(start), err)
	}()

	key := fmt.Sprintf("%s:%d", mode, id)
	if c.cache != nil && !refresh {
		var doc string
		if ok, _ := c.cache.Get(key, &doc); ok {
			c.logger.Debug("cache hit", "mode", mode, "id", id)
			return []byte(doc), true, nil
		}
	}

	var body []byte
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var ferr error
		body, ferr = c.post(ctx, id, mode)
		if httputil.IsRetryable(ferr) {
			c.logger.Warn("retrying fetch", "mode", mode, "id", id, "err", ferr)
		}
		return ferr
	})
	if err != nil {
		return nil, false, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, string(body)); err != nil {
			c.logger.Debug("cache write failed", "err", err)
		}
	}
	return body, false, nil
}

func (c *Client) post(ctx context.Context, id int, mode Mode) ([]byte, error) {
	form := url.Values{
		"id":         {strconv.Itoa(id)},
		"loadDesign": {mode.loadDesign()},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var nerr net.Error
		if stderrors.As(err, &nerr) && nerr.Timeout() {
			return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeTimeout, err, "post %s", c.url))
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "post %s", c.url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, mode, id); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "%s %d: empty response", mode, id)
	}
	return body, nil
}

func checkStatus(code int, mode Mode, id int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s %d not found", mode, id)
	case code == http.StatusTooManyRequests:
		return httputil.Retryable(errors.New(errors.ErrCodeRateLimited, "status %d", code))
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "status %d", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}
