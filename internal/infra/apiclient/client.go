// Package apiclient talks to the remote crawl API over HTTP/JSON.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/infra/httpclient"
	"github.com/aalvaropc/domscan/internal/ports"
)

// ErrResponseTooLarge reports a body cut off at the executor's size cap.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

type Client struct {
	baseURL string
	exec    *httpclient.Executor
	log     *slog.Logger
}

type Option func(*Client)

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) {
		if e != nil {
			c.exec = e
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		exec:    httpclient.NewExecutor(),
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ ports.DomainService   = (*Client)(nil)
	_ ports.ResourceScanner = (*Client)(nil)
)

func (c *Client) ListDomains(ctx context.Context) ([]domain.DomainEntry, error) {
	var data []domainDTO
	if err := c.call(ctx, "apiclient.list_domains", httpclient.RequestSpec{
		Method: http.MethodGet,
		Path:   "/domains",
	}, &data); err != nil {
		return nil, err
	}

	out := make([]domain.DomainEntry, 0, len(data))
	for _, d := range data {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) CreateDomain(ctx context.Context, name string) (domain.DomainEntry, error) {
	var data domainDTO
	if err := c.call(ctx, "apiclient.create_domain", httpclient.RequestSpec{
		Method: http.MethodPost,
		Path:   "/domains",
		JSON:   domainBody{Domain: name},
	}, &data); err != nil {
		return domain.DomainEntry{}, err
	}

	entry := data.toDomain()
	if entry.ID == "" {
		return domain.DomainEntry{}, &domain.OpError{
			Op:   "apiclient.create_domain",
			Kind: domain.KindRemote,
			Path: name,
			Err:  &domain.RemoteStatusError{HTTPStatus: http.StatusOK, Message: "response carries no id"},
		}
	}
	if entry.Name == "" {
		entry.Name = name
	}
	return entry, nil
}

func (c *Client) UpdateDomain(ctx context.Context, id string, name string) error {
	return c.call(ctx, "apiclient.update_domain", httpclient.RequestSpec{
		Method: http.MethodPut,
		Path:   "/domains/" + url.PathEscape(id),
		JSON:   domainBody{Domain: name},
	}, nil)
}

func (c *Client) DeleteDomain(ctx context.Context, id string) error {
	return c.call(ctx, "apiclient.delete_domain", httpclient.RequestSpec{
		Method: http.MethodDelete,
		Path:   "/domains/" + url.PathEscape(id),
	}, nil)
}

func (c *Client) Scan(ctx context.Context, target string) ([]domain.ResourceRecord, error) {
	var data scanData
	if err := c.call(ctx, "apiclient.scan", httpclient.RequestSpec{
		Method: http.MethodGet,
		Path:   "/scan",
		Query:  url.Values{"url": {target}},
	}, &data); err != nil {
		return nil, err
	}
	return toRecords(data.Requests), nil
}

func (c *Client) Sync(ctx context.Context, domainName string) (domain.SyncResult, error) {
	var data scanData
	if err := c.call(ctx, "apiclient.sync", httpclient.RequestSpec{
		Method: http.MethodGet,
		Path:   "/scan",
		Query:  url.Values{"url": {domainName}},
	}, &data); err != nil {
		return domain.SyncResult{}, err
	}

	links := data.InvalidLinks
	if links == nil {
		links = []string{}
	}
	return domain.SyncResult{Requests: toRecords(data.Requests), InvalidLinks: links}, nil
}

func (c *Client) Discover(ctx context.Context, rootURL string) ([]string, error) {
	var data sitemapData
	if err := c.call(ctx, "apiclient.discover", httpclient.RequestSpec{
		Method: http.MethodGet,
		Path:   "/sitemap-products",
		Query:  url.Values{"url": {rootURL}},
	}, &data); err != nil {
		return nil, err
	}
	if data.Domains == nil {
		return []string{}, nil
	}
	return data.Domains, nil
}

// call performs one request. Transport failures are KindFetch; application
// failures (bad HTTP status, envelope status, undecodable body) are KindRemote.
func (c *Client) call(ctx context.Context, op string, spec httpclient.RequestSpec, out any) error {
	spec.BaseURL = c.baseURL

	req, err := httpclient.BuildRequest(ctx, spec)
	if err != nil {
		return err
	}
	reqID := req.Header.Get(httpclient.HeaderRequestID)

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		c.log.Warn("apiclient.transport_error",
			"op", op,
			"method", req.Method,
			"url", req.URL.String(),
			"request_id", reqID,
			"kind", string(domain.ClassifyTransportError(err)),
			"err", err,
		)
		return &domain.OpError{Op: op, Kind: domain.KindFetch, Path: req.URL.Path, Err: err}
	}

	c.log.Debug("apiclient.request",
		"op", op,
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", reqID,
		"status", resp.Status,
		"duration_ms", resp.Duration.Milliseconds(),
		"body_bytes", len(resp.BodyBytes),
		"truncated", resp.Truncated,
	)

	if err := checkEnvelope(resp.Status, resp.BodyBytes); err != nil {
		c.log.Warn("apiclient.remote_error", "op", op, "request_id", reqID, "err", err)
		return &domain.OpError{Op: op, Kind: domain.KindRemote, Path: req.URL.Path, Err: err}
	}

	if resp.Truncated {
		c.log.Warn("apiclient.body_too_large", "op", op, "request_id", reqID, "limit_bytes", c.exec.MaxBodyBytes())
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindRemote,
			Path: req.URL.Path,
			Err:  fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, c.exec.MaxBodyBytes()),
		}
	}

	if err := decodeData(resp.BodyBytes, out); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindRemote, Path: req.URL.Path, Err: err}
	}
	return nil
}
