package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/aalvaropc/domscan/internal/domain"
)

// RequestSpec describes one call against the JSON API.
type RequestSpec struct {
	Method  string
	BaseURL string
	Path    string
	Query   url.Values
	Headers map[string]string
	// JSON is marshalled as the request body when non-nil.
	JSON any
}

// BuildRequest builds an HTTP request from a RequestSpec. Every request carries
// an X-Request-ID so client and server logs can be correlated.
func BuildRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	if strings.TrimSpace(spec.BaseURL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(strings.TrimRight(spec.BaseURL, "/") + "/" + strings.TrimLeft(spec.Path, "/"))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: spec.BaseURL,
			Err:  err,
		}
	}
	if len(spec.Query) > 0 {
		u.RawQuery = spec.Query.Encode()
	}

	bodyReader := bytes.NewReader(nil)
	contentType := ""
	if spec.JSON != nil {
		payload, err := json.Marshal(spec.JSON)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "httpclient.build",
				Kind: domain.KindExecution,
				Err:  err,
			}
		}
		bodyReader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: u.String(),
			Err:  err,
		}
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	return req, nil
}

const HeaderRequestID = "X-Request-ID"
