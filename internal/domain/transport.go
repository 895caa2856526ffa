package domain

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// TransportErrorKind is a high-level classification of transport failures.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
	TransportHTTP    TransportErrorKind = "http"
)

// ClassifyTransportError maps a client-side error to a coarse kind used in
// user-facing messages and logs.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return TransportUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TransportTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return TransportConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConn
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if strings.Contains(strings.ToLower(urlErr.Error()), "timeout") {
			return TransportTimeout
		}
		return TransportHTTP
	}

	if errors.Is(err, ErrRemoteStatus) {
		return TransportHTTP
	}
	return TransportUnknown
}
