package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/domscan/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

const genericMessage = "Unexpected error (see logs)"

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return genericMessage
	}

	switch oe.Kind {
	case domain.KindValidation:
		switch {
		case errors.Is(err, domain.ErrEmptyDomain):
			return "Domain is required"
		case errors.Is(err, domain.ErrInvalidDomain):
			return "Invalid domain name"
		case errors.Is(err, domain.ErrIndexOutOfRange):
			return "No domain selected"
		}
		return "Invalid input"

	case domain.KindDuplicate:
		return "Domain already registered"

	case domain.KindBusy:
		return "Another operation is in progress"

	case domain.KindRemote:
		if msg := remoteMessage(err); msg != "" {
			return "Server rejected the request: " + msg
		}
		return "Server rejected the request"

	case domain.KindFetch:
		if msg := remoteMessage(err); msg != "" {
			return "Could not load data: " + msg
		}
		switch domain.ClassifyTransportError(err) {
		case domain.TransportTimeout:
			return "Request timed out"
		case domain.TransportDNS:
			return "Cannot resolve API host"
		case domain.TransportConn:
			return "Cannot reach the API"
		}
		return "Could not load data"

	case domain.KindNotFound:
		return "Not found"

	case domain.KindInvalidConfig:
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML at " + base + " line " + line
		}
		if looksLikeYAMLProblem(err.Error()) {
			return "Invalid YAML at " + base
		}
		return "Invalid config"
	}
	return genericMessage
}

func remoteMessage(err error) string {
	var rse *domain.RemoteStatusError
	if errors.As(err, &rse) {
		return strings.TrimSpace(rse.Message)
	}
	return ""
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
