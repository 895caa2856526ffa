package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/domscan/internal/domain"
)

// Envelope fields are read with JSONPath because the API is loose about their
// types: status may be a number ("200"), a number-like string or a word ("success").
const (
	pathStatus  = "$.status"
	pathMessage = "$.message"
)

// checkEnvelope decides whether a response is an application-level success.
// A non-2xx HTTP status always fails; otherwise an envelope status, when present,
// must be a 2xx code or "success"/"ok".
func checkEnvelope(httpStatus int, body []byte) error {
	doc, parseErr := parseJSON(body)

	status, hasStatus := lookupString(doc, pathStatus)
	message, _ := lookupString(doc, pathMessage)

	if httpStatus < 200 || httpStatus > 299 {
		if message == "" && parseErr != nil {
			message = strings.TrimSpace(string(body))
		}
		return &domain.RemoteStatusError{HTTPStatus: httpStatus, Status: status, Message: message}
	}

	if hasStatus && !isSuccessStatus(status) {
		return &domain.RemoteStatusError{HTTPStatus: httpStatus, Status: status, Message: message}
	}
	return nil
}

// decodeData unmarshals the envelope's data member into out. A missing or null
// data member leaves out untouched.
func decodeData(body []byte, out any) error {
	if out == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func parseJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func lookupString(doc any, expr string) (string, bool) {
	if doc == nil {
		return "", false
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, _ := json.Marshal(t)
		return string(b), true
	}
}

func isSuccessStatus(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "success", "ok", "true":
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 200 && n <= 299
	}
	return false
}
