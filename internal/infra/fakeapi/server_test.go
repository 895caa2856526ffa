package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprint(n)
	}
}

func do(t *testing.T, h http.Handler, method, target string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestServer_DomainLifecycle(t *testing.T) {
	s := New(WithIDs(sequentialIDs()), WithDomains("a.com"))
	h := s.Routes()

	code, body := do(t, h, http.MethodPost, "/domains", map[string]string{"domain": "b.com"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, map[string]any{"id": "2", "domain": "b.com"}, body["data"])

	code, _ = do(t, h, http.MethodPut, "/domains/2", map[string]string{"domain": "c.com"})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, h, http.MethodDelete, "/domains/1", nil)
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, h, http.MethodGet, "/domains", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{map[string]any{"id": "2", "domain": "c.com"}}, body["data"])
}

func TestServer_RejectsInvalidAndDuplicate(t *testing.T) {
	h := New(WithDomains("a.com")).Routes()

	code, _ := do(t, h, http.MethodPost, "/domains", map[string]string{"domain": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = do(t, h, http.MethodPost, "/domains", map[string]string{"domain": "a.com"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, h, http.MethodDelete, "/domains/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_FailNextIsOneShot(t *testing.T) {
	s := New(WithIDs(sequentialIDs()), WithDomains("a.com"))
	h := s.Routes()
	s.FailNext(http.MethodPut, "/domains/{id}", http.StatusOK, "locked")

	code, body := do(t, h, http.MethodPut, "/domains/1", map[string]string{"domain": "b.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "locked", body["message"])
	assert.Equal(t, "a.com", s.Domains()[0].Name)

	code, _ = do(t, h, http.MethodPut, "/domains/1", map[string]string{"domain": "b.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "b.com", s.Domains()[0].Name)
}

func TestServer_ScanShapes(t *testing.T) {
	h := New(WithDomains("shop.example.com")).Routes()

	_, body := do(t, h, http.MethodGet, "/scan?url=shop.example.com", nil)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "registered domain answers with the sync shape")
	assert.NotEmpty(t, data["requests"])
	assert.NotEmpty(t, data["invalidLinks"])

	_, body = do(t, h, http.MethodGet, "/scan?url=https://other.example.org/page", nil)
	_, isList := body["data"].([]any)
	assert.True(t, isList, "plain url answers with a bare list")

	code, _ := do(t, h, http.MethodGet, "/scan", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_Sitemap(t *testing.T) {
	h := New(WithSitemap("https://example.com", "a.example.com", "b.example.com")).Routes()

	_, body := do(t, h, http.MethodGet, "/sitemap-products?url=https://example.com", nil)
	assert.Equal(t, map[string]any{"domains": []any{"a.example.com", "b.example.com"}}, body["data"])

	_, body = do(t, h, http.MethodGet, "/sitemap-products?url=https://unknown.example", nil)
	assert.Equal(t, map[string]any{"domains": []any{}}, body["data"])
}
