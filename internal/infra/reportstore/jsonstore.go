// Package reportstore writes sync reports as JSON artifacts under the
// configured reports directory.
package reportstore

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

const defaultReportsDir = "reports"
const maskValue = "********"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithMasking controls redaction of credential-like query parameters in URLs.
func WithMasking(enabled bool) Option {
	return func(s *JSONStore) { s.maskingEnabled = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Reports.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: dir,
		maskingEnabled: true,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

// Artifact is the on-disk shape of a saved report.
type Artifact struct {
	Domain       string         `json:"domain"`
	CompletedAt  time.Time      `json:"completed_at"`
	Summary      []GroupSummary `json:"summary"`
	Groups       []Group        `json:"groups"`
	InvalidLinks []string       `json:"invalid_links"`
}

type GroupSummary struct {
	Type    domain.ResourceType `json:"type"`
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
}

type Group struct {
	Type    domain.ResourceType     `json:"type"`
	Title   string                  `json:"title"`
	Records []domain.ResourceRecord `json:"records"`
}

func (s *JSONStore) Dir() string {
	return filepath.Join(s.rootDir, s.reportsDirName)
}

func (s *JSONStore) SaveReport(report domain.SyncReport) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := report.CompletedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()
	report.CompletedAt = ts

	slug := slugify(report.Domain)
	if slug == "" {
		slug = "report"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	art := buildArtifact(report)
	if s.maskingEnabled {
		art = maskArtifact(art)
	}

	b, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Write to a temp file, then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, art)
	}

	return id, nil
}

func buildArtifact(report domain.SyncReport) Artifact {
	view := classify.Classify(report.Records)

	art := Artifact{
		Domain:       report.Domain,
		CompletedAt:  report.CompletedAt,
		Summary:      make([]GroupSummary, 0, len(view.Types)),
		Groups:       make([]Group, 0, len(view.Types)),
		InvalidLinks: append([]string{}, report.InvalidLinks...),
	}
	for _, st := range view.Summary() {
		art.Summary = append(art.Summary, GroupSummary{Type: st.Type, Total: st.Total, Valid: st.Valid, Invalid: st.Invalid})
	}
	for _, t := range view.Types {
		art.Groups = append(art.Groups, Group{
			Type:    t,
			Title:   classify.DisplayMeta(t).Title,
			Records: append([]domain.ResourceRecord{}, view.Groups[t]...),
		})
	}
	return art
}

func (s *JSONStore) appendIndex(dir, id, filename string, art Artifact) error {
	type idx struct {
		ID           string    `json:"id"`
		File         string    `json:"file"`
		Domain       string    `json:"domain"`
		Records      int       `json:"records"`
		InvalidLinks int       `json:"invalid_links"`
		CompletedAt  time.Time `json:"completed_at"`
	}
	total := 0
	for _, g := range art.Groups {
		total += len(g.Records)
	}
	line, err := json.Marshal(idx{
		ID:           id,
		File:         filename,
		Domain:       art.Domain,
		Records:      total,
		InvalidLinks: len(art.InvalidLinks),
		CompletedAt:  art.CompletedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// maskArtifact redacts sensitive query parameters. Groups are copied first and
// the input is not mutated.
func maskArtifact(art Artifact) Artifact {
	out := art
	out.Groups = make([]Group, len(art.Groups))
	for i, g := range art.Groups {
		c := g
		c.Records = make([]domain.ResourceRecord, len(g.Records))
		for j, r := range g.Records {
			r.URL = maskURL(r.URL)
			c.Records[j] = r
		}
		out.Groups[i] = c
	}

	out.InvalidLinks = make([]string, len(art.InvalidLinks))
	for i, l := range art.InvalidLinks {
		out.InvalidLinks[i] = maskURL(l)
	}
	return out
}

func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	changed := false
	for k, vals := range q {
		if !isSensitiveKey(k) {
			continue
		}
		for i := range vals {
			vals[i] = maskValue
		}
		changed = true
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(strings.TrimSpace(k))
	switch kk {
	case "key", "sig", "signature", "auth", "access_token":
		return true
	}
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "api-key") ||
		strings.Contains(kk, "apikey") ||
		strings.Contains(kk, "api_key")
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
