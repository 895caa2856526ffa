package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aalvaropc/domscan/internal/domain"
)

// opaqueID accepts ids encoded as JSON strings or numbers.
type opaqueID string

func (id *opaqueID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = opaqueID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = opaqueID(n.String())
	return nil
}

type domainDTO struct {
	ID     opaqueID `json:"id"`
	Domain string   `json:"domain"`
}

func (d domainDTO) toDomain() domain.DomainEntry {
	return domain.DomainEntry{ID: string(d.ID), Name: d.Domain}
}

type domainBody struct {
	Domain string `json:"domain"`
}

type recordDTO struct {
	Type    *string `json:"type"`
	URL     string  `json:"url"`
	IsValid bool    `json:"isValid"`
}

func (r recordDTO) toDomain() domain.ResourceRecord {
	out := domain.ResourceRecord{URL: r.URL, IsValid: r.IsValid}
	if r.Type != nil {
		out.Type = domain.ResourceType(*r.Type)
	}
	return out
}

func toRecords(in []recordDTO) []domain.ResourceRecord {
	out := make([]domain.ResourceRecord, 0, len(in))
	for _, r := range in {
		out = append(out, r.toDomain())
	}
	return out
}

// scanData is the data member of GET /scan. A single-URL scan answers with a
// bare array while a domain sync answers with an object; both shapes are read.
type scanData struct {
	Requests     []recordDTO
	InvalidLinks []string
}

func (s *scanData) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &s.Requests)
	}
	var obj struct {
		Requests     []recordDTO `json:"requests"`
		InvalidLinks []string    `json:"invalidLinks"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.Requests = obj.Requests
	s.InvalidLinks = obj.InvalidLinks
	return nil
}

type sitemapData struct {
	Domains []string `json:"domains"`
}
