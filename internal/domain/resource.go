package domain

import "time"

// ResourceType tags a crawled resource. Values outside the known constants are
// legal and are kept as-is.
type ResourceType string

const (
	ResourceImage   ResourceType = "IMAGE"
	ResourceJS      ResourceType = "JS"
	ResourceCSS     ResourceType = "CSS"
	ResourceAPI     ResourceType = "API"
	ResourceOther   ResourceType = "OTHER"
	ResourceUnknown ResourceType = "UNKNOWN"
)

// KnownResourceTypes lists the kinds the crawler is documented to emit.
var KnownResourceTypes = []ResourceType{
	ResourceImage,
	ResourceJS,
	ResourceCSS,
	ResourceAPI,
	ResourceOther,
}

// IsKnown reports whether t is one of KnownResourceTypes.
func (t ResourceType) IsKnown() bool {
	for _, k := range KnownResourceTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ResourceRecord is one crawled artifact. Records are never mutated after decoding.
type ResourceRecord struct {
	Type    ResourceType `json:"type"`
	URL     string       `json:"url"`
	IsValid bool         `json:"isValid"`
}

// SyncResult is the raw payload of a per-domain sync.
type SyncResult struct {
	Requests     []ResourceRecord `json:"requests"`
	InvalidLinks []string         `json:"invalidLinks"`
}

// SyncReport is a completed sync recorded with the domain it belongs to.
// The grouped view is derived from Records on demand and never stored.
type SyncReport struct {
	Domain       string           `json:"domain"`
	Records      []ResourceRecord `json:"records"`
	InvalidLinks []string         `json:"invalid_links"`
	CompletedAt  time.Time        `json:"completed_at"`

	// SavedAs is the report store id, set only when the report was persisted.
	SavedAs string `json:"-"`
}
