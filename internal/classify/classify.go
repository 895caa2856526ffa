// Package classify groups scanned resource records by type for display.
package classify

import "github.com/aalvaropc/domscan/internal/domain"

// View is the per-type grouping of a record set. It is derived data: build a new
// one with Classify whenever the records change.
type View struct {
	// Types holds each distinct type once, in first-occurrence order.
	Types []domain.ResourceType
	// Groups maps each type in Types to its records, in input order.
	Groups map[domain.ResourceType][]domain.ResourceRecord
}

// GroupStats counts the records of one group.
type GroupStats struct {
	Type    domain.ResourceType
	Total   int
	Valid   int
	Invalid int
}

// Classify groups records by type. Records without a type are keyed under
// UNKNOWN; unrecognized types keep their own key.
func Classify(records []domain.ResourceRecord) View {
	v := View{
		Types:  []domain.ResourceType{},
		Groups: map[domain.ResourceType][]domain.ResourceRecord{},
	}

	for _, r := range records {
		key := KeyOf(r)
		if _, seen := v.Groups[key]; !seen {
			v.Types = append(v.Types, key)
		}
		v.Groups[key] = append(v.Groups[key], r)
	}
	return v
}

// KeyOf returns the grouping key for a record.
func KeyOf(r domain.ResourceRecord) domain.ResourceType {
	if r.Type == "" {
		return domain.ResourceUnknown
	}
	return r.Type
}

// Flatten returns every record, group by group in Types order.
func (v View) Flatten() []domain.ResourceRecord {
	out := make([]domain.ResourceRecord, 0, v.Len())
	for _, t := range v.Types {
		out = append(out, v.Groups[t]...)
	}
	return out
}

// Len is the total number of records in the view.
func (v View) Len() int {
	n := 0
	for _, g := range v.Groups {
		n += len(g)
	}
	return n
}

// Group returns the records of type t, or nil.
func (v View) Group(t domain.ResourceType) []domain.ResourceRecord {
	return v.Groups[t]
}

// Summary returns per-type counts in Types order.
func (v View) Summary() []GroupStats {
	out := make([]GroupStats, 0, len(v.Types))
	for _, t := range v.Types {
		s := GroupStats{Type: t}
		for _, r := range v.Groups[t] {
			s.Total++
			if r.IsValid {
				s.Valid++
			} else {
				s.Invalid++
			}
		}
		out = append(out, s)
	}
	return out
}
