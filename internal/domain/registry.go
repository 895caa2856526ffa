package domain

// DomainEntry is one registered domain as known by the remote registry.
// ID is assigned by the remote service and never changes; Name is mutable.
type DomainEntry struct {
	ID   string `json:"id"`
	Name string `json:"domain"`
}

// DiscoveredDomain is a candidate returned by sitemap discovery.
type DiscoveredDomain struct {
	Name        string `json:"domain"`
	Registrable string `json:"registrable"`
	Registered  bool   `json:"registered"`
}

// FindByName returns the index of the entry whose name matches exactly, or -1.
func FindByName(entries []DomainEntry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// FindByID returns the index of the entry with the given id, or -1.
func FindByID(entries []DomainEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
