package fakeapi

import (
	"strings"

	"github.com/aalvaropc/domscan/internal/domain"
)

// cannedScan fabricates a small, deterministic result for targets without a
// configured fixture.
func cannedScan(target string) domain.SyncResult {
	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(target, "https://"), "http://"), "/")
	base := "https://" + host
	return domain.SyncResult{
		Requests: []domain.ResourceRecord{
			{Type: domain.ResourceImage, URL: base + "/static/logo.png", IsValid: true},
			{Type: domain.ResourceJS, URL: base + "/static/app.js", IsValid: true},
			{Type: domain.ResourceCSS, URL: base + "/static/site.css", IsValid: true},
			{Type: domain.ResourceImage, URL: base + "/static/hero.webp", IsValid: false},
			{Type: domain.ResourceAPI, URL: base + "/api/products?page=1", IsValid: true},
			{Type: domain.ResourceOther, URL: base + "/robots.txt", IsValid: true},
		},
		InvalidLinks: []string{
			base + "/old-catalog",
			base + "/static/hero.webp",
		},
	}
}
