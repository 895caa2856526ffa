package classify

import (
	"testing"

	"github.com/aalvaropc/domscan/internal/domain"
)

func TestDisplayMeta_KnownKinds(t *testing.T) {
	cases := []struct {
		typ   domain.ResourceType
		title string
	}{
		{domain.ResourceImage, "Images"},
		{domain.ResourceJS, "JavaScript"},
		{domain.ResourceCSS, "Stylesheets"},
		{domain.ResourceAPI, "API Calls"},
		{domain.ResourceOther, "Other Resources"},
	}
	for _, c := range cases {
		m := DisplayMeta(c.typ)
		if m.Title != c.title {
			t.Errorf("DisplayMeta(%s).Title = %q, want %q", c.typ, m.Title, c.title)
		}
		if m.Icon == "" || m.Icon == fallbackIcon {
			t.Errorf("DisplayMeta(%s) expected a dedicated icon, got %q", c.typ, m.Icon)
		}
	}
}

func TestDisplayMeta_Fallback(t *testing.T) {
	m := DisplayMeta("WEIRD")
	if m.Icon != fallbackIcon {
		t.Fatalf("expected fallback icon, got %q", m.Icon)
	}
	if m.Title != "WEIRD Data" {
		t.Fatalf("expected title 'WEIRD Data', got %q", m.Title)
	}

	if got := DisplayMeta(domain.ResourceUnknown).Title; got != "UNKNOWN Data" {
		t.Fatalf("expected 'UNKNOWN Data', got %q", got)
	}
	if got := DisplayMeta("").Title; got != " Data" {
		t.Fatalf("expected lookup to stay total for empty type, got %q", got)
	}
}
