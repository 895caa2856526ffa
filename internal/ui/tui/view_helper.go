package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/domscan/internal/classify"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// renderResults lists the groups of view in type order. links is nil for a
// plain scan, which has no invalid-link section.
func renderResults(t Theme, view classify.View, links *[]string) string {
	var b strings.Builder

	if view.Len() == 0 {
		b.WriteString(t.Subtitle.Render("No resources found."))
		b.WriteString("\n")
	}

	for i, st := range view.Summary() {
		if i > 0 {
			b.WriteString("\n")
		}
		meta := classify.DisplayMeta(st.Type)
		b.WriteString(t.Title.Render(fmt.Sprintf("%s %s", meta.Icon, meta.Title)))
		b.WriteString(t.Subtitle.Render(fmt.Sprintf("  %d total, %d invalid", st.Total, st.Invalid)))
		b.WriteString("\n")

		for _, r := range view.Group(st.Type) {
			if r.IsValid {
				b.WriteString("  " + t.Valid.Render("✓") + " " + r.URL + "\n")
			} else {
				b.WriteString("  " + t.Invalid.Render("✗") + " " + r.URL + "\n")
			}
		}
	}

	if links != nil {
		b.WriteString("\n")
		b.WriteString(t.Title.Render(fmt.Sprintf("Invalid links (%d)", len(*links))))
		b.WriteString("\n")
		for _, l := range *links {
			b.WriteString("  " + t.Invalid.Render("-") + " " + l + "\n")
		}
	}
	return b.String()
}
