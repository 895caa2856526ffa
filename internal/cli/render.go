package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
)

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDomains(w io.Writer, entries []domain.DomainEntry, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "(no domains registered)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tDOMAIN")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, e.ID, e.Name)
	}
	return tw.Flush()
}

type resultOutput struct {
	Target       string
	CompletedAt  *time.Time
	InvalidLinks []string
}

type groupJSON struct {
	Type    domain.ResourceType     `json:"type"`
	Title   string                  `json:"title"`
	Icon    string                  `json:"icon"`
	Valid   int                     `json:"valid"`
	Invalid int                     `json:"invalid"`
	Records []domain.ResourceRecord `json:"records"`
}

// printResult renders a grouped view. Invalid links are printed only when the
// output carries them (sync), never for a plain scan.
func printResult(w io.Writer, out resultOutput, view classify.View, format string) error {
	switch format {
	case "json":
		groups := make([]groupJSON, 0, len(view.Types))
		for _, st := range view.Summary() {
			meta := classify.DisplayMeta(st.Type)
			groups = append(groups, groupJSON{
				Type:    st.Type,
				Title:   meta.Title,
				Icon:    meta.Icon,
				Valid:   st.Valid,
				Invalid: st.Invalid,
				Records: view.Group(st.Type),
			})
		}
		payload := map[string]any{
			"target": out.Target,
			"total":  view.Len(),
			"groups": groups,
		}
		if out.CompletedAt != nil {
			payload["completed_at"] = out.CompletedAt.UTC()
			links := out.InvalidLinks
			if links == nil {
				links = []string{}
			}
			payload["invalid_links"] = links
		}
		return writeJSON(w, payload)

	case "pretty", "":
		fmt.Fprintf(w, "Target:    %s\n", out.Target)
		if out.CompletedAt != nil {
			fmt.Fprintf(w, "Completed: %s\n", out.CompletedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(w, "Resources: %d\n", view.Len())

		for _, st := range view.Summary() {
			meta := classify.DisplayMeta(st.Type)
			fmt.Fprintf(w, "\n%s %s (%d, %d invalid)\n", meta.Icon, meta.Title, st.Total, st.Invalid)
			for _, r := range view.Group(st.Type) {
				mark := "✓"
				if !r.IsValid {
					mark = "✗"
				}
				fmt.Fprintf(w, "  %s %s\n", mark, r.URL)
			}
		}

		if out.CompletedAt != nil {
			fmt.Fprintf(w, "\nInvalid links (%d)\n", len(out.InvalidLinks))
			for _, l := range out.InvalidLinks {
				fmt.Fprintf(w, "  - %s\n", l)
			}
		}
		return nil

	default:
		return checkFormat(format)
	}
}

func printDiscovered(w io.Writer, found []domain.DiscoveredDomain, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, found)
	}

	if len(found) == 0 {
		fmt.Fprintln(w, "(no domains found)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tREGISTRABLE\tREGISTERED")
	for _, d := range found {
		reg := "no"
		if d.Registered {
			reg = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Registrable, reg)
	}
	return tw.Flush()
}
