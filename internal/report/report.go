// Package report turns fetched findings into the printed summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/K0NGR3SS/critfindings/internal/models"
	"github.com/pterm/pterm"
)

const (
	Header           = "Critical severity findings:"
	TruncatedWarning = "Warning: results may be incomplete"
)

type Entry struct {
	ID    models.FindingID `json:"id"`
	Title string           `json:"title"`
}

func (e Entry) String() string {
	return fmt.Sprintf("#%s %s", e.ID, e.Title)
}

// Build keeps the first finding seen for each id and sorts the result by id.
// Ids that compare equal keep their response order.
func Build(findings []models.Finding) []Entry {
	seen := make(map[string]struct{}, len(findings))
	entries := make([]Entry, 0, len(findings))

	for _, f := range findings {
		if _, ok := seen[f.ID.Value]; ok {
			continue
		}
		seen[f.ID.Value] = struct{}{}
		entries = append(entries, Entry{ID: f.ID, Title: f.Title})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID.Less(entries[j].ID)
	})
	return entries
}

// Render writes entries in the given format. Nothing is written for an empty list.
func Render(w io.Writer, format string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	switch format {
	case "", "text":
		return renderText(w, entries)
	case "table":
		return renderTable(w, entries)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "csv":
		return renderCSV(w, entries)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderText(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, entries []Entry) error {
	data := [][]string{
		{"ID", "Title"},
	}
	for _, e := range entries {
		data = append(data, []string{pterm.FgRed.Sprint("#" + e.ID.String()), e.Title})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func renderCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.ID.String(), e.Title}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
