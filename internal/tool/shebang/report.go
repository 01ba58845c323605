package shebang

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formats lists the supported report formats.
var Formats = []string{FormatText, FormatJSON, FormatTable}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// reportEntry is the JSON shape of one table row.
type reportEntry struct {
	Count   int    `json:"count"`
	Shebang string `json:"shebang"`
}

// WriteReport writes table to w in the requested format.
//
// The text format prints "<count> <line>" per entry. The line keeps its own
// terminator, so entries are separated by a blank line.
func WriteReport(w io.Writer, ft FrequencyTable, format string) error {
	entries := ft.Entries()

	switch format {
	case FormatText:
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%d %s\n", e.Count, e.Line); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		out := make([]reportEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, reportEntry{Count: e.Count, Shebang: trimTerminator(e.Line)})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case FormatTable:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("COUNT", "SHEBANG").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, e := range entries {
			t.Row(strconv.Itoa(e.Count), trimTerminator(e.Line))
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}

	return &UnknownFormatError{Format: format}
}

func trimTerminator(line string) string {
	return strings.TrimSuffix(line, "\n")
}
