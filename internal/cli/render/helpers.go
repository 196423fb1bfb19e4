package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatSuccess prefixes message with a green check
func FormatSuccess(message string) string {
	return color.GreenString("✅ %s", message)
}

// FormatWarning prefixes message with a yellow warning sign
func FormatWarning(message string) string {
	return color.YellowString("⚠️  %s", message)
}

// FormatError renders a command error for stderr. Continuation lines
// (available keys, hints) are indented under the first.
func FormatError(err error) string {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	lines[0] = color.RedString("Error: %s", lines[0])
	return strings.Join(lines, "\n       ")
}

// displayPath shortens path to be relative to the working directory when
// that is shorter, e.g. ../../solidity/MintMuseNFT.json
func displayPath(path string) string {
	if path == "" {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}

// newTable returns a borderless table with upper-cased, left-aligned headers
func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	style := table.StyleLight
	style.Box = table.BoxStyle{PaddingRight: "   "}
	style.Format.Header = text.FormatUpper
	style.Options = table.Options{}
	t.SetStyle(style)

	columns := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		columns = append(columns, table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft})
	}
	t.SetColumnConfigs(columns)
	t.AppendHeader(header)
	return t
}
