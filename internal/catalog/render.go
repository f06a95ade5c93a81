package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/mindely/internal/model"
)

// Output formats accepted by Write.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// Write renders methods in the requested format. width limits table rows
// when positive.
func Write(w io.Writer, methods []model.StudyMethod, format string, width int) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable:
		for _, line := range TableLines(methods, width) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(methods); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(methods); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (use table, yaml or json)", format)
	}
}

// TableLines returns the method list as aligned text rows.
func TableLines(methods []model.StudyMethod, width int) []string {
	headers := []string{"ID", "Focus", "Break", "Toggle", "Source", "Title"}
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		focus, brk, toggle := "-", "-", "-"
		if m.HasTimer {
			focus = strconv.Itoa(m.FocusMinutes) + "m"
			brk = strconv.Itoa(m.BreakMinutes) + "m"
			toggle = "no"
			if m.ModeToggle {
				toggle = "yes"
			}
		}
		source := "built-in"
		if m.Custom {
			source = "custom"
		}
		rows = append(rows, []string{m.ID, focus, brk, toggle, source, m.Title})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true})
	if width <= 0 {
		return lines
	}
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, width, "…")
	}
	return lines
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	last := len(widths) - 1
	for i := 0; i <= last; i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == last && !rightAlignCols[i] {
			b.WriteString(cell)
			continue
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
