package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatOptions controls how pages are joined.
type FormatOptions struct {
	// PageMarkers prefixes each entry with "## Page N", N being the entry's
	// position in the output (1-based), not its source page.
	PageMarkers bool
	// Tables rewrites space-aligned column blocks as Markdown tables.
	Tables bool
}

// Format joins extracted pages into one Markdown text.
func Format(pages []PageText, opts FormatOptions) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
		if opts.Tables {
			texts[i] = transformTables(p.Text)
		}
	}
	if !opts.PageMarkers {
		return strings.Join(texts, "\n\n")
	}
	sections := make([]string, len(texts))
	for i, t := range texts {
		sections[i] = fmt.Sprintf("## Page %d\n\n%s\n", i+1, t)
	}
	return strings.Join(sections, "\n")
}

// transformTables identifies simple space-aligned tables and converts them to Markdown tables.
func transformTables(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	i := 0
	for i < len(lines) {
		// a block of lines that split into the same number (>= 2) of columns on 2+ spaces
		start := i
		cols := 0
		var block [][]string
		for i < len(lines) {
			ln := strings.TrimRight(lines[i], " ")
			if ln == "" {
				break
			}
			parts := splitBy2Spaces(ln)
			if len(parts) < 2 {
				break
			}
			if cols == 0 {
				cols = len(parts)
			}
			if len(parts) != cols {
				break
			}
			block = append(block, parts)
			i++
			if len(block) >= 50 {
				break
			}
		}
		if len(block) >= 2 {
			out = append(out, "| "+strings.Join(block[0], " | ")+" |")
			sep := make([]string, cols)
			for k := range sep {
				sep[k] = "---"
			}
			out = append(out, "| "+strings.Join(sep, " | ")+" |")
			for _, row := range block[1:] {
				out = append(out, "| "+strings.Join(row, " | ")+" |")
			}
			continue
		}
		// not a table: emit the lines consumed so far and the current one
		i = start
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n")
}

var twoPlusSpaces = regexp.MustCompile(`\s{2,}`)

func splitBy2Spaces(s string) []string {
	parts := twoPlusSpaces.Split(strings.TrimSpace(s), -1)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
