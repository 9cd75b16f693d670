// Package textutil holds small text layout helpers for help output.
package textutil

import (
	"fmt"
	"io"
	"strings"
)

// Wrap splits text into lines no wider than width, breaking on whitespace. Runs of whitespace
// collapse to a single space. A word longer than width gets a line of its own.
func Wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Row is one entry of a two-column listing.
type Row struct {
	Name string
	Text string
}

// WriteColumns writes rows as an indented two-column listing. Names are padded to the widest
// name, and text is wrapped so the whole line fits in width.
func WriteColumns(w io.Writer, rows []Row, width int) {
	maxLen := 0
	for _, r := range rows {
		maxLen = max(maxLen, len(r.Name))
	}
	nameWidth := maxLen + 4
	wrapWidth := max(width-nameWidth, 20)
	indent := strings.Repeat(" ", nameWidth+2)

	for _, r := range rows {
		lines := Wrap(r.Text, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(w, "  %s\n", r.Name)
			continue
		}
		padding := strings.Repeat(" ", nameWidth-len(r.Name))
		fmt.Fprintf(w, "  %s%s%s\n", r.Name, padding, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
	}
}
