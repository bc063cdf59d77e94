package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for listing output.
type Styles struct {
	Path    lipgloss.Style
	Size    lipgloss.Style
	Summary lipgloss.Style
}

// NewStyles creates the default color styles.
func NewStyles() Styles {
	return Styles{
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")), // magenta
		Size:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // green
		Summary: lipgloss.NewStyle().Bold(true),
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Path:    lipgloss.NewStyle(),
		Size:    lipgloss.NewStyle(),
		Summary: lipgloss.NewStyle(),
	}
}

// ListFormatter renders collected files and the run summary.
type ListFormatter struct {
	styles Styles
}

// NewListFormatter creates a ListFormatter.
func NewListFormatter(styles Styles) *ListFormatter {
	return &ListFormatter{styles: styles}
}

// AppendEntry appends one "path  size" line to buf and returns it.
func (f *ListFormatter) AppendEntry(buf []byte, path string, size int64) []byte {
	buf = append(buf, f.styles.Path.Render(path)...)
	buf = append(buf, "  "...)
	buf = append(buf, f.styles.Size.Render(strconv.FormatInt(size, 10))...)
	buf = append(buf, '\n')
	return buf
}

// AppendSummary appends the final count/bytes summary line to buf.
func (f *ListFormatter) AppendSummary(buf []byte, count int, totalBytes int64) []byte {
	s := strconv.Itoa(count) + " files, " + strconv.FormatInt(totalBytes, 10) + " bytes"
	buf = append(buf, f.styles.Summary.Render(s)...)
	buf = append(buf, '\n')
	return buf
}
