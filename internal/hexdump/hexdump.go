// Package hexdump renders byte buffers as offset/hex/ASCII diagnostic lines.
package hexdump

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Render formats the first length bytes of data as 16-byte lines: a hex
// offset, the hex pairs, and the printable-ASCII rendering of the line
// (non-printable bytes shown as '.'). A non-empty label becomes the first
// line. length == 0 yields a zero-length marker; a negative length yields
// a marker line without reading data at all. length must not exceed
// len(data) otherwise.
func Render(label string, data []byte, length int) []string {
	var lines []string
	if label != "" {
		lines = append(lines, label+":")
	}
	if length == 0 {
		return append(lines, "  ZERO LENGTH")
	}
	if length < 0 {
		return append(lines, fmt.Sprintf("  NEGATIVE LENGTH: %d", length))
	}

	var line strings.Builder
	ascii := make([]byte, 0, 16)
	for i := 0; i < length; i++ {
		if i%16 == 0 {
			if i != 0 {
				lines = append(lines, fmt.Sprintf("%s  %s", line.String(), ascii))
				line.Reset()
				ascii = ascii[:0]
			}
			fmt.Fprintf(&line, "  %04x ", i)
		}
		fmt.Fprintf(&line, " %02x", data[i])
		if data[i] < 0x20 || data[i] > 0x7e {
			ascii = append(ascii, '.')
		} else {
			ascii = append(ascii, data[i])
		}
	}

	// Pad a partial final line so the ASCII column stays aligned.
	for i := length; i%16 != 0; i++ {
		line.WriteString("   ")
	}
	return append(lines, fmt.Sprintf("%s  %s", line.String(), ascii))
}

// Dump emits the rendered lines through logger at debug level.
func Dump(logger *log.Logger, label string, data []byte, length int) {
	for _, l := range Render(label, data, length) {
		logger.Debug(l)
	}
}
