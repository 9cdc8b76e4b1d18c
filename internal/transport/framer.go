// internal/transport/framer.go
package transport

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// LineFramer reassembles complete text lines from arbitrary byte chunks.
// The radio firmware terminates lines with CRLF but only LF delimits; one
// trailing CR is stripped so both endings decode to the same line.
type LineFramer struct {
	tail []byte
}

// NewLineFramer creates an empty framer
func NewLineFramer() *LineFramer {
	return &LineFramer{}
}

// Push appends a chunk of received bytes and returns every complete line
// now available, in arrival order. Bytes after the last LF stay buffered
// until a later chunk terminates them.
func (f *LineFramer) Push(chunk []byte) []string {
	if len(chunk) > 0 {
		f.tail = append(f.tail, chunk...)
	}

	var lines []string
	for {
		idx := bytes.IndexByte(f.tail, '\n')
		if idx < 0 {
			break
		}
		line := f.tail[:idx]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		lines = append(lines, decodeLine(line))
		f.tail = f.tail[idx+1:]
	}

	if len(f.tail) == 0 {
		f.tail = nil
	}
	return lines
}

// Pending returns the number of buffered bytes not yet terminated by LF.
func (f *LineFramer) Pending() int {
	return len(f.tail)
}

// decodeLine converts raw line bytes to a string, replacing invalid UTF-8
// sequences instead of dropping the line. Firmware boot noise can inject
// garbage bytes and the console must still show the rest of the line.
func decodeLine(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
