package manifest

import (
	"bufio"
	"bytes"
	"strings"
)

// FindVersionLine returns the 1-based number of the first line containing
// both marker and sep, or 0.
func FindVersionLine(data []byte, marker, sep string) int {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.Contains(line, marker) && strings.Contains(line, sep) {
			return n
		}
	}
	return 0
}
